package notify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	channelPrefix  = "journal:entries:"
	publishTimeout = 2 * time.Second
	maxBackoff     = 30 * time.Second
)

type relayEnvelope struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

// RedisRelay delivers events locally and mirrors them to other instances over Redis pub/sub,
// so a list view connected to one instance hears about saves handled by another.
type RedisRelay struct {
	hub      *Hub
	client   *redis.Client
	log      *zap.Logger
	instance string
	onRemote func(Event)
}

func NewRedisRelay(hub *Hub, client *redis.Client, log *zap.Logger) *RedisRelay {
	return &RedisRelay{hub: hub, client: client, log: log, instance: uuid.NewString()}
}

// OnForeignEvent registers fn to run for every event received from another instance, before
// local subscribers hear about it. It must be set before Run.
func (r *RedisRelay) OnForeignEvent(fn func(Event)) {
	r.onRemote = fn
}

func channelFor(ownerID string) string {
	return channelPrefix + ownerID
}

// Publish never blocks on Redis: local delivery happens first, the relay is best-effort.
func (r *RedisRelay) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	r.hub.Publish(event)

	data, err := json.Marshal(relayEnvelope{Origin: r.instance, Event: event})
	if err != nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := r.client.Publish(ctx, channelFor(event.OwnerID), data).Err(); err != nil {
			r.log.Warn("notify relay publish failed", zap.String("owner_id", event.OwnerID), zap.Error(err))
		}
	}()
}

// Run listens for events from other instances until ctx is cancelled, reconnecting with backoff.
func (r *RedisRelay) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		err := r.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		r.log.Warn("notify relay subscriber stopped", zap.Error(err), zap.Duration("retry_in", backoff))

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (r *RedisRelay) listen(ctx context.Context) error {
	pubsub := r.client.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	r.log.Info("notify relay subscribed", zap.String("pattern", channelPrefix+"*"))

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			return err
		}
		r.deliver(msg.Channel, msg.Payload)
	}
}

func (r *RedisRelay) deliver(channel, payload string) {
	var env relayEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.log.Warn("notify relay dropped malformed event", zap.String("channel", channel), zap.Error(err))
		return
	}
	if env.Origin == r.instance {
		return
	}
	if env.Event.OwnerID == "" {
		env.Event.OwnerID = strings.TrimPrefix(channel, channelPrefix)
	}
	if r.onRemote != nil {
		r.onRemote(env.Event)
	}
	r.hub.Publish(env.Event)
}

package database

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const defaultMongoDatabase = "diary"

// ConnectMongo creates the Mongo client. Connect does not dial, so a client is returned even
// when the cluster is unreachable; Ping reports reachability separately.
func ConnectMongo(ctx context.Context, mongoURI, database string, log *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	log.Info("connecting to MongoDB")
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	if database == "" {
		database = DatabaseFromURI(mongoURI)
	}
	return client, client.Database(database), nil
}

// PingMongo checks that a primary is reachable within 10s.
func PingMongo(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}

// DatabaseFromURI extracts the path segment of a mongodb:// URI, e.g. "diary" from
// mongodb://host:27017/diary?retryWrites=true.
func DatabaseFromURI(mongoURI string) string {
	rest := mongoURI
	if idx := strings.Index(rest, "://"); idx != -1 {
		rest = rest[idx+3:]
	}
	idx := strings.Index(rest, "/")
	if idx == -1 {
		return defaultMongoDatabase
	}
	name := strings.SplitN(rest[idx+1:], "?", 2)[0]
	if name == "" {
		return defaultMongoDatabase
	}
	return name
}

func DisconnectMongo(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

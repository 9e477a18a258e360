package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnshRaj112/diary-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EntriesCollection is the Mongo collection holding one document per entry key.
const EntriesCollection = "journal_entries"

// MongoEntryStore is the remote document store.
type MongoEntryStore struct {
	col *mongo.Collection
	log *zap.Logger
}

func NewMongoEntryStore(col *mongo.Collection, log *zap.Logger) *MongoEntryStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &MongoEntryStore{col: col, log: log}
}

// EnsureIndexes creates the (owner_id, date desc) index every list query uses.
func (s *MongoEntryStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "date", Value: -1},
		},
		Options: options.Index().SetName("idx_owner_date"),
	})
	return err
}

// GetByKey returns nil, nil when the owner has no entry for date.
func (s *MongoEntryStore) GetByKey(ctx context.Context, ownerID, date string) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	err := s.col.FindOne(ctx, bson.M{"_id": models.EntryKey(ownerID, date)}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find entry %s: %w", models.EntryKey(ownerID, date), err)
	}
	entry.Normalize()
	return &entry, nil
}

// GetRecent returns at most limit entries, newest day first.
func (s *MongoEntryStore) GetRecent(ctx context.Context, ownerID string, limit int) ([]models.JournalEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))
	return s.find(ctx, bson.M{"owner_id": ownerID}, opts)
}

// GetAll returns every entry of the owner, newest day first.
func (s *MongoEntryStore) GetAll(ctx context.Context, ownerID string) ([]models.JournalEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return s.find(ctx, bson.M{"owner_id": ownerID}, opts)
}

// GetForMonth returns the owner's entries within one calendar month, newest day first.
func (s *MongoEntryStore) GetForMonth(ctx context.Context, ownerID string, year, month int) ([]models.JournalEntry, error) {
	if month < 1 || month > 12 {
		return nil, models.ErrInvalidDate
	}
	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}
	filter := bson.M{
		"owner_id": ownerID,
		"date": bson.M{
			"$gte": fmt.Sprintf("%04d-%02d-01", year, month),
			"$lt":  fmt.Sprintf("%04d-%02d-01", nextYear, nextMonth),
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return s.find(ctx, filter, opts)
}

func (s *MongoEntryStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.JournalEntry, error) {
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []models.JournalEntry{}
	for cur.Next(ctx) {
		var e models.JournalEntry
		if err := cur.Decode(&e); err != nil {
			s.log.Warn("skipping undecodable entry document",
				zap.String("_id", cur.Current.Lookup("_id").String()),
				zap.String("tier", "remote"),
				zap.Error(err))
			continue
		}
		e.Normalize()
		entries = append(entries, e)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Put upserts the entry under its canonical key. created_at is written only when the document
// is first inserted; synced_at is assigned by the server.
func (s *MongoEntryStore) Put(ctx context.Context, entry models.JournalEntry) error {
	key := models.EntryKey(entry.OwnerID, entry.Date)
	update := bson.M{
		"$set": bson.M{
			"owner_id":          entry.OwnerID,
			"date":              entry.Date,
			"gratitude_answers": entry.GratitudeAnswers,
			"emotion":           entry.Emotion,
			"emotion_answers":   entry.EmotionAnswers,
			"custom_text":       entry.CustomText,
			"visual_settings":   entry.VisualSettings,
			"updated_at":        entry.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": entry.CreatedAt},
		"$currentDate": bson.M{"synced_at": true},
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert entry %s: %w", key, err)
	}
	return nil
}

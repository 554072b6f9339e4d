package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cholospace/mission-control/internal/core/domain"
)

const collectionLogs = "logs"

// LogRepository implements ports.LogRepository using MongoDB.
type LogRepository struct {
	col *mongo.Collection
}

func NewLogRepository(db *mongo.Database) *LogRepository {
	return &LogRepository{col: db.Collection(collectionLogs)}
}

type mongoLog struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Message  string             `bson:"message"`
	IsPublic bool               `bson:"is_public"`
	Date     time.Time          `bson:"date"`
}

func (ml mongoLog) toDomain() *domain.LogEntry {
	return &domain.LogEntry{
		ID:       ml.ID.Hex(),
		Username: ml.Username,
		Message:  ml.Message,
		IsPublic: ml.IsPublic,
		Date:     ml.Date.UTC(),
	}
}

var newestFirst = bson.D{{Key: "date", Value: -1}}

// parseID maps a malformed identifier to domain.ErrNotFound: no document can
// carry it.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}

// Create inserts a new log entry and returns its hex identifier.
func (r *LogRepository) Create(ctx context.Context, e *domain.LogEntry) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoLog{
		Username: e.Username,
		Message:  e.Message,
		IsPublic: e.IsPublic,
		Date:     e.Date,
	})
	if err != nil {
		return "", fmt.Errorf("insert log: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert log: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *LogRepository) FindByID(ctx context.Context, id string) (*domain.LogEntry, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoLog
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find log: %w", err)
	}
	return ml.toDomain(), nil
}

// MarkPublic flips is_public to true. Matching an already public entry is
// success.
func (r *LogRepository) MarkPublic(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"is_public": true}})
	if err != nil {
		return fmt.Errorf("share log: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LogRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LogRepository) ListPublic(ctx context.Context, limit int) ([]*domain.LogEntry, error) {
	opts := options.Find().SetSort(newestFirst).SetLimit(int64(limit))
	return r.find(ctx, bson.M{"is_public": true}, opts)
}

func (r *LogRepository) ListByOwner(ctx context.Context, username string) ([]*domain.LogEntry, error) {
	return r.find(ctx, bson.M{"username": username}, options.Find().SetSort(newestFirst))
}

func (r *LogRepository) ListAll(ctx context.Context) ([]*domain.LogEntry, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
}

func (r *LogRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.LogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	var docs []mongoLog
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode logs: %w", err)
	}

	entries := make([]*domain.LogEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, d.toDomain())
	}
	return entries, nil
}

// EnsureIndexes creates the indexes backing the owner history and public feed
// queries.
func (r *LogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "is_public", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	apperrors "github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
)

const (
	matchesCollection = "matches"
	recordKeyPrefix   = "record:"
	queryTimeout      = 5 * time.Second
)

// RecordCache keeps fetched records for a while. Get returns ok=false on a miss.
type RecordCache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// MatchArchive is the long term store of played games.
type MatchArchive interface {
	FindMatch(ctx context.Context, id string) (game.Match, error)
}

// RecordRepository loads game records by key, reading through the cache into
// the archive. Either side may be nil.
type RecordRepository struct {
	log     *zap.SugaredLogger
	cache   RecordCache
	archive MatchArchive
	ttl     time.Duration
}

func NewRecordRepository(log *zap.SugaredLogger, cache RecordCache, archive MatchArchive, ttl time.Duration) *RecordRepository {
	return &RecordRepository{
		log:     log,
		cache:   cache,
		archive: archive,
		ttl:     ttl,
	}
}

func (r *RecordRepository) LoadRecord(ctx context.Context, key string) (game.Match, error) {
	if r.cache != nil {
		if match, ok := r.fromCache(ctx, key); ok {
			return match, nil
		}
	}

	if r.archive == nil {
		return game.Match{}, apperrors.ErrRecordNotFound
	}
	match, err := r.archive.FindMatch(ctx, key)
	if err != nil {
		return game.Match{}, err
	}

	if r.cache != nil {
		r.toCache(ctx, key, match)
	}
	return match, nil
}

func (r *RecordRepository) fromCache(ctx context.Context, key string) (game.Match, bool) {
	raw, ok, err := r.cache.Get(ctx, recordKeyPrefix+key)
	if err != nil {
		r.log.Warnw("record cache read failed", "key", key, "error", err)
		return game.Match{}, false
	}
	if !ok {
		return game.Match{}, false
	}

	var match game.Match
	if err := json.Unmarshal([]byte(raw), &match); err != nil {
		r.log.Warnw("dropping malformed cached record", "key", key, "error", err)
		return game.Match{}, false
	}
	return match, true
}

func (r *RecordRepository) toCache(ctx context.Context, key string, match game.Match) {
	raw, err := json.Marshal(match)
	if err != nil {
		r.log.Errorf("failed to encode record %s: %v", key, err)
		return
	}
	if err := r.cache.Set(ctx, recordKeyPrefix+key, string(raw), r.ttl); err != nil {
		r.log.Warnw("record cache write failed", "key", key, "error", err)
	}
}

// RedisRecordCache stores records as plain strings.
type RedisRecordCache struct {
	client *redis.Client
}

func NewRedisRecordCache(client *redis.Client) *RedisRecordCache {
	return &RedisRecordCache{client: client}
}

func (c *RedisRecordCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (c *RedisRecordCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// MongoMatchArchive keeps archived matches in the matches collection.
type MongoMatchArchive struct {
	log *zap.SugaredLogger
	db  *mongo.Database
}

func NewMongoMatchArchive(log *zap.SugaredLogger, db *mongo.Database) *MongoMatchArchive {
	return &MongoMatchArchive{log: log, db: db}
}

// FindMatch looks the match up by _id, accepting both ObjectID hex strings and plain string ids.
func (a *MongoMatchArchive) FindMatch(ctx context.Context, id string) (game.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ids := bson.A{id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		ids = append(ids, oid)
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}

	var match game.Match
	err := a.db.Collection(matchesCollection).FindOne(ctx, filter).Decode(&match)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Match{}, apperrors.ErrRecordNotFound
	}
	if err != nil {
		a.log.Errorf("failed to find match %s: %v", id, err)
		return game.Match{}, fmt.Errorf("find match %s: %w", id, err)
	}
	return match, nil
}

// SaveMatch inserts the match or replaces the one stored under the same id.
func (a *MongoMatchArchive) SaveMatch(ctx context.Context, match game.Match) error {
	if match.ID == "" {
		return fmt.Errorf("save match: empty id")
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := a.db.Collection(matchesCollection).ReplaceOne(ctx,
		bson.M{"_id": match.ID}, match, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save match %s: %w", match.ID, err)
	}
	return nil
}

// ListMatches returns one page of matches, newest first, without their record text.
func (a *MongoMatchArchive) ListMatches(ctx context.Context, skip, limit int) ([]game.Match, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	collection := a.db.Collection(matchesCollection)
	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count matches: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "played_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"sgf": 0})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list matches: %w", err)
	}
	defer cursor.Close(ctx)

	matches := make([]game.Match, 0, limit)
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, 0, fmt.Errorf("decode matches: %w", err)
	}
	return matches, total, nil
}

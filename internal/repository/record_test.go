package repo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	apperrors "github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
)

type fakeCache struct {
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

type fakeArchive struct {
	matches map[string]game.Match
	calls   int
}

func (a *fakeArchive) FindMatch(_ context.Context, id string) (game.Match, error) {
	a.calls++
	m, ok := a.matches[id]
	if !ok {
		return game.Match{}, apperrors.ErrRecordNotFound
	}
	return m, nil
}

var shusaku = game.Match{ID: "shusaku-1846", Title: "Ear-reddening game", PlayerBlack: "Honinbo Shusaku", SGF: "(;B[qd];W[dc])"}

func TestLoadRecordReadsThroughCache(t *testing.T) {
	cache := newFakeCache()
	archive := &fakeArchive{matches: map[string]game.Match{shusaku.ID: shusaku}}
	repo := NewRecordRepository(zap.NewNop().Sugar(), cache, archive, time.Hour)

	got, err := repo.LoadRecord(context.Background(), shusaku.ID)
	require.NoError(t, err)
	require.Equal(t, shusaku, got)
	require.Equal(t, 1, archive.calls)
	require.Equal(t, time.Hour, cache.ttls["record:shusaku-1846"])

	got, err = repo.LoadRecord(context.Background(), shusaku.ID)
	require.NoError(t, err)
	require.Equal(t, shusaku, got)
	require.Equal(t, 1, archive.calls, "second load is served by the cache")
}

func TestLoadRecordCacheFailures(t *testing.T) {
	archive := &fakeArchive{matches: map[string]game.Match{shusaku.ID: shusaku}}

	t.Run("read error falls back to the archive", func(t *testing.T) {
		cache := newFakeCache()
		cache.getErr = errors.New("connection refused")
		repo := NewRecordRepository(zap.NewNop().Sugar(), cache, archive, time.Minute)

		got, err := repo.LoadRecord(context.Background(), shusaku.ID)
		require.NoError(t, err)
		require.Equal(t, shusaku.SGF, got.SGF)
	})

	t.Run("malformed entry is ignored", func(t *testing.T) {
		cache := newFakeCache()
		cache.values["record:shusaku-1846"] = "{not json"
		repo := NewRecordRepository(zap.NewNop().Sugar(), cache, archive, time.Minute)

		got, err := repo.LoadRecord(context.Background(), shusaku.ID)
		require.NoError(t, err)
		require.Equal(t, shusaku.SGF, got.SGF)

		var cached game.Match
		require.NoError(t, json.Unmarshal([]byte(cache.values["record:shusaku-1846"]), &cached))
		assert.Equal(t, shusaku.Title, cached.Title)
	})
}

func TestLoadRecordMissing(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		repo := NewRecordRepository(zap.NewNop().Sugar(), newFakeCache(), &fakeArchive{}, time.Minute)
		_, err := repo.LoadRecord(context.Background(), "nope")
		require.ErrorIs(t, err, apperrors.ErrRecordNotFound)
	})

	t.Run("no storage at all", func(t *testing.T) {
		repo := NewRecordRepository(zap.NewNop().Sugar(), nil, nil, time.Minute)
		_, err := repo.LoadRecord(context.Background(), "nope")
		require.ErrorIs(t, err, apperrors.ErrRecordNotFound)
	})

	t.Run("cache only", func(t *testing.T) {
		cache := newFakeCache()
		raw, _ := json.Marshal(shusaku)
		cache.values["record:shusaku-1846"] = string(raw)
		repo := NewRecordRepository(zap.NewNop().Sugar(), cache, nil, time.Minute)

		got, err := repo.LoadRecord(context.Background(), shusaku.ID)
		require.NoError(t, err)
		require.Equal(t, shusaku.SGF, got.SGF)
	})
}

func TestMongoMatchArchive(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "tenuki.matches", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "shusaku-1846"},
			{Key: "title", Value: "Ear-reddening game"},
			{Key: "sgf", Value: "(;B[qd];W[dc])"},
		}))

		archive := NewMongoMatchArchive(zap.NewNop().Sugar(), mt.DB)
		got, err := archive.FindMatch(context.Background(), "shusaku-1846")
		require.NoError(mt, err)
		require.Equal(mt, "Ear-reddening game", got.Title)
		require.Equal(mt, "(;B[qd];W[dc])", got.SGF)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "tenuki.matches", mtest.FirstBatch))

		archive := NewMongoMatchArchive(zap.NewNop().Sugar(), mt.DB)
		_, err := archive.FindMatch(context.Background(), "missing")
		require.ErrorIs(mt, err, apperrors.ErrRecordNotFound)
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query"}))

		archive := NewMongoMatchArchive(zap.NewNop().Sugar(), mt.DB)
		_, err := archive.FindMatch(context.Background(), "x")
		require.Error(mt, err)
		require.NotErrorIs(mt, err, apperrors.ErrRecordNotFound)
	})
}

func TestMongoMatchArchiveWrites(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))

		archive := NewMongoMatchArchive(zap.NewNop().Sugar(), mt.DB)
		require.NoError(mt, archive.SaveMatch(context.Background(), shusaku))
	})

	mt.Run("save without id", func(mt *mtest.T) {
		archive := NewMongoMatchArchive(zap.NewNop().Sugar(), mt.DB)
		require.Error(mt, archive.SaveMatch(context.Background(), game.Match{SGF: "(;B[aa])"}))
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "tenuki.matches", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}),
			mtest.CreateCursorResponse(0, "tenuki.matches", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "b"}, {Key: "title", Value: "Second"}},
				bson.D{{Key: "_id", Value: "c"}, {Key: "title", Value: "Third"}},
			),
		)

		archive := NewMongoMatchArchive(zap.NewNop().Sugar(), mt.DB)
		matches, total, err := archive.ListMatches(context.Background(), 1, 2)
		require.NoError(mt, err)
		require.EqualValues(mt, 3, total)
		require.Len(mt, matches, 2)
		assert.Equal(mt, "Second", matches[0].Title)
		assert.Empty(mt, matches[1].SGF)
	})
}

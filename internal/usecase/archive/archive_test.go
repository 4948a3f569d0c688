package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
)

type memoryStore struct {
	saved map[string]game.Match
	skip  int
	limit int
	total int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{saved: map[string]game.Match{}}
}

func (s *memoryStore) SaveMatch(_ context.Context, m game.Match) error {
	s.saved[m.ID] = m
	return nil
}

func (s *memoryStore) ListMatches(_ context.Context, skip, limit int) ([]game.Match, int64, error) {
	s.skip, s.limit = skip, limit
	return []game.Match{{ID: "a"}}, s.total, nil
}

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
}

func TestImportDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "shusaku-1846.sgf"), "(;GN[Ear-reddening game]PB[Shusaku]PW[Gennan]DT[1846-07-25]RE[B+2];B[qd];W[dc])")
	writeFile(t, filepath.Join(root, "1950s", "final.SGF"), "(;PB[A]DT[1953];B[aa])")
	writeFile(t, filepath.Join(root, "empty.sgf"), "(;GM[1])")
	writeFile(t, filepath.Join(root, "notes.txt"), "(;B[aa])")

	store := newMemoryStore()
	uc := NewArchiveUseCase(store, zap.NewNop().Sugar(), 10)

	n, err := uc.ImportDir(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, store.saved, 2)

	m := store.saved["shusaku-1846"]
	assert.Equal(t, "Ear-reddening game", m.Title)
	assert.Equal(t, "Gennan", m.PlayerWhite)
	assert.Equal(t, time.Date(1846, 7, 25, 0, 0, 0, 0, time.UTC), m.PlayedAt)
	assert.Contains(t, m.SGF, "B[qd]")

	assert.True(t, store.saved["final"].PlayedAt.IsZero(), "partial dates are dropped")
}

func TestImportDirMissingRoot(t *testing.T) {
	uc := NewArchiveUseCase(newMemoryStore(), zap.NewNop().Sugar(), 10)
	_, err := uc.ImportDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestPage(t *testing.T) {
	store := newMemoryStore()
	store.total = 21
	uc := NewArchiveUseCase(store, zap.NewNop().Sugar(), 10)

	page, err := uc.Page(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 20, store.skip)
	assert.Equal(t, 10, store.limit)
	assert.Equal(t, 3, page.TotalPages)
	assert.EqualValues(t, 21, page.Total)
	assert.Len(t, page.Matches, 1)

	_, err = uc.Page(context.Background(), 0)
	require.ErrorIs(t, err, errors.ErrOutOfRange)
}

func TestNoArchive(t *testing.T) {
	uc := NewArchiveUseCase(nil, zap.NewNop().Sugar(), 0)

	_, err := uc.Page(context.Background(), 1)
	require.ErrorIs(t, err, errors.ErrNoArchive)

	_, err = uc.ImportDir(context.Background(), t.TempDir())
	require.ErrorIs(t, err, errors.ErrNoArchive)
}

package archive

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/record"
)

const recordExt = ".sgf"

type MatchStore interface {
	SaveMatch(ctx context.Context, match game.Match) error
	ListMatches(ctx context.Context, skip, limit int) ([]game.Match, int64, error)
}

// ArchiveUseCase fills and pages through the match archive. A nil store means
// no archive is configured.
type ArchiveUseCase struct {
	store     MatchStore
	log       *zap.SugaredLogger
	pageLimit int
}

func NewArchiveUseCase(store MatchStore, log *zap.SugaredLogger, pageLimit int) *ArchiveUseCase {
	if pageLimit < 1 {
		pageLimit = 20
	}
	return &ArchiveUseCase{
		store:     store,
		log:       log,
		pageLimit: pageLimit,
	}
}

// ImportDir stores every record file found under root, keyed by file name.
// Records without moves are skipped. It returns the number of matches saved.
func (a *ArchiveUseCase) ImportDir(ctx context.Context, root string) (int, error) {
	if a.store == nil {
		return 0, errors.ErrNoArchive
	}

	imported := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), recordExt) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		id := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		match, err := MatchFromRecord(id, string(raw))
		if err != nil {
			a.log.Warnw("skipping record", "path", path, "error", err)
			return nil
		}

		if err := a.store.SaveMatch(ctx, match); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		imported++
		return nil
	})
	if err != nil {
		return imported, err
	}

	a.log.Infof("imported %d matches from %s", imported, root)
	return imported, nil
}

// MatchFromRecord builds an archive entry from record text, taking the
// metadata from its header. A date that is not YYYY-MM-DD is left unset.
func MatchFromRecord(id, text string) (game.Match, error) {
	if len(record.Decode(text)) == 0 {
		return game.Match{}, errors.ErrEmptyRecord
	}

	h := record.DecodeHeader(text)
	match := game.Match{
		ID:          id,
		Title:       h.Title,
		PlayerBlack: h.PlayerBlack,
		PlayerWhite: h.PlayerWhite,
		Result:      h.Result,
		Komi:        h.Komi,
		SGF:         text,
	}
	if len(h.Date) >= len(time.DateOnly) {
		if t, err := time.Parse(time.DateOnly, h.Date[:len(time.DateOnly)]); err == nil {
			match.PlayedAt = t
		}
	}
	return match, nil
}

// Page returns the matches of page, counting from 1.
func (a *ArchiveUseCase) Page(ctx context.Context, page int) (game.MatchPage, error) {
	if a.store == nil {
		return game.MatchPage{}, errors.ErrNoArchive
	}
	if page < 1 {
		return game.MatchPage{}, fmt.Errorf("%w: page %d", errors.ErrOutOfRange, page)
	}

	matches, total, err := a.store.ListMatches(ctx, (page-1)*a.pageLimit, a.pageLimit)
	if err != nil {
		return game.MatchPage{}, err
	}
	return game.MatchPage{
		Page:       page,
		TotalPages: int((total + int64(a.pageLimit) - 1) / int64(a.pageLimit)),
		Total:      total,
		Matches:    matches,
	}, nil
}

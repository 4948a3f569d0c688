package game

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/render"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/record"
)

type RecordStore interface {
	LoadRecord(ctx context.Context, key string) (game.Match, error)
}

// DefaultMaxViewers bounds the open viewers unless WithMaxViewers says otherwise.
const DefaultMaxViewers = 1000

type viewerSession struct {
	mu       sync.Mutex
	timeline *Timeline
	match    game.Match
	lastUsed atomic.Uint64
}

// ViewerUseCase keeps the open viewers. Each viewer has its own timeline and
// lock, so viewers never see each other's cursor or moves.
type ViewerUseCase struct {
	records RecordStore
	strict  bool

	maxViewers int
	clock      atomic.Uint64

	mu       sync.RWMutex
	sessions map[string]*viewerSession
}

type ViewerOption func(*ViewerUseCase)

// WithMaxViewers caps the open viewers. Opening one more closes the viewer
// that was used least recently. n < 1 keeps the default.
func WithMaxViewers(n int) ViewerOption {
	return func(v *ViewerUseCase) {
		if n > 0 {
			v.maxViewers = n
		}
	}
}

// NewViewerUseCase builds the use case. records may be nil when no record
// storage is configured; strict makes every viewer reject suicide and ko.
func NewViewerUseCase(records RecordStore, strict bool, opts ...ViewerOption) *ViewerUseCase {
	v := &ViewerUseCase{
		records:    records,
		strict:     strict,
		maxViewers: DefaultMaxViewers,
		sessions:   make(map[string]*viewerSession),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *ViewerUseCase) CreateViewer(ctx context.Context, req game.CreateViewerRequest) (game.CreateViewerResponse, error) {
	session := &viewerSession{}

	text := req.SGF
	if req.RecordKey != "" {
		if v.records == nil {
			return game.CreateViewerResponse{}, errors.ErrRecordNotFound
		}
		match, err := v.records.LoadRecord(ctx, req.RecordKey)
		if err != nil {
			return game.CreateViewerResponse{}, fmt.Errorf("load record %s: %w", req.RecordKey, err)
		}
		session.match = match
		text = match.SGF
	}

	policy := Relaxed
	if v.strict || req.Strict {
		policy = Strict
	}
	session.timeline = NewTimeline(WithPolicy(policy))
	session.timeline.Load(record.Decode(text))

	id := uuid.New().String()
	session.lastUsed.Store(v.clock.Add(1))
	v.mu.Lock()
	for len(v.sessions) >= v.maxViewers {
		v.evictLocked()
	}
	v.sessions[id] = session
	v.mu.Unlock()

	return game.CreateViewerResponse{
		ViewerID: id,
		Snapshot: session.timeline.Snapshot(),
	}, nil
}

func (v *ViewerUseCase) session(id string) (*viewerSession, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s, ok := v.sessions[id]
	if !ok {
		return nil, errors.ErrViewerNotFound
	}
	s.lastUsed.Store(v.clock.Add(1))
	return s, nil
}

// evictLocked drops the least recently used viewer. v.mu must be held.
func (v *ViewerUseCase) evictLocked() {
	var (
		oldestID string
		oldest   uint64
	)
	for id, s := range v.sessions {
		if used := s.lastUsed.Load(); oldestID == "" || used < oldest {
			oldestID, oldest = id, used
		}
	}
	delete(v.sessions, oldestID)
}

// update runs fn on the viewer's timeline and returns the resulting snapshot.
// The snapshot is returned even when fn fails, so callers can show the unchanged state.
func (v *ViewerUseCase) update(id string, fn func(*Timeline) error) (game.Snapshot, error) {
	s, err := v.session(id)
	if err != nil {
		return game.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err = fn(s.timeline)
	return s.timeline.Snapshot(), err
}

func (v *ViewerUseCase) Snapshot(id string) (game.Snapshot, error) {
	return v.update(id, func(*Timeline) error { return nil })
}

func (v *ViewerUseCase) Next(id string) (game.Snapshot, error) {
	return v.update(id, func(t *Timeline) error { t.Next(); return nil })
}

func (v *ViewerUseCase) Prev(id string) (game.Snapshot, error) {
	return v.update(id, func(t *Timeline) error { t.Prev(); return nil })
}

func (v *ViewerUseCase) ToStart(id string) (game.Snapshot, error) {
	return v.update(id, func(t *Timeline) error { t.ToStart(); return nil })
}

func (v *ViewerUseCase) ToEnd(id string) (game.Snapshot, error) {
	return v.update(id, func(t *Timeline) error { t.ToEnd(); return nil })
}

func (v *ViewerUseCase) Seek(id string, n int) (game.Snapshot, error) {
	return v.update(id, func(t *Timeline) error { t.Seek(n); return nil })
}

func (v *ViewerUseCase) Play(id string, x, y int) (game.Snapshot, error) {
	return v.update(id, func(t *Timeline) error { return t.PlayInteractive(x, y) })
}

func (v *ViewerUseCase) Pass(id string) (game.Snapshot, error) {
	return v.update(id, func(t *Timeline) error { return t.PlayPass() })
}

// LoadRecord replaces the viewer's moves with the ones decoded from text.
func (v *ViewerUseCase) LoadRecord(id string, text string) (game.Snapshot, error) {
	return v.update(id, func(t *Timeline) error {
		t.Load(record.Decode(text))
		return nil
	})
}

// BoardAt returns the board after n moves without moving the viewer's cursor.
// n is clamped into the record; the clamped value is returned with the board.
func (v *ViewerUseCase) BoardAt(id string, n int) (board.Board, int, error) {
	var b board.Board
	_, err := v.update(id, func(t *Timeline) error {
		n = t.clamp(n)
		b = t.BoardAt(n)
		return nil
	})
	return b, n, err
}

func (v *ViewerUseCase) Moves(id string) ([]game.Move, error) {
	var moves []game.Move
	_, err := v.update(id, func(t *Timeline) error {
		moves = t.Moves()
		return nil
	})
	return moves, err
}

// Export serializes the viewer's current moves, with the archive metadata
// when the viewer was opened from a stored record.
func (v *ViewerUseCase) Export(id string) (string, error) {
	s, err := v.session(id)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return record.Encode(s.timeline.Moves(), headerOf(s.match)), nil
}

// Diagram writes a PDF diagram of the viewer's board at the cursor.
func (v *ViewerUseCase) Diagram(id string, w io.Writer) error {
	s, err := v.session(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	snap := s.timeline.Snapshot()
	title := s.match.Title
	s.mu.Unlock()

	return render.PDF(w, snap, title)
}

func (v *ViewerUseCase) Delete(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.sessions[id]; !ok {
		return errors.ErrViewerNotFound
	}
	delete(v.sessions, id)
	return nil
}

// line freezes a timeline's moves and cursor for work done outside the viewer lock.
func (v *ViewerUseCase) line(id string) (Line, error) {
	s, err := v.session(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return frozenLine{moves: s.timeline.Moves(), cursor: s.timeline.Cursor()}, nil
}

func headerOf(m game.Match) record.Header {
	h := record.Header{
		Title:       m.Title,
		PlayerBlack: m.PlayerBlack,
		PlayerWhite: m.PlayerWhite,
		Result:      m.Result,
		Komi:        m.Komi,
	}
	if !m.PlayedAt.IsZero() {
		h.Date = m.PlayedAt.Format("2006-01-02")
	}
	return h
}

package game

import (
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
)

// position is the board after the first `at` moves, with the stones each side has captured so far.
type position struct {
	at       int
	board    board.Board
	captures [3]int
}

func (p position) step(m game.Move) position {
	next := Apply(p.board, m)
	if !m.IsPass {
		p.captures[m.Player] += len(Captured(p.board, next))
	}
	p.board = next
	p.at++
	return p
}

// Timeline is a linear move history with a cursor. The cursor counts the moves
// applied so far and always lies in [0, Len()]. Navigation clamps and never
// fails. Playing from the middle drops the moves after the cursor.
//
// A Timeline is not safe for concurrent use.
type Timeline struct {
	moves  []game.Move
	cursor int
	policy Policy

	// board at cache.at, always a prefix of moves
	cache position
}

type TimelineOption func(*Timeline)

// WithPolicy adds rules checked on interactive moves. Loaded records are never checked.
func WithPolicy(p Policy) TimelineOption {
	return func(t *Timeline) {
		t.policy = p
	}
}

func NewTimeline(opts ...TimelineOption) *Timeline {
	t := &Timeline{policy: Relaxed}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load replaces the history and rewinds to the empty board.
func (t *Timeline) Load(moves []game.Move) {
	t.moves = append([]game.Move(nil), moves...)
	t.cursor = 0
	t.cache = position{}
}

func (t *Timeline) Next() {
	t.Seek(t.cursor + 1)
}

func (t *Timeline) Prev() {
	t.Seek(t.cursor - 1)
}

func (t *Timeline) ToStart() {
	t.Seek(0)
}

func (t *Timeline) ToEnd() {
	t.Seek(len(t.moves))
}

// Seek moves the cursor to n, clamped into [0, Len()].
func (t *Timeline) Seek(n int) {
	t.cursor = t.clamp(n)
}

func (t *Timeline) clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > len(t.moves) {
		return len(t.moves)
	}
	return n
}

func (t *Timeline) Cursor() int {
	return t.cursor
}

func (t *Timeline) Len() int {
	return len(t.moves)
}

func (t *Timeline) Moves() []game.Move {
	return append([]game.Move(nil), t.moves...)
}

// LastMove is the move that produced the current board.
func (t *Timeline) LastMove() (game.Move, bool) {
	if t.cursor == 0 {
		return game.Move{}, false
	}
	return t.moves[t.cursor-1], true
}

// NextColor is the opposite of the last applied move, black on an empty history.
func (t *Timeline) NextColor() board.Color {
	if last, ok := t.LastMove(); ok {
		return last.Player.Opponent()
	}
	return board.Black
}

// Board is the board at the cursor.
func (t *Timeline) Board() board.Board {
	return t.position(t.cursor).board
}

// BoardAt replays the first n moves, n clamped into [0, Len()]. The cursor does not move.
func (t *Timeline) BoardAt(n int) board.Board {
	return t.position(t.clamp(n)).board
}

func (t *Timeline) position(n int) position {
	switch {
	case n == t.cache.at:
	case n == t.cache.at+1:
		t.cache = t.cache.step(t.moves[t.cache.at])
	default:
		t.cache = t.replay(n)
	}
	return t.cache
}

func (t *Timeline) replay(n int) position {
	p := position{}
	for _, m := range t.moves[:n] {
		p = p.step(m)
	}
	return p
}

// history returns the boards before each of the first cursor moves and the current one.
func (t *Timeline) history() []board.Board {
	boards := make([]board.Board, 0, t.cursor+1)
	p := position{}
	boards = append(boards, p.board)
	for _, m := range t.moves[:t.cursor] {
		p = p.step(m)
		boards = append(boards, p.board)
	}
	return boards
}

// PlayInteractive puts a stone of NextColor at (x,y). Any moves after the
// cursor are discarded and the cursor ends on the new move. An occupied or
// off-board target leaves the timeline untouched.
func (t *Timeline) PlayInteractive(x, y int) error {
	if !(board.Point{X: x, Y: y}).OnBoard() {
		return errors.ErrOutOfRange
	}
	current := t.position(t.cursor)
	if current.board.At(x, y) != board.Empty {
		return errors.ErrOccupied
	}
	return t.commit(current, game.NewMove(t.NextColor(), x, y))
}

// PlayPass records a pass for NextColor with the same truncation as PlayInteractive.
func (t *Timeline) PlayPass() error {
	return t.commit(t.position(t.cursor), game.NewPass(t.NextColor()))
}

func (t *Timeline) commit(current position, m game.Move) error {
	next := current.step(m)
	if len(t.policy) > 0 {
		if err := t.policy.Check(t.history(), next.board, m); err != nil {
			return err
		}
	}

	moves := make([]game.Move, t.cursor, t.cursor+1)
	copy(moves, t.moves[:t.cursor])
	t.moves = append(moves, m)
	t.cursor = len(t.moves)
	t.cache = next
	return nil
}

func (t *Timeline) Snapshot() game.Snapshot {
	p := t.position(t.cursor)
	snap := game.Snapshot{
		Cursor:    t.cursor,
		Total:     len(t.moves),
		Board:     p.board,
		NextColor: t.NextColor(),
		Captures: map[board.Color]int{
			board.Black: p.captures[board.Black],
			board.White: p.captures[board.White],
		},
	}
	if last, ok := t.LastMove(); ok {
		snap.LastMove = &last
	}
	return snap
}

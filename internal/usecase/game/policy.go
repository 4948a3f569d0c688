package game

import (
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
)

// Rule vets a move after Apply has produced next. history holds the boards
// before the move, oldest first, ending with the board the move was played on.
type Rule interface {
	Check(history []board.Board, next board.Board, m game.Move) error
}

// Policy is a set of extra rules layered over Apply. The zero value accepts
// every move, which is the ruleset records are replayed with.
type Policy []Rule

var (
	Relaxed = Policy{}
	Strict  = Policy{NoSuicide{}, PositionalKo{}}
)

func (p Policy) Check(history []board.Board, next board.Board, m game.Move) error {
	for _, rule := range p {
		if err := rule.Check(history, next, m); err != nil {
			return err
		}
	}
	return nil
}

// NoSuicide rejects a stone whose own group ends up without liberties.
type NoSuicide struct{}

func (NoSuicide) Check(_ []board.Board, next board.Board, m game.Move) error {
	if m.IsPass {
		return nil
	}
	if GroupAt(next, m.X, m.Y).LibertyCount() == 0 {
		return errors.ErrSuicide
	}
	return nil
}

// PositionalKo rejects a move recreating any earlier position.
type PositionalKo struct{}

func (PositionalKo) Check(history []board.Board, next board.Board, m game.Move) error {
	if m.IsPass {
		return nil
	}
	for _, earlier := range history {
		if earlier == next {
			return errors.ErrKo
		}
	}
	return nil
}

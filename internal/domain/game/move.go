package game

import "github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"

type Move struct {
	Player  board.Color `json:"player"`
	X       int         `json:"x"`
	Y       int         `json:"y"`
	IsPass  bool        `json:"is_pass"`
	Comment string      `json:"comment,omitempty"`
}

func NewMove(player board.Color, x, y int) Move {
	return Move{Player: player, X: x, Y: y}
}

// NewPass builds a pass; its coordinates are unused and set to -1.
func NewPass(player board.Color) Move {
	return Move{Player: player, X: -1, Y: -1, IsPass: true}
}

func (m Move) Point() board.Point {
	return board.Point{X: m.X, Y: m.Y}
}

type Moves struct {
	Moves []Move `json:"moves"`
}

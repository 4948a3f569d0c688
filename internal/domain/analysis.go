package domain

import (
	"fmt"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
)

type Classification string

const (
	Best       Classification = "best"
	Good       Classification = "good"
	Inaccuracy Classification = "inaccuracy"
	Mistake    Classification = "mistake"
	Blunder    Classification = "blunder"
	Brilliant  Classification = "brilliant"
)

func (c Classification) Valid() bool {
	switch c {
	case Best, Good, Inaccuracy, Mistake, Blunder, Brilliant:
		return true
	}
	return false
}

// Evaluation is what an analysis engine reports for one position.
// WinRate is black's winning chance in [0,1], ScoreLead is black's lead in points.
type Evaluation struct {
	WinRate        float64        `json:"win_rate"`
	ScoreLead      float64        `json:"score_lead"`
	Classification Classification `json:"classification"`
	BestMove       *board.Point   `json:"best_move,omitempty"`
}

// Region is an inclusive rectangle of intersections.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// NewRegion builds the rectangle spanned by two opposite corners given in any order.
func NewRegion(a, b board.Point) Region {
	r := Region{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

func (r Region) Contains(p board.Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Clamp cuts the region down to the board. ok is false when nothing is left.
func (r Region) Clamp() (Region, bool) {
	clamped := Region{
		X1: max(r.X1, 0),
		Y1: max(r.Y1, 0),
		X2: min(r.X2, board.Size-1),
		Y2: min(r.Y2, board.Size-1),
	}
	if clamped.X1 > clamped.X2 || clamped.Y1 > clamped.Y2 {
		return Region{}, false
	}
	return clamped, true
}

// Points lists the intersections of r row by row.
func (r Region) Points() []board.Point {
	var points []board.Point
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			points = append(points, board.Point{X: x, Y: y})
		}
	}
	return points
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}

// Classify grades a move by how much win rate the mover gave away.
// drop is measured from the mover's side, negative when the position improved.
func Classify(drop float64) Classification {
	switch {
	case drop <= 0.02:
		return Best
	case drop <= 0.05:
		return Good
	case drop <= 0.10:
		return Inaccuracy
	case drop <= 0.20:
		return Mistake
	default:
		return Blunder
	}
}

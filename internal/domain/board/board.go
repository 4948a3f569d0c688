package board

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Size is the number of lines of the board.
const Size = 19

// Color is the state of one intersection.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	}
	return "."
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("unknown color %q", string(text))
	}
	*c = parsed
	return nil
}

// ParseColor accepts the record letters ("B", "W") and their long forms.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "b", "black":
		return Black, true
	case "w", "white":
		return White, true
	case ".", "", "empty":
		return Empty, true
	}
	return Empty, false
}

// Point is an intersection, x is the column and y the row, both 0-based from the top left.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) OnBoard() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

// Neighbors returns the orthogonal neighbours that lie on the board.
func (p Point) Neighbors() []Point {
	candidates := [4]Point{
		{p.X, p.Y - 1},
		{p.X, p.Y + 1},
		{p.X - 1, p.Y},
		{p.X + 1, p.Y},
	}
	neighbors := make([]Point, 0, 4)
	for _, n := range candidates {
		if n.OnBoard() {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Board is a row-major grid of intersections. It is a plain array, so every
// assignment copies it and a Board handed out is never changed afterwards.
type Board [Size * Size]Color

// NewEmpty returns a board with every intersection empty.
func NewEmpty() Board {
	return Board{}
}

func index(x, y int) int {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		panic(fmt.Sprintf("board: point (%d,%d) out of range [0,%d)", x, y, Size))
	}
	return y*Size + x
}

func (b Board) At(x, y int) Color {
	return b[index(x, y)]
}

// WithStone returns a copy of b with (x,y) set to c. Capturing is not done here.
func (b Board) WithStone(x, y int, c Color) Board {
	b[index(x, y)] = c
	return b
}

func (b Board) Count(c Color) int {
	n := 0
	for _, v := range b {
		if v == c {
			n++
		}
	}
	return n
}

func (b Board) Stones(c Color) []Point {
	var stones []Point
	for i, v := range b {
		if v == c {
			stones = append(stones, Point{X: i % Size, Y: i / Size})
		}
	}
	return stones
}

// Rows renders the board as one string per row, "B", "W" and "." per intersection.
func (b Board) Rows() []string {
	rows := make([]string, Size)
	var sb strings.Builder
	for y := 0; y < Size; y++ {
		sb.Reset()
		for x := 0; x < Size; x++ {
			sb.WriteString(b[y*Size+x].String())
		}
		rows[y] = sb.String()
	}
	return rows
}

func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Rows())
}

// ParseRows is the inverse of Rows.
func ParseRows(rows []string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("board: want %d rows, got %d", Size, len(rows))
	}
	for y, row := range rows {
		if len(row) != Size {
			return b, fmt.Errorf("board: row %d has %d points", y, len(row))
		}
		for x := 0; x < Size; x++ {
			c, ok := ParseColor(row[x : x+1])
			if !ok {
				return b, fmt.Errorf("board: unknown point %q at (%d,%d)", row[x], x, y)
			}
			b[y*Size+x] = c
		}
	}
	return b, nil
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := ParseRows(rows)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

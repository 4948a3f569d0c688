package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
)

// GTPPass is how engines spell a pass.
const GTPPass = "pass"

// gtpColumns skips "I".
const gtpColumns = "ABCDEFGHJKLMNOPQRST"

// ColumnLabel is the engine letter of column x.
func ColumnLabel(x int) string {
	return gtpColumns[x : x+1]
}

// ToGTP converts a point to engine notation, e.g. (3,3) -> "D16". Rows count from the bottom.
func ToGTP(p board.Point) (string, error) {
	if !p.OnBoard() {
		return "", fmt.Errorf("point (%d,%d) is outside the board", p.X, p.Y)
	}
	return fmt.Sprintf("%c%d", gtpColumns[p.X], board.Size-p.Y), nil
}

// MoveToGTP returns the engine notation of a move, "pass" for passes.
func MoveToGTP(m game.Move) (string, error) {
	if m.IsPass {
		return GTPPass, nil
	}
	return ToGTP(m.Point())
}

// FromGTP parses engine notation. pass is true for "pass".
func FromGTP(s string) (p board.Point, pass bool, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == strings.ToUpper(GTPPass) {
		return board.Point{X: -1, Y: -1}, true, nil
	}
	if len(s) < 2 {
		return p, false, fmt.Errorf("invalid coordinate %q", s)
	}
	x := strings.IndexByte(gtpColumns, s[0])
	if x < 0 {
		return p, false, fmt.Errorf("invalid column in %q", s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 || row > board.Size {
		return p, false, fmt.Errorf("invalid row in %q", s)
	}
	return board.Point{X: x, Y: board.Size - row}, false, nil
}

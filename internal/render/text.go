package render

import (
	"fmt"
	"strings"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/record"
)

var stoneGlyph = map[board.Color]byte{
	board.Empty: '.',
	board.Black: 'X',
	board.White: 'O',
}

// Text draws b as an ASCII grid with engine coordinates. The stone of last,
// when it is not a pass, is wrapped in parentheses.
func Text(b board.Board, last *game.Move) string {
	marked := board.Point{X: -1, Y: -1}
	if last != nil && !last.IsPass {
		marked = last.Point()
	}

	var sb strings.Builder
	writeColumns(&sb)
	for y := 0; y < board.Size; y++ {
		fmt.Fprintf(&sb, "%2d", board.Size-y)
		for x := 0; x < board.Size; x++ {
			switch {
			case marked.Y == y && marked.X == x:
				sb.WriteByte('(')
			case marked.Y == y && marked.X == x-1:
				sb.WriteByte(')')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteByte(stoneGlyph[b.At(x, y)])
		}
		if marked.Y == y && marked.X == board.Size-1 {
			sb.WriteByte(')')
		} else {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d\n", board.Size-y)
	}
	writeColumns(&sb)
	return sb.String()
}

func writeColumns(sb *strings.Builder) {
	sb.WriteString("  ")
	for x := 0; x < board.Size; x++ {
		sb.WriteByte(' ')
		sb.WriteString(record.ColumnLabel(x))
	}
	sb.WriteByte('\n')
}

// Caption describes a snapshot in one line, e.g. "Move 12/159, W D4, black to play".
func Caption(snap game.Snapshot) string {
	var last string
	if snap.LastMove != nil {
		coord, err := record.MoveToGTP(*snap.LastMove)
		if err != nil {
			coord = "?"
		}
		last = fmt.Sprintf(", %s %s", snap.LastMove.Player, coord)
	}
	side := "black"
	if snap.NextColor == board.White {
		side = "white"
	}
	return fmt.Sprintf("Move %d/%d%s, %s to play", snap.Cursor, snap.Total, last, side)
}

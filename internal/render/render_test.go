package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
)

func TestText(t *testing.T) {
	b := board.NewEmpty().
		WithStone(3, 3, board.Black).
		WithStone(15, 15, board.White)
	last := game.NewMove(board.White, 15, 15)

	lines := strings.Split(strings.TrimRight(Text(b, &last), "\n"), "\n")
	require.Len(t, lines, board.Size+2)

	assert.Equal(t, "   A B C D E F G H J K L M N O P Q R S T", lines[0])
	assert.Equal(t, lines[0], lines[len(lines)-1])
	assert.Equal(t, "16 . . . X . . . . . . . . . . . . . . . 16", lines[4])
	assert.Equal(t, " 4 . . . . . . . . . . . . . . .(O). . . 4", lines[16])
	assert.Equal(t, " 1 . . . . . . . . . . . . . . . . . . . 1", lines[19])
}

func TestTextMarksEdgeStone(t *testing.T) {
	b := board.NewEmpty().WithStone(18, 0, board.Black)
	last := game.NewMove(board.Black, 18, 0)

	lines := strings.Split(Text(b, &last), "\n")
	assert.True(t, strings.HasSuffix(lines[1], "(X)19"), lines[1])
}

func TestTextPassHasNoMarker(t *testing.T) {
	pass := game.NewPass(board.Black)
	require.NotContains(t, Text(board.NewEmpty(), &pass), "(")
	require.NotContains(t, Text(board.NewEmpty(), nil), "(")
}

func TestCaption(t *testing.T) {
	last := game.NewMove(board.White, 3, 15)
	snap := game.Snapshot{Cursor: 12, Total: 159, LastMove: &last, NextColor: board.Black}
	require.Equal(t, "Move 12/159, W D4, black to play", Caption(snap))

	require.Equal(t, "Move 0/0, black to play", Caption(game.Snapshot{NextColor: board.Black}))
}

func TestPDF(t *testing.T) {
	last := game.NewMove(board.Black, 3, 3)
	snap := game.Snapshot{
		Cursor:    1,
		Total:     1,
		Board:     board.NewEmpty().WithStone(3, 3, board.Black),
		LastMove:  &last,
		NextColor: board.White,
	}

	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, snap, "Ear-reddening game"))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

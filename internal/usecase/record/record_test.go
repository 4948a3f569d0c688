package record

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
)

func TestDecodeFourMoves(t *testing.T) {
	moves := Decode(";B[dd];W[pp];B[dp];W[pd]")

	require.Equal(t, []game.Move{
		game.NewMove(board.Black, 3, 3),
		game.NewMove(board.White, 15, 15),
		game.NewMove(board.Black, 3, 15),
		game.NewMove(board.White, 15, 3),
	}, moves)
}

func TestDecodePasses(t *testing.T) {
	moves := Decode("(;GM[1]SZ[19];B[];W[tt];B[aa])")

	require.Len(t, moves, 3)
	assert.Equal(t, game.NewPass(board.Black), moves[0])
	assert.Equal(t, game.NewPass(board.White), moves[1])
	assert.Equal(t, game.NewMove(board.Black, 0, 0), moves[2])
}

func TestDecodeSkipsMetadata(t *testing.T) {
	t.Run("header and setup properties are not moves", func(t *testing.T) {
		text := "(;GM[1]FF[4]PB[Kuwahara Shusaku]PW[Gennan Inseki]AB[dd][pp]AW[dp]WR[9d]BR[7d]" +
			"AddBlack[cc];B[qd];W[dc])"
		moves := Decode(text)
		require.Equal(t, []game.Move{
			game.NewMove(board.Black, 16, 3),
			game.NewMove(board.White, 3, 2),
		}, moves)
	})

	t.Run("brackets inside comments are opaque", func(t *testing.T) {
		moves := Decode(`(;C[try ;B[aa\] here];B[bb]C[good ;W[cc\]])`)
		require.Len(t, moves, 1)
		assert.Equal(t, 1, moves[0].X)
		assert.Equal(t, 1, moves[0].Y)
		assert.Equal(t, "good ;W[cc]", moves[0].Comment)
	})

	t.Run("malformed move values are dropped", func(t *testing.T) {
		moves := Decode(";B[zz];W[abc];B[A1];W[d];B[ee];W[Dd]")
		require.Equal(t, []game.Move{game.NewMove(board.Black, 4, 4)}, moves)
	})

	t.Run("unterminated value at the end", func(t *testing.T) {
		moves := Decode(";B[dd];W[pp")
		require.Equal(t, []game.Move{game.NewMove(board.Black, 3, 3)}, moves)
	})

	t.Run("text that is not a record", func(t *testing.T) {
		require.Empty(t, Decode("hello world [not] a record"))
		require.Empty(t, Decode(""))
		require.Empty(t, Decode("B[dd]"), "moves outside a node are ignored")
	})

	t.Run("whitespace between tokens", func(t *testing.T) {
		moves := Decode("(; B [dd]\n ;W\t[pp] )")
		require.Len(t, moves, 2)
	})

	t.Run("variations are read flat in text order", func(t *testing.T) {
		moves := Decode("(;B[aa](;W[bb])(;W[cc]))")
		require.Len(t, moves, 3)
		assert.Equal(t, board.Point{X: 2, Y: 2}, moves[2].Point())
	})
}

func TestDecodeIsIdempotent(t *testing.T) {
	text := "(;B[dd]C[opening];W[pp];B[];W[tt];B[dp])"
	require.Equal(t, Decode(text), Decode(text))
}

func TestDecodeFixture(t *testing.T) {
	raw, err := os.ReadFile("testdata/ear_reddening.sgf")
	require.NoError(t, err)

	moves := Decode(string(raw))
	require.Len(t, moves, 159)
	assert.Equal(t, game.NewMove(board.Black, 16, 3), moves[0])
	assert.Equal(t, game.NewMove(board.White, 3, 2), moves[1])
	assert.Equal(t, game.NewMove(board.Black, 10, 18), moves[158])
	for i, m := range moves {
		want := board.Black
		if i%2 == 1 {
			want = board.White
		}
		require.Equal(t, want, m.Player, "move %d", i)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	raw, err := os.ReadFile("testdata/ear_reddening.sgf")
	require.NoError(t, err)

	for _, text := range []string{
		string(raw),
		";B[dd];W[pp];B[dp];W[pd]",
		"(;B[]C[pass \\] here];W[tt];B[ss])",
		"",
	} {
		moves := Decode(text)
		encoded := Encode(moves, Header{PlayerBlack: "Shusaku", Komi: 6.5})
		require.Equal(t, moves, Decode(encoded), encoded)
	}
}

func TestEncode(t *testing.T) {
	moves := []game.Move{
		game.NewMove(board.Black, 3, 3),
		game.NewPass(board.White),
		{Player: board.Black, X: 18, Y: 0, Comment: "a]b"},
	}
	got := Encode(moves, Header{PlayerBlack: "B1", PlayerWhite: "W1", Komi: 6.5, Rules: "Japanese"})
	require.Equal(t, `(;FF[4]GM[1]CA[UTF-8]SZ[19]PB[B1]PW[W1]KM[6.5]RU[Japanese];B[dd];W[];B[sa]C[a\]b])`, got)
}

func TestGTP(t *testing.T) {
	cases := map[board.Point]string{
		{X: 0, Y: 0}:   "A19",
		{X: 3, Y: 3}:   "D16",
		{X: 8, Y: 18}:  "J1",
		{X: 18, Y: 18}: "T1",
		{X: 15, Y: 15}: "Q4",
	}
	for p, want := range cases {
		got, err := ToGTP(p)
		require.NoError(t, err)
		require.Equal(t, want, got)

		back, pass, err := FromGTP(got)
		require.NoError(t, err)
		require.False(t, pass)
		require.Equal(t, p, back)
	}

	_, err := ToGTP(board.Point{X: 19, Y: 0})
	require.Error(t, err)

	_, pass, err := FromGTP("pass")
	require.NoError(t, err)
	require.True(t, pass)

	for _, bad := range []string{"", "I5", "A0", "A20", "Z3", "AA"} {
		_, _, err := FromGTP(bad)
		require.Error(t, err, bad)
	}

	s, err := MoveToGTP(game.NewPass(board.Black))
	require.NoError(t, err)
	require.Equal(t, GTPPass, s)
}

func TestDecodeHeader(t *testing.T) {
	raw, err := os.ReadFile("testdata/ear_reddening.sgf")
	require.NoError(t, err)

	h := DecodeHeader(string(raw))
	assert.Equal(t, "Kuwahara Shusaku", h.PlayerBlack)
	assert.Equal(t, "Gennan Inseki", h.PlayerWhite)
	assert.Equal(t, "1846-07-25", h.Date)
	assert.Equal(t, "Japanese", h.Rules)
	assert.Zero(t, h.Komi)

	h = DecodeHeader("(;GN[Final]KM[6.5]RE[W+R];B[dd]PB[late])")
	assert.Equal(t, Header{Title: "Final", Komi: 6.5, Result: "W+R"}, h)

	assert.Equal(t, Header{}, DecodeHeader("no record here"))
	assert.Equal(t, Header{}, DecodeHeader("(;KM[six])"))
}

func TestEncodeHeaderRoundTrip(t *testing.T) {
	h := Header{Title: "Ear reddening", PlayerBlack: "Shusaku", PlayerWhite: "Gennan", Date: "1846-07-25", Result: "B+2", Komi: 6.5}
	require.Equal(t, h, DecodeHeader(Encode(nil, h)))
}

package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/record"
)

// koShape: black takes the white stone at (2,1) by playing (1,1), white could retake at (2,1).
const koShape = "(;B[ca];W[ba];B[cc];W[bc];B[db];W[ab];B[ss];W[cb])"

func TestStrictPolicy(t *testing.T) {
	t.Run("suicide is rejected", func(t *testing.T) {
		tl := NewTimeline(WithPolicy(Strict))
		tl.Load(record.Decode(";B[ss];W[ba];B[sr];W[ab]"))
		tl.ToEnd()

		err := tl.PlayInteractive(0, 0)
		require.ErrorIs(t, err, errors.ErrSuicide)
		require.Equal(t, 4, tl.Len())
		require.Equal(t, board.Empty, tl.Board().At(0, 0))
	})

	t.Run("capturing is not suicide", func(t *testing.T) {
		tl := NewTimeline(WithPolicy(Strict))
		tl.Load(record.Decode(koShape))
		tl.ToEnd()

		require.NoError(t, tl.PlayInteractive(1, 1))
		require.Equal(t, board.Empty, tl.Board().At(2, 1))
	})

	t.Run("immediate retake is ko", func(t *testing.T) {
		tl := NewTimeline(WithPolicy(Strict))
		tl.Load(record.Decode(koShape))
		tl.ToEnd()
		require.NoError(t, tl.PlayInteractive(1, 1))

		err := tl.PlayInteractive(2, 1)
		require.ErrorIs(t, err, errors.ErrKo)
		require.Equal(t, 9, tl.Len())
	})

	t.Run("passes are never rejected", func(t *testing.T) {
		tl := NewTimeline(WithPolicy(Strict))
		require.NoError(t, tl.PlayPass())
		require.NoError(t, tl.PlayPass())
	})
}

func TestRelaxedPolicyAcceptsKo(t *testing.T) {
	tl := NewTimeline()
	tl.Load(record.Decode(koShape))
	tl.ToEnd()
	require.NoError(t, tl.PlayInteractive(1, 1))
	require.NoError(t, tl.PlayInteractive(2, 1))
	require.Equal(t, board.Empty, tl.Board().At(1, 1))
}

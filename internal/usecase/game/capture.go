package game

import (
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
)

// Group is a maximal set of same-colour stones connected through edges.
type Group struct {
	Color     board.Color
	Stones    []board.Point
	Liberties []board.Point
}

func (g Group) LibertyCount() int {
	return len(g.Liberties)
}

// GroupAt collects the group containing (x,y) and its distinct liberties.
// An empty intersection has no group.
func GroupAt(b board.Board, x, y int) Group {
	color := b.At(x, y)
	if color == board.Empty {
		return Group{}
	}

	group := Group{Color: color}
	visited := make(map[board.Point]bool)
	liberties := make(map[board.Point]bool)
	stack := []board.Point{{X: x, Y: y}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[p] {
			continue
		}
		visited[p] = true

		switch b.At(p.X, p.Y) {
		case color:
			group.Stones = append(group.Stones, p)
			for _, n := range p.Neighbors() {
				if !visited[n] {
					stack = append(stack, n)
				}
			}
		case board.Empty:
			if !liberties[p] {
				liberties[p] = true
				group.Liberties = append(group.Liberties, p)
			}
		}
	}

	return group
}

// Apply plays m on b and removes the opposing groups it leaves without
// liberties. A pass returns b as is. Suicide and ko are not checked here, see
// Policy. The target intersection must be on the board and empty.
func Apply(b board.Board, m game.Move) board.Board {
	if m.IsPass {
		return b
	}

	next := b.WithStone(m.X, m.Y, m.Player)
	opponent := m.Player.Opponent()
	for _, n := range m.Point().Neighbors() {
		if next.At(n.X, n.Y) != opponent {
			continue
		}
		group := GroupAt(next, n.X, n.Y)
		if group.LibertyCount() == 0 {
			for _, s := range group.Stones {
				next = next.WithStone(s.X, s.Y, board.Empty)
			}
		}
	}
	return next
}

// Captured lists the stones present in before that are gone in after.
func Captured(before, after board.Board) []board.Point {
	var removed []board.Point
	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			if before.At(x, y) != board.Empty && after.At(x, y) == board.Empty {
				removed = append(removed, board.Point{X: x, Y: y})
			}
		}
	}
	return removed
}

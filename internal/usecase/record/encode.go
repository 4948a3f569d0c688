package record

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/sgf"
)

// Header holds the root properties written on export. Zero fields are omitted.
type Header struct {
	Title       string
	PlayerBlack string
	PlayerWhite string
	Date        string
	Result      string
	Rules       string
	Komi        float64
	Comment     string
}

// fixed property order, remaining keys follow sorted
var orderedKeys = []string{"FF", "GM", "CA", "SZ", "GN", "PB", "PW", "DT", "RE", "KM", "RU", "B", "W", "C"}

// Encode writes moves back as a record. Only the move tokens round-trip: the
// header is rebuilt from h, not copied from whatever the moves were decoded from.
func Encode(moves []game.Move, h Header) string {
	return SerializeSGF(BuildSGF(moves, h))
}

func BuildSGF(moves []game.Move, h Header) *sgf.SGF {
	root := sgf.NewNode()
	root.Set("FF", "4")
	root.Set("GM", "1")
	root.Set("CA", "UTF-8")
	root.Set("SZ", strconv.Itoa(board.Size))
	setIfNotEmpty(root, "GN", h.Title)
	setIfNotEmpty(root, "PB", h.PlayerBlack)
	setIfNotEmpty(root, "PW", h.PlayerWhite)
	setIfNotEmpty(root, "DT", h.Date)
	setIfNotEmpty(root, "RE", h.Result)
	setIfNotEmpty(root, "RU", h.Rules)
	setIfNotEmpty(root, "C", h.Comment)
	if h.Komi != 0 {
		root.Set("KM", strconv.FormatFloat(h.Komi, 'f', 1, 64))
	}

	tree := &sgf.GameTree{Nodes: []sgf.Node{root}}
	AddMovesToSgf(tree, moves)
	return &sgf.SGF{Root: tree}
}

func AddMovesToSgf(tree *sgf.GameTree, moves []game.Move) {
	for _, move := range moves {
		node := sgf.NewNode()
		node.Set(move.Player.String(), EncodePoint(move))
		setIfNotEmpty(node, "C", move.Comment)
		tree.Nodes = append(tree.Nodes, node)
	}
}

// EncodePoint returns the two letter value of a move, "" for a pass.
func EncodePoint(move game.Move) string {
	if move.IsPass {
		return ""
	}
	return string([]byte{byte('a' + move.X), byte('a' + move.Y)})
}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	if s.Root != nil {
		serializeGameTree(&builder, s.Root)
	}
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}

		var rest []string
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		builder.WriteString(fmt.Sprintf("[%s]", escape(v)))
	}
}

func setIfNotEmpty(node sgf.Node, key, value string) {
	if value != "" {
		node.Set(key, value)
	}
}

var escaper = strings.NewReplacer(`\`, `\\`, `]`, `\]`)

func escape(v string) string {
	return escaper.Replace(v)
}

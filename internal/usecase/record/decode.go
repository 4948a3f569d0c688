package record

import (
	"strconv"
	"strings"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
)

// passValue is the coordinate some encoders write for a pass on boards up to 19 lines.
const passValue = "tt"

type property struct {
	id     string
	values []string
}

// Decode extracts the moves of a record in the order they appear. Only the B and
// W properties of a node are moves; everything else (header, setup stones,
// comments, markup, variation brackets) is skipped. Malformed move values are
// dropped and decoding goes on, so Decode never fails.
func Decode(text string) []game.Move {
	var (
		moves  []game.Move
		node   []property
		inNode bool
	)
	flush := func() {
		moves = append(moves, nodeMoves(node)...)
		node = node[:0]
	}

	s := scanner{text: text}
	for !s.done() {
		c := s.peek()
		switch {
		case c == ';':
			flush()
			inNode = true
			s.pos++
		case c == '(' || c == ')':
			flush()
			inNode = false
			s.pos++
		case isLetter(c):
			id := s.identifier()
			values, ok := s.values()
			if ok && inNode {
				node = append(node, property{id: id, values: values})
			}
		case c == '[':
			s.values()
		default:
			s.pos++
		}
	}
	flush()

	return moves
}

func nodeMoves(node []property) []game.Move {
	var (
		moves   []game.Move
		comment string
	)
	for _, p := range node {
		switch p.id {
		case "B", "W":
			player, _ := board.ParseColor(p.id)
			if move, ok := parseMove(player, p.values[0]); ok {
				moves = append(moves, move)
			}
		case "C":
			comment = strings.TrimSpace(p.values[0])
		}
	}
	if comment != "" {
		for i := range moves {
			moves[i].Comment = comment
		}
	}
	return moves
}

func parseMove(player board.Color, value string) (game.Move, bool) {
	if value == "" || (board.Size <= 19 && value == passValue) {
		return game.NewPass(player), true
	}
	if len(value) != 2 {
		return game.Move{}, false
	}
	x, okX := letterIndex(value[0])
	y, okY := letterIndex(value[1])
	if !okX || !okY {
		return game.Move{}, false
	}
	return game.NewMove(player, x, y), true
}

func letterIndex(c byte) (int, bool) {
	if c < 'a' || c >= 'a'+board.Size {
		return 0, false
	}
	return int(c - 'a'), true
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

type scanner struct {
	text string
	pos  int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.text)
}

func (s *scanner) peek() byte {
	return s.text[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.done() && isSpace(s.peek()) {
		s.pos++
	}
}

// identifier reads a run of letters. Mixed case runs such as "AddBlack" come
// back whole, so they never match a single letter move property.
func (s *scanner) identifier() string {
	start := s.pos
	for !s.done() && isLetter(s.peek()) {
		s.pos++
	}
	return s.text[start:s.pos]
}

// values reads the bracketed values following an identifier. It reports false
// when there is no value or the last one is not terminated.
func (s *scanner) values() ([]string, bool) {
	var values []string
	for {
		save := s.pos
		s.skipSpace()
		if s.done() || s.peek() != '[' {
			s.pos = save
			break
		}
		value, ok := s.value()
		if !ok {
			return nil, false
		}
		values = append(values, value)
	}
	return values, len(values) > 0
}

func (s *scanner) value() (string, bool) {
	s.pos++ // '['
	var sb strings.Builder
	for !s.done() {
		c := s.peek()
		s.pos++
		switch c {
		case ']':
			return sb.String(), true
		case '\\':
			if s.done() {
				return "", false
			}
			escaped := s.peek()
			s.pos++
			if escaped == '\n' || escaped == '\r' {
				// soft line break
				if !s.done() && s.peek() != escaped && (s.peek() == '\n' || s.peek() == '\r') {
					s.pos++
				}
				continue
			}
			sb.WriteByte(escaped)
		default:
			sb.WriteByte(c)
		}
	}
	return "", false
}

// DecodeHeader reads the game information of the first node. Unknown
// properties are ignored, and so is an unparsable komi.
func DecodeHeader(text string) Header {
	var h Header

	s := scanner{text: text}
	for !s.done() && s.peek() != ';' {
		s.pos++
	}
	if s.done() {
		return h
	}
	s.pos++

	for !s.done() {
		c := s.peek()
		switch {
		case c == ';' || c == '(' || c == ')':
			return h
		case isLetter(c):
			id := s.identifier()
			values, ok := s.values()
			if ok {
				h.set(id, strings.TrimSpace(values[0]))
			}
		default:
			s.pos++
		}
	}
	return h
}

func (h *Header) set(id, value string) {
	switch id {
	case "GN":
		h.Title = value
	case "PB":
		h.PlayerBlack = value
	case "PW":
		h.PlayerWhite = value
	case "DT":
		h.Date = value
	case "RE":
		h.Result = value
	case "RU":
		h.Rules = value
	case "C":
		h.Comment = value
	case "KM":
		if komi, err := strconv.ParseFloat(value, 64); err == nil {
			h.Komi = komi
		}
	}
}

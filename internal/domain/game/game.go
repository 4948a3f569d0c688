package game

import (
	"time"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
)

// Match is an archived game as stored by the match catalogue. Only the record
// text is read by the viewer; the other fields are shown as metadata.
type Match struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	PlayerBlack string    `json:"player_black" bson:"player_black"`
	PlayerWhite string    `json:"player_white" bson:"player_white"`
	PlayedAt    time.Time `json:"played_at" bson:"played_at"`
	Result      string    `json:"result" bson:"result"`
	Komi        float64   `json:"komi" bson:"komi"`
	SGF         string    `json:"sgf" bson:"sgf"`
}

// Snapshot is what a viewer displays for one cursor position.
type Snapshot struct {
	Cursor    int                 `json:"cursor"`
	Total     int                 `json:"total"`
	Board     board.Board         `json:"board"`
	LastMove  *Move               `json:"last_move,omitempty"`
	NextColor board.Color         `json:"next_color"`
	Captures  map[board.Color]int `json:"captures"`
}

// PlayRequest names the intersection to play. Both coordinates are required.
type PlayRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

func NewPlayRequest(x, y int) PlayRequest {
	return PlayRequest{X: &x, Y: &y}
}

// Coordinates returns the requested intersection or ErrMissingCoordinate.
func (r PlayRequest) Coordinates() (x, y int, err error) {
	if r.X == nil || r.Y == nil {
		return 0, 0, errors.ErrMissingCoordinate
	}
	return *r.X, *r.Y, nil
}

type CreateViewerRequest struct {
	SGF       string `json:"sgf,omitempty"`
	RecordKey string `json:"record_key,omitempty"`
	Strict    bool   `json:"strict,omitempty"`
}

type CreateViewerResponse struct {
	ViewerID string   `json:"viewer_id"`
	Snapshot Snapshot `json:"snapshot"`
}

type LoadRecordRequest struct {
	SGF string `json:"sgf"`
}

// MatchPage is one page of the archive listing. Matches carry no record text.
type MatchPage struct {
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	Total      int64   `json:"total"`
	Matches    []Match `json:"matches"`
}

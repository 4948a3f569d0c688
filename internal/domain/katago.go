package domain

// KatagoQuery is one request of the KataGo analysis engine JSON protocol.
type KatagoQuery struct {
	ID           string      `json:"id"`
	Moves        [][2]string `json:"moves"` // [["B","Q16"], ["W","D4"], ...]
	Rules        string      `json:"rules"`
	Komi         float64     `json:"komi"`
	BoardXSize   int         `json:"boardXSize"`
	BoardYSize   int         `json:"boardYSize"`
	AnalyzeTurns []int       `json:"analyzeTurns"`
	MaxVisits    int         `json:"maxVisits,omitempty"`
}

// KatagoResponse is the engine's answer for a single analyzed turn.
type KatagoResponse struct {
	ID         string     `json:"id"`
	TurnNumber int        `json:"turnNumber"`
	RootInfo   RootInfo   `json:"rootInfo"`
	MoveInfos  []MoveInfo `json:"moveInfos"`
	Error      string     `json:"error,omitempty"`
}

// RootInfo holds the evaluation of the position itself. Win rates are reported for black.
type RootInfo struct {
	CurrentPlayer string  `json:"currentPlayer"`
	Winrate       float64 `json:"winrate"`
	ScoreLead     float64 `json:"scoreLead"`
	Visits        int     `json:"visits"`
}

// MoveInfo is one candidate move, ordered best first.
type MoveInfo struct {
	Move      string   `json:"move"`
	Order     int      `json:"order"`
	Winrate   float64  `json:"winrate"`
	ScoreLead float64  `json:"scoreLead"`
	Visits    int      `json:"visits"`
	PV        []string `json:"pv"`
}

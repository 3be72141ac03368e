package domain

// BallsPerOver is the number of legal deliveries in a completed over.
const BallsPerOver = 6

// Innings status values.
const (
	InningsInProgress = "IN_PROGRESS"
	InningsCompleted  = "COMPLETED"
)

// InningsScoreState is the cumulative score of an innings. It is created
// zeroed when the innings begins and only ever rewritten by replaying the
// ball log.
type InningsScoreState struct {
	TotalRuns   int `json:"totalRuns"`
	Wickets     int `json:"wickets"`
	Overs       int `json:"overs"`
	BallsInOver int `json:"ballsInOver"`
}

// Innings is one batting innings of a match.
type Innings struct {
	ID            string
	MatchID       string
	InningsNumber int // 1 or 2
	BattingTeam   string
	Status        string

	Score InningsScoreState
}

// MatchPlayer is a roster entry. Dual players may bat for either team.
type MatchPlayer struct {
	PlayerID     string
	Team         string
	IsDualPlayer bool
}

// Match carries the fixed facts the scoring service needs to decide
// completion flags: the over limit and the roster.
type Match struct {
	ID         string
	TotalOvers int
	Players    []MatchPlayer
}

// BattingTeamSize counts players eligible to bat for the given team,
// including dual players.
func (m *Match) BattingTeamSize(team string) int {
	n := 0
	for _, p := range m.Players {
		if p.Team == team || p.IsDualPlayer {
			n++
		}
	}
	return n
}

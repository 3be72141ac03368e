package domain

// PlayerMatchStats is one player's cumulative line for a match innings.
// It is fully recomputed from the ball log on every record and undo,
// never patched incrementally.
type PlayerMatchStats struct {
	// Batting
	Runs       int `json:"runs"`
	BallsFaced int `json:"ballsFaced"`
	Fours      int `json:"fours"`
	Sixes      int `json:"sixes"`

	// Bowling
	BallsBowled  int `json:"ballsBowled"`
	RunsConceded int `json:"runsConceded"`
	Wickets      int `json:"wickets"`
	Maidens      int `json:"maidens"`
	Wides        int `json:"wides"`
	NoBalls      int `json:"noBalls"`

	// Fielding
	Catches   int `json:"catches"`
	RunOuts   int `json:"runOuts"`
	Stumpings int `json:"stumpings"`
}

// StatsSnapshot is one point of an innings score timeline, written to the
// analytics store after each authoritative record or undo.
type StatsSnapshot struct {
	InningsID  string
	BallCount  int // length of the ball log when the snapshot was taken
	TotalRuns  int
	Wickets    int
	Overs      int
	BallsInOver int
	RecordedAt int64 // unix ms
}

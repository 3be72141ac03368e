package domain

// RecordResult is the outcome of recording one ball.
type RecordResult struct {
	Ball         *Ball             `json:"ball"`
	UpdatedScore InningsScoreState `json:"updatedScore"`

	OverCompleted  bool `json:"overCompleted"`
	StrikerChanged bool `json:"strikerChanged"`

	// Completion flags. CanCompleteInnings signals that the caller may
	// offer to close the innings; the transition itself is owned by the
	// calling collaborator.
	CanCompleteInnings bool `json:"canCompleteInnings"`
	IsAllOut           bool `json:"isAllOut"`
	IsOversComplete    bool `json:"isOversComplete"`
	IsTargetReached    bool `json:"isTargetReached"`
}

// UndoResult is the outcome of undoing the last ball. DeletedBall is nil
// when the log was already empty, which is a no-op rather than an error.
type UndoResult struct {
	UpdatedScore InningsScoreState `json:"updatedScore"`
	DeletedBall  *Ball             `json:"deletedBall"`
}

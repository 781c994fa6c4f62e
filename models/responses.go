package models

// TaskOffer is a catalog task as presented to the user, together with the
// award drawn for this presentation. The same award value must be passed
// back in [CompleteTaskRequest.Points] on completion.
type TaskOffer struct {
	TaskDefinition
	// Award is the proposed point value for completing the task now,
	// drawn uniformly from [MinPoints, MaxPoints].
	Award int `json:"award"`
}

// CompleteTaskResponse reports the outcome of a task completion.
type CompleteTaskResponse struct {
	User User `json:"user"`

	// LeveledUp is true when this completion moved the user to a new tier.
	LeveledUp bool `json:"leveled_up"`
}

// RedeemResponse reports a successful redemption: the updated user and the
// reward that was granted.
type RedeemResponse struct {
	User   User             `json:"user"`
	Reward RewardDefinition `json:"reward"`
}

// QuotaResponse reports the user's remaining daily task allowance.
type QuotaResponse struct {
	Completed int `json:"completed"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// ProfileResponse is the authenticated user's own account view, enriched
// with the distance to the next tier.
type ProfileResponse struct {
	User              User `json:"user"`
	PointsToNextLevel int  `json:"points_to_next_level"`
}

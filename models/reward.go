package models

// RewardDefinition is one entry of the static reward catalog. Definitions
// are immutable at runtime; each reward is redeemable at most once per user.
type RewardDefinition struct {
	// ID uniquely identifies the reward across the catalog.
	ID string `json:"id"`

	// Level is the minimum tier a user must have reached to redeem.
	Level Level `json:"level"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// CostPoints is deducted from the user's balance on redemption. ≥ 0.
	CostPoints int `json:"cost_points"`
}

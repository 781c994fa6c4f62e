package models

import (
	"slices"
	"time"
)

// User represents an account entity of the Green+ ledger. It owns its own
// points, level, badges and redemption history exclusively; no field is
// shared-mutable across users.
//
// Invariant: after every points mutation performed by the progression engine,
// Level == LevelForPoints(Points). Redemption is the deliberate exception —
// it deducts points without recomputing the level downward.
type User struct {
	// Email is the unique identifier of the account.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's credential.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// Name is the display name of the user. Non-sensitive, shown in UI.
	Name string `json:"name"`

	// Points is the accumulated point total. Non-negative; it only grows
	// through task completion and only shrinks through reward redemption.
	Points int `json:"points"`

	// Level is the progression tier derived from Points. Sticky: it never
	// moves backward once attained.
	Level Level `json:"level"`

	// LastLogin is the calendar date of the most recent successful
	// authentication.
	LastLogin time.Time `json:"last_login"`

	// Badges holds one badge per tier the user has ever reached, in order
	// of attainment, without duplicates.
	Badges []string `json:"badges"`

	// RedeemedRewards holds the ids of rewards redeemed by the user, in
	// order of first redemption. An id present here can never be redeemed
	// again.
	RedeemedRewards []string `json:"redeemed_rewards"`
}

// NewUser returns a freshly registered account: zero points, Basic level,
// empty badge and redemption sets.
func NewUser(email, passwordHash, name string) User {
	return User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Points:       0,
		Level:        LevelBasic,
	}
}

// HasBadge reports whether the badge is already present.
func (u *User) HasBadge(badge string) bool {
	return slices.Contains(u.Badges, badge)
}

// GrantBadge appends the badge of the given level if it is not already
// present. Returns true when a new badge was minted.
func (u *User) GrantBadge(level Level) bool {
	badge := level.Badge()
	if badge == "" || u.HasBadge(badge) {
		return false
	}
	u.Badges = append(u.Badges, badge)
	return true
}

// HasRedeemed reports whether the reward id is in the redemption history.
func (u *User) HasRedeemed(rewardID string) bool {
	return slices.Contains(u.RedeemedRewards, rewardID)
}

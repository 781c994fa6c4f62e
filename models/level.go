package models

// Level is a progression tier of the ledger. Tiers order strictly:
// Basic < Intermediate < Advanced.
type Level string

const (
	LevelBasic        Level = "Basic"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Point thresholds of the tier ladder. A user reaches Intermediate at
// IntermediateThreshold points and Advanced at AdvancedThreshold points.
const (
	IntermediateThreshold = 100
	AdvancedThreshold     = 300
)

// LevelForPoints maps a point total onto the tier ladder.
// The breakpoints are inclusive: 100 points is already Intermediate and
// 300 points is already Advanced.
func LevelForPoints(points int) Level {
	switch {
	case points >= AdvancedThreshold:
		return LevelAdvanced
	case points >= IntermediateThreshold:
		return LevelIntermediate
	default:
		return LevelBasic
	}
}

// PointsToNextLevel returns how many points are still missing to reach the
// next tier, or zero when the total already sits on the top tier.
func PointsToNextLevel(points int) int {
	switch {
	case points >= AdvancedThreshold:
		return 0
	case points >= IntermediateThreshold:
		return AdvancedThreshold - points
	default:
		return IntermediateThreshold - points
	}
}

// Rank returns the position of the level on the tier ladder, starting at 1
// for Basic. Unknown levels rank below every valid tier.
func (l Level) Rank() int {
	switch l {
	case LevelBasic:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether l is the same tier as other or a higher one.
func (l Level) AtLeast(other Level) bool {
	return l.Rank() >= other.Rank()
}

// Valid reports whether l is one of the three known tiers.
func (l Level) Valid() bool {
	return l.Rank() > 0
}

// Badge returns the badge minted when a user reaches the level, or an empty
// string for an unknown level.
func (l Level) Badge() string {
	switch l {
	case LevelBasic:
		return "Conscious"
	case LevelIntermediate:
		return "Engaged"
	case LevelAdvanced:
		return "Sustainable"
	default:
		return ""
	}
}

package models

// TaskDefinition is one entry of the static task catalog. Definitions are
// immutable at runtime; the catalog is loaded once at startup.
type TaskDefinition struct {
	// Level gates the task: it is offered only to users of exactly this tier.
	Level Level `json:"level"`

	// Name identifies the task inside the catalog and in progress entries.
	Name string `json:"name"`

	// Description explains what the user has to do.
	Description string `json:"description"`

	// MinPoints and MaxPoints bound the award drawn for one completion,
	// inclusive on both ends. MinPoints ≤ MaxPoints, both ≥ 0.
	MinPoints int `json:"min_points"`
	MaxPoints int `json:"max_points"`
}

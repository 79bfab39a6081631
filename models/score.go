package models

import "time"

// Canonical age categories produced by the normalizer. Anything else that
// arrives from manual entry is passed through as-is.
const (
	CategoryJunior      = "Junior"
	CategorySenior      = "Senior"
	CategorySuperSenior = "Super-Senior"
	CategoryGeneral     = "General"

	// CategoryAll is the sentinel used by list/leaderboard filters.
	CategoryAll = "All"
)

// Score is one recorded outcome for a competition item. For individual events
// the ranked entries in Positions span several teams; for group events the
// record belongs to a single team (TeamID) and carries no category.
type Score struct {
	ID           int        `json:"id" db:"id"`
	ItemID       int        `json:"item_id" db:"item_id"`
	TeamID       *int       `json:"team_id,omitempty" db:"team_id"`
	Category     string     `json:"category,omitempty" db:"category"`
	IsGroupEvent bool       `json:"is_group_event" db:"is_group_event"`
	Positions    []Position `json:"positions" db:"-"`
	TotalPoints  int        `json:"total_points" db:"total_points"`
	Published    bool       `json:"published" db:"published"`
	Remarks      *string    `json:"remarks,omitempty" db:"remarks"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Position is one team/participant's rank within a score. Every persisted
// entry has a valid team reference; entries without one never survive
// validation.
type Position struct {
	ID              int     `json:"id,omitempty" db:"id"`
	ScoreID         int     `json:"score_id,omitempty" db:"score_id"`
	TeamID          int     `json:"team_id" db:"team_id"`
	ParticipantName *string `json:"participant_name,omitempty" db:"participant_name"`
	Position        int     `json:"position" db:"position"`
	Points          int     `json:"points" db:"points"`
}

// TeamTotal is a single leaderboard row.
type TeamTotal struct {
	TeamID      int    `json:"team_id"`
	TeamName    string `json:"team_name"`
	TotalPoints int    `json:"total_points"`
	Entries     int    `json:"entries"`
}

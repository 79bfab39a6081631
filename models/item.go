package models

import "time"

type ItemType string

const (
	ItemTypeSolo  ItemType = "solo"
	ItemTypeGroup ItemType = "group"
)

type StageType string

const (
	StageTypeStage    StageType = "Stage"
	StageTypeOffStage StageType = "Off-stage"
)

// Item is one competition of the festival programme.
type Item struct {
	ID          int        `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Category    string     `json:"category" db:"category"`
	Type        ItemType   `json:"type" db:"type"`
	Stage       *string    `json:"stage,omitempty" db:"stage"`
	StageType   StageType  `json:"stage_type" db:"stage_type"`
	EventDate   *time.Time `json:"event_date,omitempty" db:"event_date"`
	EventTime   string     `json:"event_time" db:"event_time"`
	Description *string    `json:"description,omitempty" db:"description"`
	Rules       *string    `json:"rules,omitempty" db:"rules"`
	Prizes      *string    `json:"prizes,omitempty" db:"prizes"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

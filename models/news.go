package models

import "time"

type NewsPriority string

const (
	NewsPriorityLow    NewsPriority = "low"
	NewsPriorityNormal NewsPriority = "normal"
	NewsPriorityMedium NewsPriority = "medium"
	NewsPriorityHigh   NewsPriority = "high"
)

type News struct {
	ID          int          `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Content     string       `json:"content" db:"content"`
	Category    string       `json:"category" db:"category"`
	Priority    NewsPriority `json:"priority" db:"priority"`
	PublishedAt time.Time    `json:"published_at" db:"published_at"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`

	ImageKey *string `json:"-" db:"image_key"`
	ImageURL *string `json:"image_url,omitempty" db:"-"`
}

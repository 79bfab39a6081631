package models

import "time"

type Team struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	CaptainName  *string   `json:"captain_name,omitempty" db:"captain_name"`
	CaptainEmail *string   `json:"captain_email,omitempty" db:"captain_email"`
	CaptainPhone *string   `json:"captain_phone,omitempty" db:"captain_phone"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Participants []Participant `json:"participants,omitempty" db:"-"`

	MembersFileKey *string `json:"-" db:"members_file_key"`
	MembersFileURL *string `json:"members_file_url,omitempty" db:"-"`
}

// Participant is one roster entry of a team.
type Participant struct {
	ID          int     `json:"id,omitempty" db:"id"`
	TeamID      int     `json:"team_id,omitempty" db:"team_id"`
	Name        string  `json:"name" db:"name"`
	Category    string  `json:"category" db:"category"`
	ChestNumber *string `json:"chest_number,omitempty" db:"chest_number"`
}

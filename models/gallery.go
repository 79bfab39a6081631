package models

import "time"

type GalleryMediaType string

const (
	GalleryMediaImage GalleryMediaType = "image"
	GalleryMediaVideo GalleryMediaType = "video"
)

type GalleryItem struct {
	ID        int              `json:"id" db:"id"`
	Caption   string           `json:"caption" db:"caption"`
	Type      GalleryMediaType `json:"type" db:"type"`
	Category  string           `json:"category" db:"category"`
	FileName  *string          `json:"file_name,omitempty" db:"file_name"`
	FileSize  *int64           `json:"file_size,omitempty" db:"file_size"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`

	ObjectKey string  `json:"-" db:"object_key"`
	URL       *string `json:"url,omitempty" db:"-"`
}

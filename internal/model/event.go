package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Slug              string    `json:"slug"`
	Name              string    `json:"name"`
	Date              time.Time `json:"date"`
	MaxImages         int       `json:"max_images"`
	CoverURL          string    `json:"cover_url"`
	CoverThumbnailURL string    `json:"cover_thumbnail_url"`
	IsPublished       bool      `json:"is_published"`
	CreatedAt         time.Time `json:"created_at"`

	// Поля, заполняемые из JOIN-ов при чтении
	UserName    string `json:"username,omitempty"`
	CountPhotos uint   `json:"count_photos,omitempty"`
}

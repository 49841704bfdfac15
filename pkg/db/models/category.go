package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level catalog section (e.g. "Salons", "Chambres").
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex"`
	ImageURL  *string   `gorm:"column:image_url"`
	HeroImage *string   `gorm:"column:hero_image"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

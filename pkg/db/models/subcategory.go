package models

import (
	"time"

	"github.com/google/uuid"
)

// Subcategory narrows a Category (e.g. "Canapés" under "Salons").
type Subcategory struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Slug       string    `gorm:"column:slug;not null"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;index"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

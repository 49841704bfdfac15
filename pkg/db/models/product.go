package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a catalog listing. The storefront is quote-based, so there is
// no price column; customers request a quote for their selection instead.
type Product struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string         `gorm:"column:name;not null"`
	Description    string         `gorm:"column:description;not null;default:''"`
	ImageURL       string         `gorm:"column:image_url;not null;default:''"`
	ProductImage   *string        `gorm:"column:product_image"`
	AmbientImages  pq.StringArray `gorm:"column:ambient_images;type:text[]"`
	Diagrams       pq.StringArray `gorm:"column:diagrams;type:text[]"`
	CategoryID     uuid.UUID      `gorm:"column:category_id;type:uuid;not null;index"`
	SubcategoryID  *uuid.UUID     `gorm:"column:subcategory_id;type:uuid"`
	Ambiance       *string        `gorm:"column:ambiance"`
	Color          *string        `gorm:"column:color"`
	Materials      *string        `gorm:"column:materials"`
	Dimensions     *string        `gorm:"column:dimensions"`
	Weight         *string        `gorm:"column:weight"`
	AdditionalInfo *string        `gorm:"column:additional_info"`
	Available      bool           `gorm:"column:available;not null;default:true"`
	Category       *Category      `gorm:"foreignKey:CategoryID"`
	Subcategory    *Subcategory   `gorm:"foreignKey:SubcategoryID"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

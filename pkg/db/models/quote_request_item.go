package models

import (
	"time"

	"github.com/google/uuid"
)

// QuoteRequestItem snapshots one cart line at submission time. ProductName is
// the display name the customer saw; it is intentionally not kept in sync
// with later product renames.
type QuoteRequestItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteRequestID uuid.UUID `gorm:"column:quote_request_id;type:uuid;not null;index"`
	ProductID      string    `gorm:"column:product_id;not null"`
	ProductName    string    `gorm:"column:product_name;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dfameublement/catalogue-backend/pkg/enums"
)

// QuoteRequest is the header row for a submitted quote inquiry. Line items
// hang off it and reference the generated id.
type QuoteRequest struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName  string             `gorm:"column:customer_name;not null"`
	CustomerEmail string             `gorm:"column:customer_email;not null"`
	CustomerPhone *string            `gorm:"column:customer_phone"`
	Message       *string            `gorm:"column:message"`
	Status        enums.QuoteStatus  `gorm:"column:status;not null;default:'pending'"`
	Items         []QuoteRequestItem `gorm:"foreignKey:QuoteRequestID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
}

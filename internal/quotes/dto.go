package quotes

import (
	"time"

	"github.com/dfameublement/catalogue-backend/pkg/db/models"
)

// SubmitItem is one cart line carried into a quote request. ProductName is
// snapshotted so the quote stays readable after catalog edits.
type SubmitItem struct {
	ProductID   string
	ProductName string
	Quantity    int
}

// SubmitParams carries the customer form plus the cart lines being quoted.
type SubmitParams struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Message       string
	Items         []SubmitItem
}

// SubmissionDTO is what the storefront gets back after a successful submit.
type SubmissionDTO struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

func newSubmissionDTO(quote *models.QuoteRequest) *SubmissionDTO {
	return &SubmissionDTO{
		ID:        quote.ID.String(),
		Status:    string(quote.Status),
		ItemCount: len(quote.Items),
		CreatedAt: quote.CreatedAt,
	}
}

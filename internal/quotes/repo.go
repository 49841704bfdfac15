package quotes

import (
	"context"

	"github.com/dfameublement/catalogue-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists quote requests.
type Repository interface {
	// CreateQuoteRequest writes the header row and every line item in a
	// single transaction. Either all rows land or none do.
	CreateQuoteRequest(ctx context.Context, quote *models.QuoteRequest) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a quote repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) CreateQuoteRequest(ctx context.Context, quote *models.QuoteRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := quote.Items
		quote.Items = nil
		if err := tx.Create(quote).Error; err != nil {
			quote.Items = items
			return err
		}
		for i := range items {
			items[i].QuoteRequestID = quote.ID
		}
		if len(items) > 0 {
			if err := tx.CreateInBatches(items, 100).Error; err != nil {
				quote.Items = items
				return err
			}
		}
		quote.Items = items
		return nil
	})
}

package quotes

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/dfameublement/catalogue-backend/pkg/db/models"
	"github.com/dfameublement/catalogue-backend/pkg/enums"
	pkgerrors "github.com/dfameublement/catalogue-backend/pkg/errors"
	"github.com/dfameublement/catalogue-backend/pkg/logger"
	"github.com/dfameublement/catalogue-backend/pkg/metrics"
)

// Service defines the quote submission operation.
type Service interface {
	// Submit validates the customer form, persists the quote request with
	// its line items atomically, and notifies the sales team. A validation
	// failure performs no writes. Submit never touches the caller's cart;
	// clearing it after success is the caller's decision.
	Submit(ctx context.Context, params SubmitParams) (*SubmissionDTO, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	logg     *logger.Logger
	metrics  *metrics.QuoteMetrics
}

// NewService wires quote submission dependencies. The notifier may be a
// NopNotifier; metrics may be nil.
func NewService(repo Repository, notifier Notifier, logg *logger.Logger, quoteMetrics *metrics.QuoteMetrics) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "quotes repository required")
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &service{
		repo:     repo,
		notifier: notifier,
		logg:     logg,
		metrics:  quoteMetrics,
	}, nil
}

func (s *service) Submit(ctx context.Context, params SubmitParams) (*SubmissionDTO, error) {
	start := time.Now()

	quote, err := buildQuoteRequest(params)
	if err != nil {
		s.metrics.IncFailure(failureCode(err))
		s.metrics.ObserveDuration("failure", time.Since(start))
		return nil, err
	}

	if err := s.repo.CreateQuoteRequest(ctx, quote); err != nil {
		s.metrics.IncFailure(string(pkgerrors.CodeDependency))
		s.metrics.ObserveDuration("failure", time.Since(start))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist quote request")
	}

	s.metrics.IncSuccess(len(quote.Items))
	s.metrics.ObserveDuration("success", time.Since(start))

	if s.logg != nil {
		ctx = s.logg.WithQuoteID(ctx, quote.ID.String())
		s.logg.Info(ctx, "quote request persisted")
	}

	// The quote is already saved; a notification failure is logged and
	// swallowed so the customer still sees a success.
	if err := s.notifier.QuoteSubmitted(ctx, quote); err != nil && s.logg != nil {
		s.logg.Error(ctx, "quote notification failed", err)
	}

	return newSubmissionDTO(quote), nil
}

func failureCode(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return string(typed.Code())
	}
	return string(pkgerrors.CodeInternal)
}

func buildQuoteRequest(params SubmitParams) (*models.QuoteRequest, error) {
	name := strings.TrimSpace(params.CustomerName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}

	email := strings.TrimSpace(params.CustomerEmail)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer email")
	}

	if len(params.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}

	quote := &models.QuoteRequest{
		CustomerName:  name,
		CustomerEmail: email,
		Status:        enums.QuoteStatusPending,
		Items:         make([]models.QuoteRequestItem, 0, len(params.Items)),
	}
	if phone := strings.TrimSpace(params.CustomerPhone); phone != "" {
		quote.CustomerPhone = &phone
	}
	if message := strings.TrimSpace(params.Message); message != "" {
		quote.Message = &message
	}

	for _, item := range params.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item product id required")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		quote.Items = append(quote.Items, models.QuoteRequestItem{
			ProductID:   item.ProductID,
			ProductName: strings.TrimSpace(item.ProductName),
			Quantity:    item.Quantity,
		})
	}
	return quote, nil
}

package controllers

import (
	"net/http"

	"github.com/dfameublement/catalogue-backend/api/responses"
	"github.com/dfameublement/catalogue-backend/api/validators"
	"github.com/dfameublement/catalogue-backend/internal/cart"
	"github.com/dfameublement/catalogue-backend/internal/quotes"
	pkgerrors "github.com/dfameublement/catalogue-backend/pkg/errors"
	"github.com/dfameublement/catalogue-backend/pkg/logger"
)

type quoteSubmitRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,max=200"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,max=40"`
	Message       string `json:"message" validate:"omitempty,max=4000"`
}

// SubmitQuote turns the caller's cart into a quote request. The cart is
// cleared only after the submission has been persisted; any failure leaves
// it untouched so the customer can retry.
func SubmitQuote(svc quotes.Service, manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotes service unavailable"))
			return
		}

		container, err := resolveContainer(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quoteSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := container.Items(r.Context())
		params := quotes.SubmitParams{
			CustomerName:  payload.CustomerName,
			CustomerEmail: payload.CustomerEmail,
			CustomerPhone: payload.CustomerPhone,
			Message:       payload.Message,
			Items:         make([]quotes.SubmitItem, 0, len(items)),
		}
		for _, item := range items {
			params.Items = append(params.Items, quotes.SubmitItem{
				ProductID:   item.ID,
				ProductName: item.Name,
				Quantity:    item.Quantity,
			})
		}

		result, err := svc.Submit(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		container.Clear(r.Context())

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

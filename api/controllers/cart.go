package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dfameublement/catalogue-backend/api/middleware"
	"github.com/dfameublement/catalogue-backend/api/responses"
	"github.com/dfameublement/catalogue-backend/api/validators"
	"github.com/dfameublement/catalogue-backend/internal/cart"
	pkgerrors "github.com/dfameublement/catalogue-backend/pkg/errors"
	"github.com/dfameublement/catalogue-backend/pkg/logger"
)

type cartStateResponse struct {
	Items      []cart.LineItem `json:"items"`
	TotalItems int             `json:"total_items"`
	Loaded     bool            `json:"loaded"`
}

type cartAddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	ImageURL  string `json:"image_url"`
	Quantity  int    `json:"quantity"`
}

type cartUpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func cartState(r *http.Request, container *cart.Container) cartStateResponse {
	items := container.Items(r.Context())
	if items == nil {
		items = []cart.LineItem{}
	}
	return cartStateResponse{
		Items:      items,
		TotalItems: container.TotalItems(r.Context()),
		Loaded:     container.Loaded(),
	}
}

func resolveContainer(r *http.Request, manager *cart.Manager) (*cart.Container, error) {
	token := middleware.CartTokenFromContext(r.Context())
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart token missing from request context")
	}
	return manager.Container(token), nil
}

// CartFetch returns the caller's current cart, loading it from storage on
// first touch.
func CartFetch(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		container, err := resolveContainer(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartState(r, container))
	}
}

// CartAddItem adds a product to the cart, merging quantities when the
// product is already present.
func CartAddItem(manager *cart.Manager, maxQuantity int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		container, err := resolveContainer(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartAddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := payload.Quantity
		if quantity > maxQuantity {
			quantity = maxQuantity
		}

		container.AddItem(r.Context(), cart.ProductRef{
			ID:       payload.ProductID,
			Name:     payload.Name,
			ImageURL: payload.ImageURL,
		}, quantity)

		responses.WriteSuccess(w, cartState(r, container))
	}
}

// CartUpdateQuantity sets the absolute quantity of a cart line. Zero or a
// negative value removes the line.
func CartUpdateQuantity(manager *cart.Manager, maxQuantity int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		container, err := resolveContainer(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id required"))
			return
		}

		var payload cartUpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := payload.Quantity
		if quantity > maxQuantity {
			quantity = maxQuantity
		}

		container.UpdateQuantity(r.Context(), productID, quantity)
		responses.WriteSuccess(w, cartState(r, container))
	}
}

// CartRemoveItem removes a cart line. Removing an absent product is a no-op.
func CartRemoveItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		container, err := resolveContainer(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id required"))
			return
		}

		container.RemoveItem(r.Context(), productID)
		responses.WriteSuccess(w, cartState(r, container))
	}
}

// CartClear empties the cart.
func CartClear(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		container, err := resolveContainer(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		container.Clear(r.Context())
		responses.WriteSuccess(w, cartState(r, container))
	}
}

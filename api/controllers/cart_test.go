package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dfameublement/catalogue-backend/api/middleware"
	"github.com/dfameublement/catalogue-backend/internal/cart"
	"github.com/dfameublement/catalogue-backend/pkg/types"
)

const testMaxQuantity = 5000

func newCartRouter(manager *cart.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CartToken(manager, nil))
	r.Get("/api/v1/cart", CartFetch(manager, nil))
	r.Post("/api/v1/cart/items", CartAddItem(manager, testMaxQuantity, nil))
	r.Patch("/api/v1/cart/items/{productId}", CartUpdateQuantity(manager, testMaxQuantity, nil))
	r.Delete("/api/v1/cart/items/{productId}", CartRemoveItem(manager, nil))
	r.Delete("/api/v1/cart", CartClear(manager, nil))
	return r
}

func decodeCartState(t *testing.T, body []byte) cartStateResponse {
	t.Helper()
	var envelope types.SuccessEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	raw, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("remarshal data: %v", err)
	}
	var state cartStateResponse
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	return state
}

func TestCartAddThenFetchSameToken(t *testing.T) {
	manager := cart.NewManager(cart.NewMemoryStore(), time.Millisecond, 0, nil)
	router := newCartRouter(manager)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"product_id":"p1","name":"Canapé","image_url":"","quantity":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, add)

	if rec.Code != http.StatusOK {
		t.Fatalf("add status %d body %s", rec.Code, rec.Body.String())
	}
	token := rec.Header().Get(middleware.CartTokenHeader)
	if token == "" {
		t.Fatal("expected minted cart token")
	}

	fetch := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	fetch.Header.Set(middleware.CartTokenHeader, token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, fetch)

	state := decodeCartState(t, rec.Body.Bytes())
	if len(state.Items) != 1 || state.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart state %+v", state)
	}
	if state.TotalItems != 2 || !state.Loaded {
		t.Fatalf("unexpected totals %+v", state)
	}
}

func TestCartAddClampsQuantity(t *testing.T) {
	manager := cart.NewManager(cart.NewMemoryStore(), time.Millisecond, 0, nil)
	router := newCartRouter(manager)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"product_id":"p1","name":"Canapé","quantity":999999}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, add)

	state := decodeCartState(t, rec.Body.Bytes())
	if state.Items[0].Quantity != testMaxQuantity {
		t.Fatalf("quantity not clamped: %d", state.Items[0].Quantity)
	}
}

func TestCartAddRejectsMissingProductID(t *testing.T) {
	manager := cart.NewManager(cart.NewMemoryStore(), time.Millisecond, 0, nil)
	router := newCartRouter(manager)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"name":"Canapé","quantity":1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, add)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartUpdateToZeroRemovesLine(t *testing.T) {
	manager := cart.NewManager(cart.NewMemoryStore(), time.Millisecond, 0, nil)
	router := newCartRouter(manager)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"product_id":"p1","name":"Canapé","quantity":3}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, add)
	token := rec.Header().Get(middleware.CartTokenHeader)

	update := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/p1",
		strings.NewReader(`{"quantity":0}`))
	update.Header.Set(middleware.CartTokenHeader, token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, update)

	state := decodeCartState(t, rec.Body.Bytes())
	if len(state.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", state.Items)
	}
}

func TestCartRemoveAbsentProductIsNoop(t *testing.T) {
	manager := cart.NewManager(cart.NewMemoryStore(), time.Millisecond, 0, nil)
	router := newCartRouter(manager)

	remove := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, remove)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	state := decodeCartState(t, rec.Body.Bytes())
	if len(state.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", state.Items)
	}
}

func TestCartClear(t *testing.T) {
	manager := cart.NewManager(cart.NewMemoryStore(), time.Millisecond, 0, nil)
	router := newCartRouter(manager)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"product_id":"p1","name":"Canapé","quantity":1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, add)
	token := rec.Header().Get(middleware.CartTokenHeader)

	clear := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	clear.Header.Set(middleware.CartTokenHeader, token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, clear)

	state := decodeCartState(t, rec.Body.Bytes())
	if state.TotalItems != 0 {
		t.Fatalf("expected cleared cart, got %+v", state)
	}
}

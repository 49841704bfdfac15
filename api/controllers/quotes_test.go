package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dfameublement/catalogue-backend/api/middleware"
	"github.com/dfameublement/catalogue-backend/internal/cart"
	"github.com/dfameublement/catalogue-backend/internal/quotes"
	pkgerrors "github.com/dfameublement/catalogue-backend/pkg/errors"
)

type fakeQuoteService struct {
	lastParams quotes.SubmitParams
	failWith   error
}

func (f *fakeQuoteService) Submit(ctx context.Context, params quotes.SubmitParams) (*quotes.SubmissionDTO, error) {
	f.lastParams = params
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &quotes.SubmissionDTO{
		ID:        uuid.NewString(),
		Status:    "pending",
		ItemCount: len(params.Items),
		CreatedAt: time.Now(),
	}, nil
}

func newQuoteRouter(svc quotes.Service, manager *cart.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CartToken(manager, nil))
	r.Post("/api/v1/cart/items", CartAddItem(manager, testMaxQuantity, nil))
	r.Post("/api/v1/quotes", SubmitQuote(svc, manager, nil))
	r.Get("/api/v1/cart", CartFetch(manager, nil))
	return r
}

func seedCart(t *testing.T, router http.Handler) string {
	t.Helper()
	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"product_id":"p1","name":"Buffet","quantity":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, add)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed cart: status %d", rec.Code)
	}
	return rec.Header().Get(middleware.CartTokenHeader)
}

func TestSubmitQuoteClearsCartOnSuccess(t *testing.T) {
	manager := cart.NewManager(cart.NewMemoryStore(), time.Millisecond, 0, nil)
	svc := &fakeQuoteService{}
	router := newQuoteRouter(svc, manager)
	token := seedCart(t, router)

	submit := httptest.NewRequest(http.MethodPost, "/api/v1/quotes",
		strings.NewReader(`{"customer_name":"Marie","customer_email":"marie@example.fr"}`))
	submit.Header.Set(middleware.CartTokenHeader, token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, submit)

	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status %d body %s", rec.Code, rec.Body.String())
	}
	if len(svc.lastParams.Items) != 1 || svc.lastParams.Items[0].ProductID != "p1" {
		t.Fatalf("cart items not forwarded: %+v", svc.lastParams.Items)
	}

	if total := manager.Container(token).TotalItems(context.Background()); total != 0 {
		t.Fatalf("cart not cleared after success: %d items", total)
	}
}

func TestSubmitQuoteKeepsCartOnFailure(t *testing.T) {
	manager := cart.NewManager(cart.NewMemoryStore(), time.Millisecond, 0, nil)
	svc := &fakeQuoteService{failWith: pkgerrors.New(pkgerrors.CodeDependency, "persist quote request")}
	router := newQuoteRouter(svc, manager)
	token := seedCart(t, router)

	submit := httptest.NewRequest(http.MethodPost, "/api/v1/quotes",
		strings.NewReader(`{"customer_name":"Marie","customer_email":"marie@example.fr"}`))
	submit.Header.Set(middleware.CartTokenHeader, token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, submit)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if total := manager.Container(token).TotalItems(context.Background()); total != 2 {
		t.Fatalf("cart must survive a failed submission, got %d items", total)
	}
}

func TestSubmitQuoteRejectsBadBody(t *testing.T) {
	manager := cart.NewManager(cart.NewMemoryStore(), time.Millisecond, 0, nil)
	svc := &fakeQuoteService{}
	router := newQuoteRouter(svc, manager)
	token := seedCart(t, router)

	submit := httptest.NewRequest(http.MethodPost, "/api/v1/quotes",
		strings.NewReader(`{"customer_name":"Marie","customer_email":"pas-un-email"}`))
	submit.Header.Set(middleware.CartTokenHeader, token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, submit)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if total := manager.Container(token).TotalItems(context.Background()); total != 2 {
		t.Fatalf("cart must survive a rejected submission, got %d items", total)
	}
}

package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/luckyegg/storefront-backend/internal/subscribers"
	"github.com/luckyegg/storefront-backend/pkg/db/models"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
)

type stubSubscribers struct {
	subscriber *models.EmailSubscriber
	err        error
}

func (s stubSubscribers) Subscribe(_ context.Context, input subscribers.SubscribeInput) (*models.EmailSubscriber, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.subscriber != nil {
		return s.subscriber, nil
	}
	return &models.EmailSubscriber{ID: uuid.New(), Email: input.Email}, nil
}

func (s stubSubscribers) List(context.Context) ([]models.EmailSubscriber, error) {
	return nil, nil
}

func (s stubSubscribers) Delete(context.Context, uuid.UUID) error {
	return s.err
}

func TestSubscribeNewsletterCreated(t *testing.T) {
	handler := SubscribeNewsletter(stubSubscribers{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscribers",
		strings.NewReader(`{"email":"fan@example.com"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSubscribeNewsletterDuplicate(t *testing.T) {
	handler := SubscribeNewsletter(stubSubscribers{
		err: pkgerrors.New(pkgerrors.CodeConflict, "email already subscribed"),
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscribers",
		strings.NewReader(`{"email":"fan@example.com"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestSubscribeNewsletterRejectsBadEmail(t *testing.T) {
	handler := SubscribeNewsletter(stubSubscribers{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscribers",
		strings.NewReader(`{"email":"not-an-email"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

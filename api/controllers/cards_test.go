package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luckyegg/storefront-backend/pkg/db/models"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
)

type stubCatalogList struct {
	stubCatalog
	list     []models.Card
	featured []models.Card
	listErr  error
}

func (s stubCatalogList) ListActive(context.Context) ([]models.Card, error) {
	return s.list, s.listErr
}

func (s stubCatalogList) ListFeatured(context.Context) ([]models.Card, error) {
	return s.featured, s.listErr
}

func TestListCardsSuccess(t *testing.T) {
	list := []models.Card{
		{ID: uuid.New(), Name: "Moonbreon", Price: decimal.RequireFromString("450.00")},
		{ID: uuid.New(), Name: "Base Set Blastoise", Price: decimal.RequireFromString("180.00")},
	}
	handler := ListCards(stubCatalogList{list: list}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []models.Card `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 cards got %d", len(envelope.Data))
	}
}

func TestListCardsFeaturedQuery(t *testing.T) {
	featured := []models.Card{
		{ID: uuid.New(), Name: "Charizard Base Set Holo", Price: decimal.RequireFromString("320.00")},
	}
	handler := ListCards(stubCatalogList{
		list:     append(featured, models.Card{ID: uuid.New(), Name: "Snorlax VMAX"}),
		featured: featured,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards?featured=true", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []models.Card `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Charizard Base Set Holo" {
		t.Fatalf("expected featured subset, got %+v", envelope.Data)
	}
}

func TestGetCardSuccess(t *testing.T) {
	card := &models.Card{
		ID:    uuid.New(),
		Name:  "Umbreon VMAX Alt Art",
		Price: decimal.RequireFromString("450.00"),
	}
	handler := GetCard(stubCatalog{card: card}, nil)

	req := withChiParam(httptest.NewRequest(http.MethodGet, "/api/v1/cards/"+card.ID.String(), nil), "cardID", card.ID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data models.Card `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != card.ID {
		t.Fatalf("unexpected card id %s", envelope.Data.ID)
	}
}

func TestGetCardInvalidID(t *testing.T) {
	handler := GetCard(stubCatalog{}, nil)

	req := withChiParam(httptest.NewRequest(http.MethodGet, "/api/v1/cards/nope", nil), "cardID", "nope")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetCardHidesInactive(t *testing.T) {
	handler := GetCard(stubCatalog{err: pkgerrors.New(pkgerrors.CodeNotFound, "card not found")}, nil)

	id := uuid.New()
	req := withChiParam(httptest.NewRequest(http.MethodGet, "/api/v1/cards/"+id.String(), nil), "cardID", id.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

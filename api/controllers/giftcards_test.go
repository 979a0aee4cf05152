package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mayaserrano/framelight-backend/internal/giftcards"
	"github.com/mayaserrano/framelight-backend/pkg/config"
)

type testGiftCardsService struct {
	purchaseFn func(ctx context.Context, req giftcards.PurchaseRequest) (*giftcards.GiftCardResponse, error)
	lookupFn   func(ctx context.Context, code string) (*giftcards.GiftCardResponse, error)
	redeemFn   func(ctx context.Context, code string) (*giftcards.GiftCardResponse, error)
}

func (s *testGiftCardsService) Purchase(ctx context.Context, req giftcards.PurchaseRequest) (*giftcards.GiftCardResponse, error) {
	if s.purchaseFn != nil {
		return s.purchaseFn(ctx, req)
	}
	return nil, nil
}

func (s *testGiftCardsService) Lookup(ctx context.Context, code string) (*giftcards.GiftCardResponse, error) {
	if s.lookupFn != nil {
		return s.lookupFn(ctx, code)
	}
	return nil, nil
}

func (s *testGiftCardsService) Redeem(ctx context.Context, code string) (*giftcards.GiftCardResponse, error) {
	if s.redeemFn != nil {
		return s.redeemFn(ctx, code)
	}
	return nil, nil
}

func giftCardsConfig(enabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.FeatureFlags.GiftCardsEnabled = enabled
	return cfg
}

func TestGiftCardPurchaseSuccess(t *testing.T) {
	called := false
	svc := &testGiftCardsService{
		purchaseFn: func(ctx context.Context, req giftcards.PurchaseRequest) (*giftcards.GiftCardResponse, error) {
			called = true
			if req.Amount != "150.50" {
				t.Fatalf("unexpected amount %q", req.Amount)
			}
			return &giftcards.GiftCardResponse{ID: uuid.New(), Amount: decimal.RequireFromString(req.Amount)}, nil
		},
	}

	body := `{"amount":"150.50","purchaserEmail":"buyer@example.com","recipientEmail":"friend@example.com","sourceId":"cnon:abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/public/gift-cards", strings.NewReader(body))
	resp := httptest.NewRecorder()
	GiftCardPurchase(svc, giftCardsConfig(true), testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !called {
		t.Fatal("expected service called")
	}
}

func TestGiftCardPurchaseDisabledFlag(t *testing.T) {
	svc := &testGiftCardsService{
		purchaseFn: func(ctx context.Context, req giftcards.PurchaseRequest) (*giftcards.GiftCardResponse, error) {
			t.Fatal("service should not be called when disabled")
			return nil, nil
		},
	}

	body := `{"amount":"25","purchaserEmail":"buyer@example.com","recipientEmail":"friend@example.com","sourceId":"cnon:abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/public/gift-cards", strings.NewReader(body))
	resp := httptest.NewRecorder()
	GiftCardPurchase(svc, giftCardsConfig(false), testLogger())(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestGiftCardLookupPassesCode(t *testing.T) {
	var gotCode string
	svc := &testGiftCardsService{
		lookupFn: func(ctx context.Context, code string) (*giftcards.GiftCardResponse, error) {
			gotCode = code
			return &giftcards.GiftCardResponse{Code: code}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/public/gift-cards/ABCD2345EFGH6789", nil)
	req = addRouteParam(req, "code", "ABCD2345EFGH6789")
	resp := httptest.NewRecorder()
	GiftCardLookup(svc, giftCardsConfig(true), testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if gotCode != "ABCD2345EFGH6789" {
		t.Fatalf("unexpected code %q", gotCode)
	}
}

func TestGiftCardRedeemMissingCode(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gift-cards//redeem", nil)
	req = addRouteParam(req, "code", "")
	resp := httptest.NewRecorder()
	GiftCardRedeem(&testGiftCardsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mayaserrano/framelight-backend/internal/shoots"
	pkgerrors "github.com/mayaserrano/framelight-backend/pkg/errors"
)

func TestPortalShootSuccess(t *testing.T) {
	shootID := uuid.New()
	svc := &testShootsService{
		getForClientFn: func(ctx context.Context, id uuid.UUID, token string) (*shoots.ClientShootResponse, error) {
			if id != shootID {
				t.Fatalf("unexpected id %s", id)
			}
			if token != "sometoken" {
				t.Fatalf("unexpected token %q", token)
			}
			return &shoots.ClientShootResponse{ID: id}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/public/shoots/"+shootID.String()+"?token=sometoken", nil)
	req = addRouteParam(req, "shootId", shootID.String())
	resp := httptest.NewRecorder()
	PortalShoot(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestPortalShootRequiresToken(t *testing.T) {
	shootID := uuid.New()
	svc := &testShootsService{
		getForClientFn: func(ctx context.Context, id uuid.UUID, token string) (*shoots.ClientShootResponse, error) {
			t.Fatal("service should not be called without a token")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/public/shoots/"+shootID.String(), nil)
	req = addRouteParam(req, "shootId", shootID.String())
	resp := httptest.NewRecorder()
	PortalShoot(svc, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPortalShootDeniedPassesThrough(t *testing.T) {
	shootID := uuid.New()
	svc := &testShootsService{
		getForClientFn: func(ctx context.Context, id uuid.UUID, token string) (*shoots.ClientShootResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/public/shoots/"+shootID.String()+"?token=whatever", nil)
	req = addRouteParam(req, "shootId", shootID.String())
	resp := httptest.NewRecorder()
	PortalShoot(svc, testLogger())(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestPortalAcceptTermsPassesClientIP(t *testing.T) {
	shootID := uuid.New()
	var gotIP string
	svc := &testShootsService{
		acceptTermsFn: func(ctx context.Context, id uuid.UUID, token, ip string) (*shoots.ClientShootResponse, error) {
			gotIP = ip
			return &shoots.ClientShootResponse{ID: id}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/public/shoots/"+shootID.String()+"/accept-terms?token=sometoken", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req = addRouteParam(req, "shootId", shootID.String())
	resp := httptest.NewRecorder()
	PortalAcceptTerms(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotIP != "203.0.113.9" {
		t.Fatalf("unexpected ip %q", gotIP)
	}
}

package sharelinks

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mayaserrano/framelight-backend/pkg/config"
	"github.com/mayaserrano/framelight-backend/pkg/db/models"
	pkgerrors "github.com/mayaserrano/framelight-backend/pkg/errors"
	"github.com/mayaserrano/framelight-backend/pkg/logger"
	"github.com/mayaserrano/framelight-backend/pkg/security"
)

type fakeRepository struct {
	createFn func(ctx context.Context, link *models.ShareLink) error
	findFn   func(ctx context.Context, shootID uuid.UUID, tokenHash string, now time.Time) (*models.ShareLink, error)
	listFn   func(ctx context.Context, shootID uuid.UUID) ([]models.ShareLink, error)
	revokeFn func(ctx context.Context, shootID, linkID uuid.UUID) (bool, error)
}

func (f *fakeRepository) Create(ctx context.Context, link *models.ShareLink) error {
	if f.createFn != nil {
		return f.createFn(ctx, link)
	}
	return nil
}

func (f *fakeRepository) FindActiveByHash(ctx context.Context, shootID uuid.UUID, tokenHash string, now time.Time) (*models.ShareLink, error) {
	if f.findFn != nil {
		return f.findFn(ctx, shootID, tokenHash, now)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListByShoot(ctx context.Context, shootID uuid.UUID) ([]models.ShareLink, error) {
	if f.listFn != nil {
		return f.listFn(ctx, shootID)
	}
	return nil, nil
}

func (f *fakeRepository) Revoke(ctx context.Context, shootID, linkID uuid.UUID) (bool, error) {
	if f.revokeFn != nil {
		return f.revokeFn(ctx, shootID, linkID)
	}
	return false, nil
}

func testConfig() config.ShareLinksConfig {
	return config.ShareLinksConfig{
		BaseURL:         "https://portal.framelight.test",
		DefaultTTLHours: 72,
		MaxTTLHours:     168,
		AllowedEmails:   []string{"maya@studio.test"},
	}
}

func newServiceWithRepo(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Config: testConfig(),
		Logger: logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestService_CreateStoresHashNotToken(t *testing.T) {
	var stored *models.ShareLink
	repo := &fakeRepository{
		createFn: func(ctx context.Context, link *models.ShareLink) error {
			stored = link
			return nil
		},
	}
	svc := newServiceWithRepo(t, repo)
	shootID := uuid.New()

	resp, err := svc.Create(context.Background(), shootID, CreateShareLinkRequest{TTLHours: 24}, "Maya@Studio.Test")
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected repo create to be called")
	}

	parts := strings.Split(resp.URL, "token=")
	if len(parts) != 2 {
		t.Fatalf("expected token in url, got %q", resp.URL)
	}
	token := parts[1]
	if !security.ValidShareTokenFormat(token) {
		t.Fatalf("share token %q has wrong format", token)
	}
	if stored.TokenHash == token {
		t.Fatal("plaintext token must never be stored")
	}
	if stored.TokenHash != security.HashShareToken(token) {
		t.Fatal("stored hash does not match issued token")
	}

	until := time.Until(resp.ExpiresAt)
	if until < 23*time.Hour || until > 24*time.Hour {
		t.Fatalf("expected ~24h expiry, got %s", until)
	}
}

func TestService_CreateRequiresAllowListedEmail(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateShareLinkRequest{}, "intruder@elsewhere.test")
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %s", code)
	}
}

func TestService_CreateClampsTTL(t *testing.T) {
	cases := []struct {
		name     string
		ttlHours int
		want     time.Duration
	}{
		{"zero uses default", 0, 72 * time.Hour},
		{"above max clamps", 500, 168 * time.Hour},
		{"in range passes", 48, 48 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newServiceWithRepo(t, &fakeRepository{})
			resp, err := svc.Create(context.Background(), uuid.New(), CreateShareLinkRequest{TTLHours: tc.ttlHours}, "maya@studio.test")
			if err != nil {
				t.Fatalf("unexpected create error: %v", err)
			}
			until := time.Until(resp.ExpiresAt)
			if until > tc.want || until < tc.want-time.Minute {
				t.Fatalf("expected ~%s expiry, got %s", tc.want, until)
			}
		})
	}
}

func TestService_ResolveUniformDenial(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})
	shootID := uuid.New()
	token, _ := security.GenerateShareToken()

	// Malformed and unknown tokens must read identically.
	malformedErr := svc.Resolve(context.Background(), shootID, "not-a-token")
	unknownErr := svc.Resolve(context.Background(), shootID, token)

	for name, err := range map[string]error{"malformed": malformedErr, "unknown": unknownErr} {
		if err == nil {
			t.Fatalf("%s: expected denial", name)
		}
		typed := pkgerrors.As(err)
		if typed.Code() != pkgerrors.CodeForbidden {
			t.Fatalf("%s: expected forbidden, got %s", name, typed.Code())
		}
		if typed.Message() != invalidLinkMessage {
			t.Fatalf("%s: expected uniform message, got %q", name, typed.Message())
		}
	}
}

func TestService_ResolveSuccess(t *testing.T) {
	shootID := uuid.New()
	token, _ := security.GenerateShareToken()
	repo := &fakeRepository{
		findFn: func(ctx context.Context, gotShoot uuid.UUID, tokenHash string, now time.Time) (*models.ShareLink, error) {
			if gotShoot != shootID || tokenHash != security.HashShareToken(token) {
				return nil, gorm.ErrRecordNotFound
			}
			return &models.ShareLink{ID: uuid.New(), ShootID: shootID}, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	if err := svc.Resolve(context.Background(), shootID, token); err != nil {
		t.Fatalf("expected resolution to succeed: %v", err)
	}
}

func TestService_RevokeNotFound(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})
	err := svc.Revoke(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %s", code)
	}
}

func TestService_ListMarksActive(t *testing.T) {
	shootID := uuid.New()
	now := time.Now().UTC()
	repo := &fakeRepository{
		listFn: func(ctx context.Context, gotShoot uuid.UUID) ([]models.ShareLink, error) {
			return []models.ShareLink{
				{ID: uuid.New(), ShootID: shootID, ExpiresAt: now.Add(time.Hour)},
				{ID: uuid.New(), ShootID: shootID, ExpiresAt: now.Add(-time.Hour)},
				{ID: uuid.New(), ShootID: shootID, ExpiresAt: now.Add(time.Hour), Revoked: true},
			}, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	summaries, err := svc.List(context.Background(), shootID)
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	if !summaries[0].Active || summaries[1].Active || summaries[2].Active {
		t.Fatalf("active flags wrong: %+v", summaries)
	}
}

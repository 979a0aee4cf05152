package sharelinks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mayaserrano/framelight-backend/pkg/db/models"
	"github.com/mayaserrano/framelight-backend/pkg/security"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.ShareLink{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func seedLink(t *testing.T, repo Repository, shootID uuid.UUID, expiresAt time.Time, revoked bool) (*models.ShareLink, string) {
	t.Helper()
	token, err := security.GenerateShareToken()
	if err != nil {
		t.Fatalf("generate share token: %v", err)
	}
	link := &models.ShareLink{
		ID:             uuid.New(),
		ShootID:        shootID,
		TokenHash:      security.HashShareToken(token),
		ExpiresAt:      expiresAt,
		Revoked:        revoked,
		CreatedByEmail: "maya@studio.test",
	}
	if err := repo.Create(context.Background(), link); err != nil {
		t.Fatalf("create share link: %v", err)
	}
	return link, token
}

func TestRepository_FindActiveByHash(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))
	shootID := uuid.New()
	now := time.Now().UTC()

	link, token := seedLink(t, repo, shootID, now.Add(time.Hour), false)

	found, err := repo.FindActiveByHash(ctx, shootID, security.HashShareToken(token), now)
	if err != nil {
		t.Fatalf("expected active link: %v", err)
	}
	if found.ID != link.ID {
		t.Fatalf("expected link %s, got %s", link.ID, found.ID)
	}
}

func TestRepository_FindActiveByHashMisses(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))
	shootID := uuid.New()
	now := time.Now().UTC()

	_, expiredToken := seedLink(t, repo, shootID, now.Add(-time.Minute), false)
	_, revokedToken := seedLink(t, repo, shootID, now.Add(time.Hour), true)
	_, otherShootToken := seedLink(t, repo, uuid.New(), now.Add(time.Hour), false)

	cases := map[string]string{
		"expired":     expiredToken,
		"revoked":     revokedToken,
		"wrong shoot": otherShootToken,
	}
	for name, token := range cases {
		_, err := repo.FindActiveByHash(ctx, shootID, security.HashShareToken(token), now)
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("%s: expected record not found, got %v", name, err)
		}
	}
}

func TestRepository_Revoke(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))
	shootID := uuid.New()
	now := time.Now().UTC()

	link, token := seedLink(t, repo, shootID, now.Add(time.Hour), false)

	found, err := repo.Revoke(ctx, shootID, link.ID)
	if err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if !found {
		t.Fatal("expected revoke to match the link")
	}

	if _, err := repo.FindActiveByHash(ctx, shootID, security.HashShareToken(token), now); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("revoked link should not resolve, got %v", err)
	}

	found, err = repo.Revoke(ctx, uuid.New(), link.ID)
	if err != nil {
		t.Fatalf("revoke with wrong shoot: %v", err)
	}
	if found {
		t.Fatal("revoke must be scoped to the owning shoot")
	}
}

func TestRepository_ListByShoot(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))
	shootID := uuid.New()
	now := time.Now().UTC()

	seedLink(t, repo, shootID, now.Add(time.Hour), false)
	seedLink(t, repo, shootID, now.Add(2*time.Hour), true)
	seedLink(t, repo, uuid.New(), now.Add(time.Hour), false)

	links, err := repo.ListByShoot(ctx, shootID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links for shoot, got %d", len(links))
	}
}

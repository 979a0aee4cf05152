package sharelinks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mayaserrano/framelight-backend/pkg/db/models"
)

// Repository exposes persistence helpers for share links.
type Repository interface {
	Create(ctx context.Context, link *models.ShareLink) error
	FindActiveByHash(ctx context.Context, shootID uuid.UUID, tokenHash string, now time.Time) (*models.ShareLink, error)
	ListByShoot(ctx context.Context, shootID uuid.UUID) ([]models.ShareLink, error)
	Revoke(ctx context.Context, shootID, linkID uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a share link repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, link *models.ShareLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// FindActiveByHash matches shoot, hash, revocation and expiry in a single
// query. Callers cannot tell which predicate failed.
func (r *repositoryImpl) FindActiveByHash(ctx context.Context, shootID uuid.UUID, tokenHash string, now time.Time) (*models.ShareLink, error) {
	var link models.ShareLink
	err := r.db.WithContext(ctx).
		Where("shoot_id = ? AND token_hash = ? AND revoked = ? AND expires_at > ?", shootID, tokenHash, false, now).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *repositoryImpl) ListByShoot(ctx context.Context, shootID uuid.UUID) ([]models.ShareLink, error) {
	var links []models.ShareLink
	if err := r.db.WithContext(ctx).
		Where("shoot_id = ?", shootID).
		Order("created_at DESC, id DESC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repositoryImpl) Revoke(ctx context.Context, shootID, linkID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ShareLink{}).
		Where("id = ? AND shoot_id = ?", linkID, shootID).
		Update("revoked", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

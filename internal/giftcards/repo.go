package giftcards

import (
	"context"

	"gorm.io/gorm"

	"github.com/mayaserrano/framelight-backend/pkg/db/models"
	"github.com/mayaserrano/framelight-backend/pkg/enums"
)

// Repository exposes persistence helpers for gift cards.
type Repository interface {
	Create(ctx context.Context, card *models.GiftCard) error
	FindByCode(ctx context.Context, code string) (*models.GiftCard, error)
	MarkRedeemed(ctx context.Context, code string) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a gift card repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, card *models.GiftCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *repositoryImpl) FindByCode(ctx context.Context, code string) (*models.GiftCard, error) {
	var card models.GiftCard
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// MarkRedeemed performs the paid-to-redeemed transition atomically. Any
// other current status matches no rows.
func (r *repositoryImpl) MarkRedeemed(ctx context.Context, code string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.GiftCard{}).
		Where("code = ? AND status = ?", code, enums.GiftCardStatusPaid).
		Update("status", enums.GiftCardStatusRedeemed)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

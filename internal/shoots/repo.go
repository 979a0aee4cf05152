package shoots

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mayaserrano/framelight-backend/pkg/db/models"
	"github.com/mayaserrano/framelight-backend/pkg/enums"
	"github.com/mayaserrano/framelight-backend/pkg/pagination"
)

// Repository exposes persistence helpers for shoots. Every read and write
// passes through status normalization so legacy deliverable values never
// escape the storage boundary.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, shoot *models.Shoot) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shoot, error)
	Update(ctx context.Context, shoot *models.Shoot) error
	List(ctx context.Context, params listShootsParams) ([]models.Shoot, *pagination.Cursor, error)
	AcceptTerms(ctx context.Context, id uuid.UUID, now time.Time, ip string) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a shoots repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listShootsParams struct {
	Limit  int
	Cursor *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, shoot *models.Shoot) error {
	normalizeStatuses(shoot)
	return r.db.WithContext(ctx).Create(shoot).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Shoot, error) {
	var shoot models.Shoot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&shoot).Error; err != nil {
		return nil, err
	}
	normalizeStatuses(&shoot)
	return &shoot, nil
}

func (r *repositoryImpl) Update(ctx context.Context, shoot *models.Shoot) error {
	normalizeStatuses(shoot)
	return r.db.WithContext(ctx).Save(shoot).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listShootsParams) ([]models.Shoot, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Shoot{})
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var shoots []models.Shoot
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&shoots).Error; err != nil {
		return nil, nil, err
	}
	for i := range shoots {
		normalizeStatuses(&shoots[i])
	}

	if len(shoots) > normalized {
		next := shoots[normalized]
		shoots = shoots[:normalized]
		return shoots, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return shoots, nil, nil
}

// AcceptTerms records the client acceptance once. The second call matches no
// rows and reports updated=false, which the service treats as a no-op success.
func (r *repositoryImpl) AcceptTerms(ctx context.Context, id uuid.UUID, now time.Time, ip string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Shoot{}).
		Where("id = ? AND client_accepted_terms = ?", id, false).
		Updates(map[string]any{
			"client_accepted_terms": true,
			"terms_accepted_at":     now,
			"terms_accepted_ip":     ip,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// normalizeStatuses maps raw deliverable statuses onto the canonical
// vocabulary and coerces unknown shoot statuses to pending. A blank
// deliverable status means the track has not been entered and stays unset.
func normalizeStatuses(shoot *models.Shoot) {
	if shoot == nil {
		return
	}
	if !shoot.Status.IsValid() {
		shoot.Status = enums.ShootStatusPending
	}
	shoot.PhotoStatus = normalizedPtr(shoot.PhotoStatusValue(), func(raw string) string {
		return enums.NormalizePhotoStatus(raw).String()
	})
	shoot.VideoStatus = normalizedPtr(shoot.VideoStatusValue(), func(raw string) string {
		return enums.NormalizeVideoStatus(raw).String()
	})
}

func normalizedPtr(raw string, normalize func(string) string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	value := normalize(raw)
	return &value
}

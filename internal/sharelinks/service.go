package sharelinks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mayaserrano/framelight-backend/pkg/config"
	"github.com/mayaserrano/framelight-backend/pkg/db/models"
	pkgerrors "github.com/mayaserrano/framelight-backend/pkg/errors"
	"github.com/mayaserrano/framelight-backend/pkg/logger"
	"github.com/mayaserrano/framelight-backend/pkg/metrics"
	"github.com/mayaserrano/framelight-backend/pkg/security"
)

// invalidLinkMessage covers expired, revoked, mismatched and unknown links
// alike so a caller cannot probe link state.
const invalidLinkMessage = "invalid or expired link"

// Service defines the behavior needed by the share link controllers.
type Service interface {
	Create(ctx context.Context, shootID uuid.UUID, req CreateShareLinkRequest, createdByEmail string) (*CreateShareLinkResponse, error)
	Resolve(ctx context.Context, shootID uuid.UUID, token string) error
	Revoke(ctx context.Context, shootID, linkID uuid.UUID) error
	List(ctx context.Context, shootID uuid.UUID) ([]ShareLinkSummary, error)
}

type service struct {
	repo    Repository
	cfg     config.ShareLinksConfig
	logger  *logger.Logger
	metrics *metrics.AccessMetrics
	now     func() time.Time
}

// ServiceParams bundles the dependencies required to build a share link service.
type ServiceParams struct {
	Repo    Repository
	Config  config.ShareLinksConfig
	Logger  *logger.Logger
	Metrics *metrics.AccessMetrics
}

// NewService constructs a share link service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("share link repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if strings.TrimSpace(params.Config.BaseURL) == "" {
		return nil, fmt.Errorf("share link base url is required")
	}
	return &service{
		repo:    params.Repo,
		cfg:     params.Config,
		logger:  params.Logger,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

// Create issues a new link. The plaintext token exists only inside the
// returned URL; storage keeps the SHA-256 hash.
func (s *service) Create(ctx context.Context, shootID uuid.UUID, req CreateShareLinkRequest, createdByEmail string) (*CreateShareLinkResponse, error) {
	email := strings.ToLower(strings.TrimSpace(createdByEmail))
	if !s.cfg.EmailAllowed(email) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to issue share links")
	}

	ttl := s.clampTTL(req.TTLHours)
	token, err := security.GenerateShareToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate share token")
	}

	link := &models.ShareLink{
		ShootID:        shootID,
		TokenHash:      security.HashShareToken(token),
		ExpiresAt:      s.now().UTC().Add(ttl),
		CreatedByEmail: email,
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create share link")
	}

	s.logger.Info(s.logger.WithShootID(ctx, shootID.String()), "share link issued")

	return &CreateShareLinkResponse{
		ID:        link.ID,
		URL:       s.shareURL(shootID, token),
		ExpiresAt: link.ExpiresAt,
	}, nil
}

// Resolve validates a share token against a shoot in a single query. Every
// failure mode returns the same error.
func (s *service) Resolve(ctx context.Context, shootID uuid.UUID, token string) error {
	if !security.ValidShareTokenFormat(token) {
		s.metrics.IncShareLinkResolution("invalid")
		return pkgerrors.New(pkgerrors.CodeForbidden, invalidLinkMessage)
	}

	hash := security.HashShareToken(token)
	if _, err := s.repo.FindActiveByHash(ctx, shootID, hash, s.now().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.IncShareLinkResolution("denied")
			return pkgerrors.New(pkgerrors.CodeForbidden, invalidLinkMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve share link")
	}
	s.metrics.IncShareLinkResolution("success")
	return nil
}

func (s *service) Revoke(ctx context.Context, shootID, linkID uuid.UUID) error {
	found, err := s.repo.Revoke(ctx, shootID, linkID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke share link")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "share link not found")
	}
	s.logger.Info(s.logger.WithShootID(ctx, shootID.String()), "share link revoked")
	return nil
}

func (s *service) List(ctx context.Context, shootID uuid.UUID) ([]ShareLinkSummary, error) {
	links, err := s.repo.ListByShoot(ctx, shootID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list share links")
	}
	now := s.now().UTC()
	summaries := make([]ShareLinkSummary, 0, len(links))
	for i := range links {
		summaries = append(summaries, summaryFromModel(&links[i], now))
	}
	return summaries, nil
}

func (s *service) clampTTL(hours int) time.Duration {
	if hours <= 0 {
		hours = s.cfg.DefaultTTLHours
	}
	if hours < 1 {
		hours = 1
	}
	if hours > s.cfg.MaxTTLHours {
		hours = s.cfg.MaxTTLHours
	}
	return time.Duration(hours) * time.Hour
}

func (s *service) shareURL(shootID uuid.UUID, token string) string {
	base := strings.TrimRight(s.cfg.BaseURL, "/")
	return fmt.Sprintf("%s/shoots/%s?token=%s", base, shootID, token)
}

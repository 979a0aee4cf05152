package shoots

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mayaserrano/framelight-backend/pkg/db/models"
	"github.com/mayaserrano/framelight-backend/pkg/enums"
	pkgerrors "github.com/mayaserrano/framelight-backend/pkg/errors"
	"github.com/mayaserrano/framelight-backend/pkg/logger"
	"github.com/mayaserrano/framelight-backend/pkg/metrics"
	"github.com/mayaserrano/framelight-backend/pkg/pagination"
	"github.com/mayaserrano/framelight-backend/pkg/phases"
	"github.com/mayaserrano/framelight-backend/pkg/security"
)

const accessDeniedMessage = "access denied"

// tokenGenRetries bounds access token regeneration on a unique collision.
const tokenGenRetries = 3

// Service defines the behavior needed by the shoots controllers.
type Service interface {
	Create(ctx context.Context, req CreateShootRequest) (*ShootResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*ShootResponse, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateShootRequest) (*ShootResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*ShootResponse, error)
	GetForClient(ctx context.Context, id uuid.UUID, token string) (*ClientShootResponse, error)
	AcceptTerms(ctx context.Context, id uuid.UUID, token, ip string) (*ClientShootResponse, error)
}

// shareLinkResolver reports whether a share token grants access to a shoot.
// Any returned error reads as denial; the service never distinguishes why.
type shareLinkResolver interface {
	Resolve(ctx context.Context, shootID uuid.UUID, token string) error
}

type service struct {
	repo       Repository
	shareLinks shareLinkResolver
	logger     *logger.Logger
	metrics    *metrics.AccessMetrics
	now        func() time.Time
}

// ServiceParams bundles the dependencies required to build a shoots service.
type ServiceParams struct {
	Repo       Repository
	ShareLinks shareLinkResolver
	Logger     *logger.Logger
	Metrics    *metrics.AccessMetrics
}

// NewService constructs a shoots service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("shoots repository is required")
	}
	if params.ShareLinks == nil {
		return nil, fmt.Errorf("share link resolver is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:       params.Repo,
		shareLinks: params.ShareLinks,
		logger:     params.Logger,
		metrics:    params.Metrics,
		now:        time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateShootRequest) (*ShootResponse, error) {
	projectType, err := enums.ParseProjectType(req.ProjectType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid project type").WithDetails(err.Error())
	}
	status := enums.ShootStatusPending
	if strings.TrimSpace(req.Status) != "" {
		status, err = enums.ParseShootStatus(req.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").WithDetails(err.Error())
		}
	}

	shoot := &models.Shoot{
		Title:           strings.TrimSpace(req.Title),
		ClientName:      strings.TrimSpace(req.ClientName),
		ClientEmail:     strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		ProjectType:     projectType,
		Status:          status,
		Team:            req.Team,
		Talent:          req.Talent,
		Timeline:        req.Timeline,
		Documents:       req.Documents,
		MoodboardImages: req.Moodboard,
	}

	if err := s.createWithFreshToken(ctx, shoot); err != nil {
		return nil, err
	}

	s.logger.Info(s.logger.WithShootID(ctx, shoot.ID.String()), "shoot created")
	resp := FromModel(shoot)
	return &resp, nil
}

// createWithFreshToken regenerates the access token on a unique collision.
// Collisions on 128 random bits are effectively impossible but cheap to handle.
func (s *service) createWithFreshToken(ctx context.Context, shoot *models.Shoot) error {
	for attempt := 0; attempt < tokenGenRetries; attempt++ {
		token, err := security.GenerateAccessToken()
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate access token")
		}
		shoot.AccessToken = token
		err = s.repo.Create(ctx, shoot)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "duplicate key value") {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shoot")
		}
	}
	return pkgerrors.New(pkgerrors.CodeInternal, "could not allocate a unique access token")
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ShootResponse, error) {
	shoot, err := s.loadShoot(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := FromModel(shoot)
	return &resp, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	shoots, nextCursor, err := s.repo.List(ctx, listShootsParams{Limit: params.Limit, Cursor: cursor})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shoots")
	}

	items := make([]ShootResponse, 0, len(shoots))
	for i := range shoots {
		items = append(items, FromModel(&shoots[i]))
	}
	result := &ListResult{Items: items}
	if nextCursor != nil {
		result.Cursor = pagination.EncodeCursor(*nextCursor)
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateShootRequest) (*ShootResponse, error) {
	projectType, err := enums.ParseProjectType(req.ProjectType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid project type").WithDetails(err.Error())
	}

	shoot, err := s.loadShoot(ctx, id)
	if err != nil {
		return nil, err
	}

	// Access token and workflow statuses only change through their own paths.
	shoot.Title = strings.TrimSpace(req.Title)
	shoot.ClientName = strings.TrimSpace(req.ClientName)
	shoot.ClientEmail = strings.ToLower(strings.TrimSpace(req.ClientEmail))
	shoot.ProjectType = projectType
	shoot.Team = req.Team
	shoot.Talent = req.Talent
	shoot.Timeline = req.Timeline
	shoot.Documents = req.Documents
	shoot.MoodboardImages = req.Moodboard

	if err := s.repo.Update(ctx, shoot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shoot")
	}
	resp := FromModel(shoot)
	return &resp, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*ShootResponse, error) {
	shoot, err := s.loadShoot(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status, err := enums.ParseShootStatus(*req.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").WithDetails(err.Error())
		}
		shoot.Status = status
	}
	if req.PhotoStatus != nil {
		shoot.PhotoStatus = optionalStatus(*req.PhotoStatus)
	}
	if req.VideoStatus != nil {
		shoot.VideoStatus = optionalStatus(*req.VideoStatus)
	}

	if err := s.repo.Update(ctx, shoot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shoot status")
	}

	s.logger.Info(s.logger.WithShootID(ctx, shoot.ID.String()), "shoot status updated")
	resp := FromModel(shoot)
	return &resp, nil
}

// GetForClient serves the portal payload. The token shape is validated
// before any lookup; a wrong access token and an invalid share link produce
// the same denial.
func (s *service) GetForClient(ctx context.Context, id uuid.UUID, token string) (*ClientShootResponse, error) {
	shoot, err := s.authorizeClient(ctx, id, token)
	if err != nil {
		return nil, err
	}
	s.metrics.IncPortalAccess("success")
	resp := s.clientResponse(shoot)
	return &resp, nil
}

// AcceptTerms flips the acceptance flag once. Repeated calls succeed without
// touching the stored timestamp or IP.
func (s *service) AcceptTerms(ctx context.Context, id uuid.UUID, token, ip string) (*ClientShootResponse, error) {
	shoot, err := s.authorizeClient(ctx, id, token)
	if err != nil {
		return nil, err
	}

	if !shoot.ClientAcceptedTerms {
		now := s.now().UTC()
		updated, err := s.repo.AcceptTerms(ctx, shoot.ID, now, strings.TrimSpace(ip))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "accept terms")
		}
		if updated {
			shoot.ClientAcceptedTerms = true
			shoot.TermsAcceptedAt = &now
			s.logger.Info(s.logger.WithShootID(ctx, shoot.ID.String()), "client accepted terms")
		}
	}

	resp := s.clientResponse(shoot)
	return &resp, nil
}

func (s *service) authorizeClient(ctx context.Context, id uuid.UUID, token string) (*models.Shoot, error) {
	isAccessToken := security.ValidAccessTokenFormat(token)
	isShareToken := security.ValidShareTokenFormat(token)
	if !isAccessToken && !isShareToken {
		s.metrics.IncPortalAccess("invalid_token")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid token format")
	}

	shoot, err := s.loadShoot(ctx, id)
	if err != nil {
		return nil, err
	}

	if isAccessToken {
		if subtle.ConstantTimeCompare([]byte(token), []byte(shoot.AccessToken)) == 1 {
			return shoot, nil
		}
		s.metrics.IncPortalAccess("denied")
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, accessDeniedMessage)
	}

	if err := s.shareLinks.Resolve(ctx, shoot.ID, token); err != nil {
		s.metrics.IncPortalAccess("denied")
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, accessDeniedMessage)
	}
	return shoot, nil
}

func (s *service) clientResponse(shoot *models.Shoot) ClientShootResponse {
	visible := phases.Visible(phases.Input{
		Status:      shoot.Status,
		PhotoStatus: shoot.PhotoStatusValue(),
		VideoStatus: shoot.VideoStatusValue(),
	})
	return clientFromModel(shoot, visible, phases.Default(visible))
}

func (s *service) loadShoot(ctx context.Context, id uuid.UUID) (*models.Shoot, error) {
	shoot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shoot not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shoot")
	}
	return shoot, nil
}

func optionalStatus(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

package pinauth

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	pkgauth "github.com/mayaserrano/framelight-backend/pkg/auth"
	"github.com/mayaserrano/framelight-backend/pkg/auth/session"
	"github.com/mayaserrano/framelight-backend/pkg/config"
	pkgerrors "github.com/mayaserrano/framelight-backend/pkg/errors"
	"github.com/mayaserrano/framelight-backend/pkg/logger"
	"github.com/mayaserrano/framelight-backend/pkg/metrics"
	"github.com/mayaserrano/framelight-backend/pkg/security"
)

const invalidPinMessage = "invalid pin"

// Service defines the behavior needed by the PIN auth controller.
type Service interface {
	Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

type sessionManager interface {
	Open(ctx context.Context, sessionID, producerEmail string) error
	Revoke(ctx context.Context, sessionID string) error
}

type service struct {
	limiter    *Limiter
	sessions   sessionManager
	sessionCfg config.SessionConfig
	pinCfg     config.PinConfig
	logger     *logger.Logger
	metrics    *metrics.AccessMetrics
	now        func() time.Time
}

// ServiceParams bundles the dependencies required to build a PIN auth service.
type ServiceParams struct {
	Limiter        *Limiter
	SessionManager sessionManager
	SessionConfig  config.SessionConfig
	PinConfig      config.PinConfig
	Logger         *logger.Logger
	Metrics        *metrics.AccessMetrics
}

// NewService constructs a PIN verification service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Limiter == nil {
		return nil, fmt.Errorf("limiter is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if strings.TrimSpace(params.PinConfig.Hash) == "" {
		return nil, fmt.Errorf("pin hash is required")
	}
	return &service{
		limiter:    params.Limiter,
		sessions:   params.SessionManager,
		sessionCfg: params.SessionConfig,
		pinCfg:     params.PinConfig,
		logger:     params.Logger,
		metrics:    params.Metrics,
		now:        time.Now,
	}, nil
}

// Verify runs one PIN attempt. The lockout check happens before any hash
// comparison so locked clients cost no bcrypt work.
func (s *service) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	clientID := strings.TrimSpace(req.ClientID)
	if clientID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client id is required")
	}

	locked, wait, err := s.limiter.CheckLockout(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if locked {
		s.metrics.IncPinVerify("locked")
		return nil, lockoutError(wait)
	}

	pin := strings.TrimSpace(req.Pin)
	valid, err := s.checkPin(ctx, pin)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify pin")
	}
	if !valid {
		s.metrics.IncPinVerify("failure")
		remaining, lockedFor, err := s.limiter.RecordFailure(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if lockedFor > 0 {
			s.metrics.IncPinLockout()
			s.logger.Warn(s.logger.WithField(ctx, "attempts_remaining", 0), "pin lockout triggered")
			return nil, lockoutError(lockedFor)
		}
		s.logger.Warn(s.logger.WithField(ctx, "attempts_remaining", remaining), "pin verification failed")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidPinMessage)
	}

	if err := s.limiter.ResetAttempts(ctx, clientID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sessionID := session.NewSessionID()
	token, err := pkgauth.MintSessionToken(s.sessionCfg, now, pkgauth.SessionTokenPayload{
		ProducerEmail: req.ProducerEmail,
		JTI:           sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}
	if err := s.sessions.Open(ctx, sessionID, strings.ToLower(strings.TrimSpace(req.ProducerEmail))); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open session")
	}

	s.metrics.IncPinVerify("success")
	s.logger.Info(s.logger.WithProducerEmail(ctx, req.ProducerEmail), "producer session opened")

	return &VerifyResponse{
		AccessToken: token,
		ExpiresAt:   now.Add(s.sessionCfg.TTL()),
	}, nil
}

// Logout revokes the redis session record so the JWT dies before its expiry.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) checkPin(ctx context.Context, pin string) (bool, error) {
	if pin == "" {
		return false, nil
	}
	if security.IsLegacyPinHash(s.pinCfg.Hash) {
		if !s.pinCfg.AllowLegacyMD5 {
			return false, fmt.Errorf("legacy pin hash configured but legacy verification is disabled")
		}
		ok := security.VerifyLegacyPin(pin, s.pinCfg.Hash)
		if ok {
			s.logger.Warn(ctx, "pin verified against legacy md5 hash, re-issue with bcrypt")
		}
		return ok, nil
	}
	return security.VerifyPin(pin, s.pinCfg.Hash)
}

func lockoutError(wait time.Duration) error {
	seconds := int(math.Ceil(wait.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return pkgerrors.New(pkgerrors.CodeRateLimit, "too many failed attempts").
		WithDetails(RetryDetails{RetryAfterSeconds: seconds})
}

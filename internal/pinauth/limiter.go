package pinauth

import (
	"context"
	"fmt"
	"time"

	"github.com/mayaserrano/framelight-backend/pkg/config"
	pkgerrors "github.com/mayaserrano/framelight-backend/pkg/errors"
)

// Limiter enforces the failed-attempt lockout around PIN verification.
type Limiter struct {
	store       AttemptStore
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

// NewLimiter builds a lockout limiter over the provided attempt store.
func NewLimiter(store AttemptStore, cfg config.PinConfig) (*Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("attempt store is required")
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	lockout := cfg.LockoutWindow
	if lockout <= 0 {
		lockout = 15 * time.Minute
	}
	return &Limiter{
		store:       store,
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}, nil
}

// CheckLockout reports whether the client is currently locked out and, if
// so, how long until the lock lifts. An expired lockout clears the record.
func (l *Limiter) CheckLockout(ctx context.Context, clientID string) (bool, time.Duration, error) {
	record, err := l.store.Get(ctx, clientID)
	if err != nil {
		return false, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read attempt record")
	}
	if record == nil || record.LockedUntil == nil {
		return false, 0, nil
	}
	remaining := record.LockedUntil.Sub(l.now())
	if remaining <= 0 {
		if err := l.store.Del(ctx, clientID); err != nil {
			return false, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear attempt record")
		}
		return false, 0, nil
	}
	return true, remaining, nil
}

// RecordFailure counts one failed attempt. Reaching the attempt cap sets a
// lockout and returns its duration; otherwise lockedFor is zero and
// remaining reports the attempts left.
func (l *Limiter) RecordFailure(ctx context.Context, clientID string) (remaining int, lockedFor time.Duration, err error) {
	record, err := l.store.Get(ctx, clientID)
	if err != nil {
		return 0, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read attempt record")
	}
	now := l.now()
	if record == nil {
		record = &AttemptRecord{}
	}
	record.Count++
	record.LastAttempt = now

	if record.Count >= l.maxAttempts {
		lockedUntil := now.Add(l.lockout)
		record.LockedUntil = &lockedUntil
		if err := l.store.Set(ctx, clientID, record, l.lockout); err != nil {
			return 0, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write attempt record")
		}
		return 0, l.lockout, nil
	}

	if err := l.store.Set(ctx, clientID, record, l.lockout); err != nil {
		return 0, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write attempt record")
	}
	return l.maxAttempts - record.Count, 0, nil
}

// ResetAttempts drops the attempt record after a successful verification.
func (l *Limiter) ResetAttempts(ctx context.Context, clientID string) error {
	if err := l.store.Del(ctx, clientID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear attempt record")
	}
	return nil
}

// RemainingAttempts reports how many attempts the client has left before a
// lockout triggers.
func (l *Limiter) RemainingAttempts(ctx context.Context, clientID string) (int, error) {
	record, err := l.store.Get(ctx, clientID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read attempt record")
	}
	if record == nil {
		return l.maxAttempts, nil
	}
	if record.LockedUntil != nil && record.LockedUntil.After(l.now()) {
		return 0, nil
	}
	remaining := l.maxAttempts - record.Count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

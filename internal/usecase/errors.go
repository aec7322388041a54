package usecase

import (
	"context"
	"errors"
	"fmt"

	"jobboard/internal/batch"
	"jobboard/internal/store"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrJobNotFound         = errors.New("job not found")
	ErrJobExpired          = errors.New("job is no longer accepting applications")
	ErrApplicationNotFound = errors.New("application not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrAlreadyApplied      = errors.New("already applied")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrForbidden           = errors.New("forbidden")
	ErrUnavailable         = errors.New("store unavailable")
	ErrInternal            = errors.New("internal error")
)

// storeErr classifies a store or batch failure. Unavailability stays
// distinguishable from programming errors so callers can retry.
func storeErr(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, store.ErrUnavailable) || errors.Is(err, batch.ErrBatchFailed) {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

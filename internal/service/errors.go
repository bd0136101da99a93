package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/powerdealer-api/internal/domain"
)

// fieldConflict names the input field and message reported for a unique
// constraint violation.
type fieldConflict struct {
	field   string
	message string
}

// conflictAsValidation converts a store duplicate error into a
// *domain.ValidationError using conflicts. Errors with no entry are returned
// unchanged.
func conflictAsValidation(err error, conflicts map[error]fieldConflict) error {
	for sentinel, c := range conflicts {
		if errors.Is(err, sentinel) {
			return domain.NewValidationError(c.field, c.message)
		}
	}
	return err
}

// mergeRenamed copies the messages of src into dst, renaming fields found in
// names. Used when a domain entity's field is exposed under a different
// input name.
func mergeRenamed(dst *domain.ValidationError, src error, names map[string]string) {
	verr, ok := domain.AsValidationError(src)
	if !ok {
		return
	}
	for field, msgs := range verr.Fields {
		if renamed, ok := names[field]; ok {
			field = renamed
		}
		for _, msg := range msgs {
			dst.Add(field, msg)
		}
	}
}

// availabilityCheck looks up one unique field before a write.
type availabilityCheck struct {
	field   string
	value   string
	message string
	exists  func(ctx context.Context, value string) (bool, error)
}

// runAvailabilityChecks runs every check with a non-blank value and collects
// the taken fields into one *domain.ValidationError. A lookup failure stops
// the run and is returned as is.
func runAvailabilityChecks(ctx context.Context, checks []availabilityCheck) error {
	verr := &domain.ValidationError{}
	for _, c := range checks {
		value := strings.TrimSpace(c.value)
		if value == "" {
			continue
		}
		taken, err := c.exists(ctx, value)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", c.field, err)
		}
		if taken {
			verr.Add(c.field, c.message)
		}
	}
	return verr.OrNil()
}

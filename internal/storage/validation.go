package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lifebase/lifebase/internal/common"
	"github.com/lifebase/lifebase/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidModule    = errors.New("invalid module")
	ErrInvalidRecord    = errors.New("invalid record")
	ErrInvalidInputType = errors.New("invalid input type")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateOwner ensures an authenticated owner is present.
func validateOwner(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return common.ErrAuthenticationRequired
	}
	return nil
}

// validateModuleType ensures a module type belongs to the closed enum.
func validateModuleType(moduleType model.ModuleType) error {
	if !moduleType.IsValid() {
		return fmt.Errorf("%w: unknown module type %q", common.ErrValidation, moduleType)
	}
	return nil
}

// validateRecord validates a record before insert.
func validateRecord(record *model.RecordEntry) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if err := validateOwner(record.UserID); err != nil {
		return err
	}
	switch record.InputType {
	case model.InputTypeText, model.InputTypePhoto, model.InputTypeVoice:
	case "":
		// Defaulted to text by the caller
	default:
		return fmt.Errorf("%w: %q", ErrInvalidInputType, record.InputType)
	}
	if record.InputType == model.InputTypeText && strings.TrimSpace(record.Content) == "" {
		return fmt.Errorf("%w: text record requires content", common.ErrValidation)
	}
	return nil
}

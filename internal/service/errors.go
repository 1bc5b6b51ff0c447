package service

import (
	"errors"
	"fmt"

	"github.com/khrees2412/talentflow/internal/database"
)

// Sentinel errors for errors.Is checks. Storage failures are not wrapped in
// any of these; they surface as *database.StorageError.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicate            = errors.New("duplicate")
	ErrDuplicateApplication = fmt.Errorf("%w application: candidate already applied to this job", ErrDuplicate)
	ErrValidation           = errors.New("validation failed")
)

// NotFoundError reports an id that does not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateError reports a violated uniqueness invariant.
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s: %s %q already exists", e.Entity, e.Field, e.Value)
}

func (e *DuplicateError) Is(target error) bool {
	if target == ErrDuplicateApplication {
		return e.Entity == entityApplication
	}
	return target == ErrDuplicate
}

// ValidationError reports caller data that fails a structural precondition.
// It is always returned before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

const (
	entityJob         = "job"
	entityCandidate   = "candidate"
	entityAssessment  = "assessment"
	entityNote        = "note"
	entityResponse    = "assessment response"
	entityApplication = "job application"
)

// notFound converts a storage miss into a NotFoundError and leaves every
// other error untouched.
func notFound(entity, id string, err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}

// duplicate converts a unique-index violation into a DuplicateError.
func duplicate(entity, field, value string, err error) error {
	if database.IsUniqueViolation(err) {
		return &DuplicateError{Entity: entity, Field: field, Value: value}
	}
	return err
}

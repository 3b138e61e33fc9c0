package pipeline

import (
	"errors"
	"regexp"
	"strings"
)

// StageID uniquely identifies a stage within the pipeline.
// Format: component:action (e.g., "apt:repository").
type StageID struct {
	value string
}

// Errors for StageID validation.
var (
	ErrEmptyStageID   = errors.New("stage ID cannot be empty")
	ErrInvalidStageID = errors.New("stage ID format invalid: must be alphanumeric with colons, hyphens, or underscores")
)

var stageIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*(?::[a-z0-9][a-z0-9_-]*)*$`)

// NewStageID creates a new StageID from a string.
func NewStageID(value string) (StageID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return StageID{}, ErrEmptyStageID
	}
	if !stageIDPattern.MatchString(trimmed) {
		return StageID{}, ErrInvalidStageID
	}
	return StageID{value: trimmed}, nil
}

// MustNewStageID creates a new StageID from a string, panicking on error.
// Use this for compile-time known values that should never fail validation.
func MustNewStageID(value string) StageID {
	id, err := NewStageID(value)
	if err != nil {
		panic("invalid stage ID: " + value + ": " + err.Error())
	}
	return id
}

// String returns the string representation.
func (id StageID) String() string {
	return id.value
}

// Component extracts the component name (first segment).
func (id StageID) Component() string {
	parts := strings.SplitN(id.value, ":", 2)
	return parts[0]
}

// IsZero returns true if this is a zero-value StageID.
func (id StageID) IsZero() bool {
	return id.value == ""
}

package util

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyGoal           = errors.New("career goal must not be empty")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEntryNotFound       = errors.New("history entry not found")
	ErrSkillNotFound       = errors.New("skill not found in entry")
	ErrAnalysisInFlight    = errors.New("an analysis is already in progress for this user")
	ErrMissingContactField = errors.New("missing required fields")
	ErrInvalidEmail        = errors.New("invalid email address")
)

// ConfigurationError reports a missing credential for a feature. Checked
// before any network call so the affected feature degrades on its own.
type ConfigurationError struct {
	Feature string
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured: missing %s", e.Feature, e.Missing)
}

// UpstreamError is a non-2xx response from a third-party API.
type UpstreamError struct {
	Service string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.Status, e.Message)
	}
	return fmt.Sprintf("%s API error (status %d)", e.Service, e.Status)
}

// DecodeError means an upstream body could not be parsed into the expected shape.
type DecodeError struct {
	Service string
	Err     error
	Raw     string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s response decode failed: %v (raw: %s)", e.Service, e.Err, Truncate(e.Raw, 200))
}

func (e *DecodeError) Unwrap() error { return e.Err }

// JobSearchError wraps any job API failure. Always non-fatal to the
// analysis pipeline; the caller records it and continues with no jobs.
type JobSearchError struct {
	Err error
}

func (e *JobSearchError) Error() string {
	return fmt.Sprintf("job search failed: %v", e.Err)
}

func (e *JobSearchError) Unwrap() error { return e.Err }

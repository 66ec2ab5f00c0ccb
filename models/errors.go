package models

import (
	"errors"
	"fmt"
)

// Error codes used across the scraping core.
const (
	ErrCodeConfiguration     = "CONFIGURATION_ERROR"
	ErrCodeDriverUnavailable = "DRIVER_UNAVAILABLE"
	ErrCodeNavigation        = "NAVIGATION_FAILED"
	ErrCodeInteraction       = "INTERACTION_FAILED"
	ErrCodeExtraction        = "EXTRACTION_FAILED"
	ErrCodeTimeout           = "SCRAPE_TIMEOUT"
)

// ScrapeError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}

// IsConfigurationError reports whether err carries ErrCodeConfiguration.
func IsConfigurationError(err error) bool {
	return hasCode(err, ErrCodeConfiguration)
}

// IsDriverUnavailable reports whether err carries ErrCodeDriverUnavailable.
func IsDriverUnavailable(err error) bool {
	return hasCode(err, ErrCodeDriverUnavailable)
}

func hasCode(err error, code string) bool {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

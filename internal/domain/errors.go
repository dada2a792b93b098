package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when an assessment session has not been started or was discarded.
	ErrSessionNotFound = errors.New("assessment session not found")
	// ErrSessionFinalized is returned when answers are submitted after the result was computed.
	ErrSessionFinalized = errors.New("assessment session already finalized")
	// ErrAssessmentNotFound indicates the assessment bank could not be loaded.
	ErrAssessmentNotFound = errors.New("assessment not found")
	// ErrQuestionNotFound indicates a submitted question ID is not part of the bank.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrSectionNotFound indicates an unknown section name.
	ErrSectionNotFound = errors.New("section not found")
	// ErrInvalidResponse indicates an answer outside the question's declared domain.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrNoDataForCategory indicates a category was scored with zero answers.
	ErrNoDataForCategory = errors.New("no data for category")
	// ErrConfiguration indicates invalid weights, thresholds or bank definitions.
	ErrConfiguration = errors.New("invalid configuration")
)

// ErrorCode is the stable identifier surfaced to clients.
type ErrorCode string

const (
	ErrCodeInvalidResponse    ErrorCode = "INVALID_RESPONSE"
	ErrCodeNoDataForCategory  ErrorCode = "NO_DATA_FOR_CATEGORY"
	ErrCodeConfiguration      ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionFinalized   ErrorCode = "SESSION_FINALIZED"
	ErrCodeAssessmentNotFound ErrorCode = "ASSESSMENT_NOT_FOUND"
	ErrCodeQuestionNotFound   ErrorCode = "QUESTION_NOT_FOUND"
	ErrCodeSectionNotFound    ErrorCode = "SECTION_NOT_FOUND"
	ErrCodeInternal           ErrorCode = "INTERNAL"
)

// CodeOf maps an error to its client-facing code.
func CodeOf(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrInvalidResponse):
		return ErrCodeInvalidResponse
	case errors.Is(err, ErrNoDataForCategory):
		return ErrCodeNoDataForCategory
	case errors.Is(err, ErrConfiguration):
		return ErrCodeConfiguration
	case errors.Is(err, ErrSessionNotFound):
		return ErrCodeSessionNotFound
	case errors.Is(err, ErrSessionFinalized):
		return ErrCodeSessionFinalized
	case errors.Is(err, ErrAssessmentNotFound):
		return ErrCodeAssessmentNotFound
	case errors.Is(err, ErrQuestionNotFound):
		return ErrCodeQuestionNotFound
	case errors.Is(err, ErrSectionNotFound):
		return ErrCodeSectionNotFound
	default:
		return ErrCodeInternal
	}
}

// InvalidResponseError describes why an answer was rejected at ingest.
type InvalidResponseError struct {
	QuestionID string
	Value      string
	Reason     string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response for %s (%q): %s", e.QuestionID, e.Value, e.Reason)
}

func (e *InvalidResponseError) Unwrap() error { return ErrInvalidResponse }

// NoDataError reports the category that had nothing to score.
type NoDataError struct {
	Category Category
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data for category %s", e.Category)
}

func (e *NoDataError) Unwrap() error { return ErrNoDataForCategory }

// ConfigurationError points at the offending configuration field.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingTrackingNumber is returned when the tracking number is empty
// after whitespace removal.
var ErrMissingTrackingNumber = errors.New("tracking number is required")

// Upstream failure kinds. Each is carried by an *UpstreamError.
var (
	ErrDetectionFailed    = errors.New("carrier detection failed")
	ErrNoCarrierDetected  = errors.New("no carrier detected")
	ErrRegistrationFailed = errors.New("tracking registration failed")
	ErrRetrievalFailed    = errors.New("tracking retrieval failed")
)

var (
	ErrCourierDirectoryUnavailable = errors.New("courier directory unavailable")
	ErrLookupNotFound              = errors.New("lookup not found")
)

// Stage names the upstream step that failed.
type Stage string

const (
	StageDetect Stage = "detect"
	StageCreate Stage = "create"
	StageGet    Stage = "get"
)

// UpstreamError reports a failed provider exchange along with whatever raw
// payloads were collected before the failure.
type UpstreamError struct {
	Stage   Stage
	Kind    error
	Code    int
	Message string
	Cause   error

	Raw         json.RawMessage
	DetectRaw   json.RawMessage
	CreateRaw   json.RawMessage
	CourierCode string
	Endpoint    string
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if msg == "" {
		msg = "unknown"
	}
	return fmt.Sprintf("%v: %s", e.Kind, msg)
}

func (e *UpstreamError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// ProbeAttempt records one courier directory endpoint that was tried.
type ProbeAttempt struct {
	URL        string `json:"url"`
	HTTPStatus int    `json:"status"`
	Meta       *Meta  `json:"meta,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CourierDirectoryError is returned when no directory endpoint answered.
type CourierDirectoryError struct {
	Attempts []ProbeAttempt
}

func (e *CourierDirectoryError) Error() string {
	return fmt.Sprintf("%v: no candidate endpoint succeeded after %d attempts", ErrCourierDirectoryUnavailable, len(e.Attempts))
}

func (e *CourierDirectoryError) Unwrap() error { return ErrCourierDirectoryUnavailable }

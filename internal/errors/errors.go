// Package errors provides the error taxonomy for the gemweb client.
//
// Errors fall into three groups: transport-level failures that the turn
// controller may retry (NetworkError, APIError, AuthError, and the
// ErrNoCandidates parse kind), decode-stage failures that are never retried
// (ParseError and its kinds), and caller-usage errors on the session API
// that fail fast (ErrInvalidMetadata, ErrIndexOutOfRange, ErrNoPriorOutput).
package errors

import (
	"errors"
	"fmt"
)

// Parse-stage kinds. A ParseError wraps exactly one of these so callers can
// branch with errors.Is.
var (
	// ErrMalformedResponse means the response framing or the double-encoded
	// JSON payload could not be decoded.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEmptyBody means the response decoded cleanly but carried no
	// candidate data at either known location.
	ErrEmptyBody = errors.New("empty response body")

	// ErrNoCandidates means the candidate list decoded but yielded zero
	// usable candidates. Treated as a transient session failure and retried.
	ErrNoCandidates = errors.New("no candidates in response")
)

// Session API usage errors. Never retried.
var (
	ErrInvalidMetadata = errors.New("chat metadata cannot exceed 3 elements")
	ErrIndexOutOfRange = errors.New("candidate index out of range")
	ErrNoPriorOutput   = errors.New("no previous output in this chat session")
)

// AuthError reports an authentication failure (expired or missing cookies,
// token fetch failure).
type AuthError struct {
	Message    string
	Endpoint   string
	HTTPStatus int
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed: cookies may have expired"
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// Is matches any other AuthError so callers can use errors.Is with a bare
// &AuthError{}.
func (e *AuthError) Is(target error) bool {
	_, ok := target.(*AuthError)
	return ok
}

// NewAuthError creates a new AuthError.
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

// NewAuthErrorWithEndpoint creates an AuthError tagged with the endpoint.
func NewAuthErrorWithEndpoint(message, endpoint string) *AuthError {
	return &AuthError{Message: message, Endpoint: endpoint}
}

// APIError reports a non-success HTTP status from the upstream API.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message}
}

// NewAPIErrorWithBody creates an APIError carrying the response body for
// diagnostics.
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message, Body: body}
}

// NetworkError reports a failed network exchange (connection refused, DNS,
// timeout at the transport layer).
type NetworkError struct {
	Op       string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error during %s (%s): %v", e.Op, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NewNetworkError creates a new NetworkError.
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

// NewNetworkErrorWithEndpoint creates a NetworkError tagged with the endpoint.
func NewNetworkErrorWithEndpoint(op, endpoint string, err error) *NetworkError {
	return &NetworkError{Op: op, Endpoint: endpoint, Err: err}
}

// TimeoutError reports a request timeout.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// ParseError reports a decode-stage structural failure. Kind is one of
// ErrMalformedResponse, ErrEmptyBody or ErrNoCandidates; Path is the
// positional path that failed, when known.
type ParseError struct {
	Kind    error
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at [%s]: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is matches the kind sentinel and other ParseErrors.
func (e *ParseError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a ParseError with no specific kind.
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// NewMalformedResponse creates a ParseError of kind ErrMalformedResponse.
func NewMalformedResponse(message string) *ParseError {
	return &ParseError{Kind: ErrMalformedResponse, Message: message}
}

// NewMalformedResponseAt is NewMalformedResponse with the failing path.
func NewMalformedResponseAt(message, path string) *ParseError {
	return &ParseError{Kind: ErrMalformedResponse, Message: message, Path: path}
}

// NewEmptyBody creates a ParseError of kind ErrEmptyBody.
func NewEmptyBody(message string) *ParseError {
	return &ParseError{Kind: ErrEmptyBody, Message: message}
}

// NewNoCandidates creates a ParseError of kind ErrNoCandidates.
func NewNoCandidates(message, path string) *ParseError {
	return &ParseError{Kind: ErrNoCandidates, Message: message, Path: path}
}

// SessionError is the terminal error after the bounded retry policy gives up
// on establishing a working session.
type SessionError struct {
	Attempts int
	Last     error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("failed to establish session after %d attempts: %v", e.Attempts, e.Last)
}

func (e *SessionError) Unwrap() error { return e.Last }

// NewSessionError creates a SessionError wrapping the last attempt's failure.
func NewSessionError(attempts int, last error) *SessionError {
	return &SessionError{Attempts: attempts, Last: last}
}

// UsageLimitError reports that the account hit a model usage limit.
type UsageLimitError struct {
	Model string
}

func (e *UsageLimitError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("usage limit exceeded for model %s", e.Model)
	}
	return "usage limit exceeded"
}

// ModelError reports a model selection or model header problem.
type ModelError struct {
	Code    ErrorCode
	Message string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model error: %s", e.Message)
}

// BlockedError reports an upstream block (IP or content).
type BlockedError struct {
	Message string
}

func (e *BlockedError) Error() string {
	if e.Message == "" {
		return "request blocked"
	}
	return fmt.Sprintf("request blocked: %s", e.Message)
}

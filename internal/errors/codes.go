package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is an upstream error code embedded in a response body.
type ErrorCode int

// Known upstream error codes.
const (
	ErrCodeUnknown            ErrorCode = 0
	ErrCodeUsageLimitExceeded ErrorCode = 1037
	ErrCodeModelInconsistent  ErrorCode = 1050
	ErrCodeModelHeaderInvalid ErrorCode = 1052
	ErrCodeIPBlocked          ErrorCode = 1060
)

// String returns a short description of the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeUsageLimitExceeded:
		return "usage limit exceeded"
	case ErrCodeModelInconsistent:
		return "model response inconsistent"
	case ErrCodeModelHeaderInvalid:
		return "model header invalid"
	case ErrCodeIPBlocked:
		return "IP temporarily blocked"
	default:
		return "unknown"
	}
}

// FromErrorCode maps an upstream error code to a typed error.
func FromErrorCode(code ErrorCode, endpoint, model string) error {
	switch code {
	case ErrCodeUsageLimitExceeded:
		return &UsageLimitError{Model: model}
	case ErrCodeModelInconsistent:
		return &ModelError{Code: code, Message: fmt.Sprintf("inconsistent response for model %s, try another model", model)}
	case ErrCodeModelHeaderInvalid:
		return &ModelError{Code: code, Message: fmt.Sprintf("invalid model header for %s, the client may be outdated", model)}
	case ErrCodeIPBlocked:
		return &BlockedError{Message: "your IP address is temporarily blocked upstream"}
	default:
		return NewAPIError(0, endpoint, fmt.Sprintf("unexpected error code %d", code))
	}
}

// IsAuthError reports whether err is an authentication failure, including a
// 401/403 APIError.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsTimeoutError reports whether err is a timeout.
func IsTimeoutError(err error) bool {
	var toErr *TimeoutError
	return errors.As(err, &toErr)
}

// IsParseError reports whether err is a decode-stage failure of any kind.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsRateLimitError reports whether err is a usage limit failure.
func IsRateLimitError(err error) bool {
	var limitErr *UsageLimitError
	return errors.As(err, &limitErr)
}

// IsRetryable reports whether the turn controller should retry the full turn
// with refreshed credentials. Transport failures and empty candidate lists
// are retryable; decode failures and caller-usage errors are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoCandidates) {
		return true
	}
	if IsParseError(err) {
		return false
	}
	if IsNetworkError(err) || IsTimeoutError(err) || IsAuthError(err) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429 ||
			apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// GetHTTPStatus extracts the HTTP status from a structured error, or 0.
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.HTTPStatus
	}
	return 0
}

// GetEndpoint extracts the endpoint from a structured error, or "".
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}

// GetErrorCode extracts the upstream error code from a structured error, or
// ErrCodeUnknown.
func GetErrorCode(err error) ErrorCode {
	var limitErr *UsageLimitError
	if errors.As(err, &limitErr) {
		return ErrCodeUsageLimitExceeded
	}
	var modelErr *ModelError
	if errors.As(err, &modelErr) {
		return modelErr.Code
	}
	var blockedErr *BlockedError
	if errors.As(err, &blockedErr) {
		return ErrCodeIPBlocked
	}
	return ErrCodeUnknown
}

// GetResponseBody extracts the captured response body from an APIError, or "".
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}

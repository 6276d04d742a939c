package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAuthError(t *testing.T) {
	err := NewAuthError("cookies expired")

	expected := "authentication failed: cookies expired"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	// Matches any other AuthError
	if !errors.Is(err, &AuthError{}) {
		t.Error("Expected error to match bare AuthError")
	}

	other := NewAPIError(400, "test", "other error")
	if errors.Is(err, other) {
		t.Error("Expected error not to match different type")
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(400, "test-endpoint", "bad request")

	expected := "API error [400] at test-endpoint: bad request"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	withBody := NewAPIErrorWithBody(500, "ep", "oops", "body text")
	if withBody.Body != "body text" {
		t.Errorf("Body = %q", withBody.Body)
	}
}

func TestNetworkErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkErrorWithEndpoint("generate", "https://example.com", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected wrapped cause to be reachable via errors.Is")
	}
}

func TestParseErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		kind error
	}{
		{"malformed", NewMalformedResponse("bad framing"), ErrMalformedResponse},
		{"malformed at path", NewMalformedResponseAt("not a string", "0.2"), ErrMalformedResponse},
		{"empty body", NewEmptyBody("nothing at either position"), ErrEmptyBody},
		{"no candidates", NewNoCandidates("empty list", "4"), ErrNoCandidates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, kind) = false", tt.err)
			}
			// A parse error of one kind must not match another
			for _, other := range []error{ErrMalformedResponse, ErrEmptyBody, ErrNoCandidates} {
				if other != tt.kind && errors.Is(tt.err, other) {
					t.Errorf("%v should not match %v", tt.err, other)
				}
			}
		})
	}
}

func TestParseErrorPathInMessage(t *testing.T) {
	err := NewMalformedResponseAt("candidate missing rcid", "4.0.0")

	expected := "parse error at [4.0.0]: candidate missing rcid"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

func TestSessionError(t *testing.T) {
	cause := NewNoCandidates("empty list", "4")
	err := NewSessionError(2, cause)

	if err.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", err.Attempts)
	}
	if !errors.Is(err, ErrNoCandidates) {
		t.Error("SessionError should unwrap to its cause")
	}

	expected := fmt.Sprintf("failed to establish session after 2 attempts: %v", cause)
	if err.Error() != expected {
		t.Errorf("Error() = %s", err.Error())
	}
}

func TestFromErrorCode(t *testing.T) {
	tests := []struct {
		name  string
		code  ErrorCode
		check func(err error) bool
	}{
		{
			name: "usage limit",
			code: ErrCodeUsageLimitExceeded,
			check: func(err error) bool {
				var e *UsageLimitError
				return errors.As(err, &e) && e.Model == "gemini-2.5-flash"
			},
		},
		{
			name: "model inconsistent",
			code: ErrCodeModelInconsistent,
			check: func(err error) bool {
				var e *ModelError
				return errors.As(err, &e) && e.Code == ErrCodeModelInconsistent
			},
		},
		{
			name: "model header invalid",
			code: ErrCodeModelHeaderInvalid,
			check: func(err error) bool {
				var e *ModelError
				return errors.As(err, &e) && e.Code == ErrCodeModelHeaderInvalid
			},
		},
		{
			name: "ip blocked",
			code: ErrCodeIPBlocked,
			check: func(err error) bool {
				var e *BlockedError
				return errors.As(err, &e)
			},
		},
		{
			name: "unknown code",
			code: ErrorCode(9999),
			check: func(err error) bool {
				var e *APIError
				return errors.As(err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromErrorCode(tt.code, "endpoint", "gemini-2.5-flash")
			if !tt.check(err) {
				t.Errorf("FromErrorCode(%d) = %v, wrong type", tt.code, err)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"no candidates is retryable", NewNoCandidates("empty", "4"), true},
		{"malformed is not", NewMalformedResponse("bad"), false},
		{"empty body is not", NewEmptyBody("nothing"), false},
		{"auth error is retryable", NewAuthError("expired"), true},
		{"network error is retryable", NewNetworkError("generate", errors.New("refused")), true},
		{"timeout is retryable", NewTimeoutError("slow"), true},
		{"server 500 is retryable", NewAPIError(500, "ep", "oops"), true},
		{"client 400 is not", NewAPIError(400, "ep", "bad"), false},
		{"invalid metadata is not", ErrInvalidMetadata, false},
		{"nil is not", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(FromErrorCode(ErrCodeUsageLimitExceeded, "", "m")); got != ErrCodeUsageLimitExceeded {
		t.Errorf("GetErrorCode() = %d, want 1037", got)
	}
	if got := GetErrorCode(NewAuthError("x")); got != ErrCodeUnknown {
		t.Errorf("GetErrorCode() = %d, want unknown", got)
	}
}

func TestGetAccessors(t *testing.T) {
	err := NewAPIErrorWithBody(429, "https://example.com/g", "limited", "slow down")

	if got := GetHTTPStatus(err); got != 429 {
		t.Errorf("GetHTTPStatus() = %d, want 429", got)
	}
	if got := GetEndpoint(err); got != "https://example.com/g" {
		t.Errorf("GetEndpoint() = %q", got)
	}
	if got := GetResponseBody(err); got != "slow down" {
		t.Errorf("GetResponseBody() = %q", got)
	}
}

package commands

import (
	"strings"
	"testing"

	apierrors "github.com/dmateus/gemweb/internal/errors"
)

func TestFormatErrorMessageNil(t *testing.T) {
	if got := formatErrorMessage(nil, "context"); got != "" {
		t.Errorf("formatErrorMessage(nil) = %q, want empty", got)
	}
}

func TestFormatErrorMessageAuthHint(t *testing.T) {
	err := apierrors.NewAuthError("cookies expired")
	msg := formatErrorMessage(err, "Failed to initialize")

	if !strings.Contains(msg, "Failed to initialize") {
		t.Errorf("message missing context: %q", msg)
	}
	if !strings.Contains(msg, "auto-login") {
		t.Errorf("auth error should hint at auto-login: %q", msg)
	}
}

func TestFormatErrorMessageHTTPStatus(t *testing.T) {
	err := apierrors.NewAPIError(500, "https://example.com/generate", "server error")
	msg := formatErrorMessage(err, "Generation failed")

	if !strings.Contains(msg, "HTTP Status: 500") {
		t.Errorf("message missing HTTP status: %q", msg)
	}
	if !strings.Contains(msg, "https://example.com/generate") {
		t.Errorf("message missing endpoint: %q", msg)
	}
}

func TestFormatErrorMessageBody(t *testing.T) {
	err := apierrors.NewAPIErrorWithBody(403, "https://example.com", "blocked", "detailed body text")
	msg := formatErrorMessage(err, "Generation failed")

	if !strings.Contains(msg, "detailed body text") {
		t.Errorf("message should include response body: %q", msg)
	}
	// Body replaces the generic hint
	if strings.Contains(msg, "Hint:") {
		t.Errorf("hint should be omitted when body is present: %q", msg)
	}
}

func TestFormatErrorMessageUsageLimit(t *testing.T) {
	err := apierrors.FromErrorCode(apierrors.ErrCodeUsageLimitExceeded, "", "gemini-2.5-flash")
	msg := formatErrorMessage(err, "Generation failed")

	if !strings.Contains(msg, "Error Code: 1037") {
		t.Errorf("message missing error code: %q", msg)
	}
	if !strings.Contains(msg, "usage limit") {
		t.Errorf("message missing usage limit hint: %q", msg)
	}
}

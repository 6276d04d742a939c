package api

import (
	"fmt"
	"io"
	"regexp"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"

	"github.com/dmateus/gemweb/internal/config"
	apierrors "github.com/dmateus/gemweb/internal/errors"
	"github.com/dmateus/gemweb/internal/models"
)

// SNlM0e pattern for extracting the access token from the app HTML
var snlm0ePattern = regexp.MustCompile(`"SNlM0e":"([^"]+)"`)

// applyAuthCookies attaches the session cookies to an outgoing request.
func applyAuthCookies(req *http.Request, cookies *config.Cookies) {
	req.AddCookie(&http.Cookie{Name: "__Secure-1PSID", Value: cookies.Secure1PSID})
	if cookies.Secure1PSIDTS != "" {
		req.AddCookie(&http.Cookie{Name: "__Secure-1PSIDTS", Value: cookies.Secure1PSIDTS})
	}
	for name, value := range cookies.Extra {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

// GetAccessToken fetches the SNlM0e access token from gemini.google.com.
// Every stateful POST must carry this token, so a failure here means the
// cookies cannot establish a session.
func GetAccessToken(client tls_client.HttpClient, cookies *config.Cookies) (string, error) {
	req, err := http.NewRequest(http.MethodGet, models.EndpointInit, nil)
	if err != nil {
		return "", fmt.Errorf("create access token request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	applyAuthCookies(req, cookies)

	resp, err := client.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("fetch access token", models.EndpointInit, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("read access token response", models.EndpointInit, err)
	}

	if resp.StatusCode != 200 {
		authErr := apierrors.NewAuthErrorWithEndpoint(
			fmt.Sprintf("failed to fetch access token, status: %d", resp.StatusCode),
			models.EndpointInit,
		)
		authErr.HTTPStatus = resp.StatusCode
		return "", authErr
	}

	matches := snlm0ePattern.FindSubmatch(body)
	if len(matches) < 2 {
		return "", apierrors.NewAuthErrorWithEndpoint(
			"SNlM0e token not found in response. Cookies may be expired.",
			models.EndpointInit,
		)
	}

	return string(matches[1]), nil
}

package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/dmateus/gemweb/internal/errors"
	"github.com/dmateus/gemweb/internal/models"
)

// maxTurnAttempts bounds how many times a single turn is tried before the
// failure becomes terminal. Credentials are refreshed between attempts.
const maxTurnAttempts = 2

// GenerateOptions contains options for content generation
type GenerateOptions struct {
	Model    models.Model
	Metadata models.ChatMetadata // chat context [cid, rid, rcid]
}

// GenerateContent sends a prompt and returns the decoded turn. Transient
// failures (auth, network, empty candidate sets) are retried once after a
// credential refresh; decode failures are never retried because a retry
// would see the same bytes.
func (c *Client) GenerateContent(prompt string, opts *GenerateOptions) (*models.ModelOutput, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	if c.translator != nil {
		translated, err := c.translator.Translate(prompt)
		if err != nil {
			return nil, fmt.Errorf("translate prompt: %w", err)
		}
		prompt = translated
	}

	var lastErr error
	for attempt := 1; attempt <= maxTurnAttempts; attempt++ {
		output, err := c.doGenerateContent(prompt, opts)
		if err == nil {
			return output, nil
		}
		lastErr = err
		if !apierrors.IsRetryable(err) {
			return nil, err
		}
		if attempt < maxTurnAttempts {
			c.refreshCredentials(err)
		}
	}

	return nil, apierrors.NewSessionError(maxTurnAttempts, lastErr)
}

// refreshCredentials tries to obtain fresh auth state between attempts.
// Browser re-extraction is preferred when enabled and the failure was
// auth-shaped; otherwise the 1PSIDTS rotation endpoint is used.
func (c *Client) refreshCredentials(cause error) {
	if c.IsBrowserRefreshEnabled() && apierrors.IsAuthError(cause) {
		refresh := c.RefreshFromBrowser
		if c.refreshFunc != nil {
			refresh = c.refreshFunc
		}
		if refreshed, err := refresh(); err == nil && refreshed {
			return
		}
	}

	if newToken, err := RotateCookies(c.httpClient, c.GetCookies()); err == nil && newToken != "" {
		c.GetCookies().Update1PSIDTS(newToken)
	}
}

// doGenerateContent performs one generate request and decodes the result
func (c *Client) doGenerateContent(prompt string, opts *GenerateOptions) (*models.ModelOutput, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	model := c.GetModel()
	var metadata models.ChatMetadata
	if opts != nil {
		if opts.Model.Name != "" {
			model = opts.Model
		}
		metadata = opts.Metadata
	}

	payload, err := buildPayload(prompt, metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	form := url.Values{}
	form.Set("at", c.GetAccessToken())
	form.Set("f.req", payload)

	req, err := http.NewRequest(
		http.MethodPost,
		models.EndpointGenerate,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	for key, value := range model.Header {
		req.Header.Set(key, value)
	}
	applyAuthCookies(req, c.GetCookies())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("generate content", models.EndpointGenerate, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != 200 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, models.EndpointGenerate, "generate content failed", string(errorBody))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("read generate response", models.EndpointGenerate, err)
	}

	return parseResponse(body, model.Name, c.GetCookies().Map())
}

// parseResponse runs the full decode pipeline on a generate response body.
func parseResponse(body []byte, modelName string, cookies models.CookieMap) (*models.ModelOutput, error) {
	decoded, err := decodeResponseBody(body, modelName)
	if err != nil {
		return nil, err
	}
	return extractOutput(decoded, cookies)
}

// buildPayload creates the f.req payload for the generate request.
// Inner: [[prompt], null, metadata]; outer: [null, innerJSON].
func buildPayload(prompt string, metadata models.ChatMetadata) (string, error) {
	inner := []interface{}{
		[]interface{}{prompt},
		nil,
		metadata.Wire(),
	}

	innerJSON, err := json.Marshal(inner)
	if err != nil {
		return "", err
	}

	outer := []interface{}{
		nil,
		string(innerJSON),
	}

	outerJSON, err := json.Marshal(outer)
	if err != nil {
		return "", err
	}

	return string(outerJSON), nil
}

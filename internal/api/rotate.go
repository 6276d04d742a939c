package api

import (
	"fmt"
	"strings"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"

	"github.com/dmateus/gemweb/internal/config"
	apierrors "github.com/dmateus/gemweb/internal/errors"
	"github.com/dmateus/gemweb/internal/models"
)

// Rate limiting for cookie rotation (1 call per minute max)
var (
	lastRotateTime time.Time
	rotateMutex    sync.Mutex
)

// RotateCookies asks accounts.google.com for a fresh __Secure-1PSIDTS value.
// Returns the new value, or "" when the call was skipped or the server sent
// no replacement cookie.
func RotateCookies(client tls_client.HttpClient, cookies *config.Cookies) (string, error) {
	rotateMutex.Lock()
	defer rotateMutex.Unlock()

	// Skip if called too recently
	if time.Since(lastRotateTime) < time.Minute {
		return "", nil
	}

	req, err := http.NewRequest(
		http.MethodPost,
		models.EndpointRotateCookies,
		strings.NewReader(`[000,"-0000000000000000000"]`),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create rotate request: %w", err)
	}

	for key, value := range models.RotateCookiesHeaders() {
		req.Header.Set(key, value)
	}
	applyAuthCookies(req, cookies)

	resp, err := client.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("rotate cookies", models.EndpointRotateCookies, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode == 401 {
		return "", apierrors.NewAuthErrorWithEndpoint("unauthorized during cookie rotation", models.EndpointRotateCookies)
	}
	if resp.StatusCode != 200 {
		return "", apierrors.NewAPIError(resp.StatusCode, models.EndpointRotateCookies, "cookie rotation failed")
	}

	lastRotateTime = time.Now()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "__Secure-1PSIDTS" {
			return cookie.Value, nil
		}
	}

	return "", nil
}

// Rotator refreshes the __Secure-1PSIDTS cookie on a timer for long-lived
// clients.
type Rotator struct {
	client   tls_client.HttpClient
	cookies  *config.Cookies
	interval time.Duration
	stopCh   chan struct{}
	running  bool
	mu       sync.Mutex
}

// NewRotator creates a stopped Rotator.
func NewRotator(client tls_client.HttpClient, cookies *config.Cookies, interval time.Duration) *Rotator {
	return &Rotator{
		client:   client,
		cookies:  cookies,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins background cookie rotation
func (r *Rotator) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				newToken, err := RotateCookies(r.client, r.cookies)
				if err != nil {
					continue
				}
				if newToken != "" {
					r.cookies.Update1PSIDTS(newToken)
				}
			case <-r.stopCh:
				return
			}
		}
	}()
}

// Stop halts background cookie rotation
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		close(r.stopCh)
		r.running = false
	}
}

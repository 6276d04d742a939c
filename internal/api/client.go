package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/dmateus/gemweb/internal/browser"
	"github.com/dmateus/gemweb/internal/config"
	"github.com/dmateus/gemweb/internal/models"
)

// Translator rewrites a prompt before it is submitted, for clients that
// want transparent prompt translation.
type Translator interface {
	Translate(text string) (string, error)
}

// Client talks to the Gemini web app using browser cookies for auth.
type Client struct {
	httpClient      tls_client.HttpClient
	cookies         *config.Cookies
	accessToken     string
	model           models.Model
	translator      Translator
	rotator         *Rotator
	autoRefresh     bool
	refreshInterval time.Duration
	// Browser-based cookie refresh
	browserRefresh        bool
	browserRefreshType    browser.SupportedBrowser
	lastBrowserRefresh    time.Time
	browserRefreshMinWait time.Duration
	// Overrides RefreshFromBrowser during tests
	refreshFunc func() (bool, error)
	mu          sync.RWMutex
	closed      bool
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithModel sets the default model for the client
func WithModel(model models.Model) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithAutoRefresh enables automatic cookie rotation in the background
func WithAutoRefresh(enabled bool) ClientOption {
	return func(c *Client) {
		c.autoRefresh = enabled
	}
}

// WithRefreshInterval sets the cookie rotation interval
func WithRefreshInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		c.refreshInterval = interval
	}
}

// WithBrowserRefresh enables cookie re-extraction from the browser when auth
// fails. browserType can be "auto", "chrome", "firefox", "edge", "chromium",
// "opera"
func WithBrowserRefresh(browserType browser.SupportedBrowser) ClientOption {
	return func(c *Client) {
		c.browserRefresh = true
		c.browserRefreshType = browserType
	}
}

// WithTranslator sets an optional prompt translator applied before every
// generate call
func WithTranslator(t Translator) ClientOption {
	return func(c *Client) {
		c.translator = t
	}
}

// NewClient creates a new Client
func NewClient(cookies *config.Cookies, opts ...ClientOption) (*Client, error) {
	if err := config.ValidateCookies(cookies); err != nil {
		return nil, err
	}

	// TLS client with Chrome profile for browser emulation
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(300),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	client := &Client{
		httpClient:            httpClient,
		cookies:               cookies,
		model:                 models.DefaultModel,
		autoRefresh:           true,
		refreshInterval:       9 * time.Minute,
		browserRefreshMinWait: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Init fetches the access token and starts background cookie rotation
func (c *Client) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("client is closed")
	}

	token, err := GetAccessToken(c.httpClient, c.cookies)
	if err != nil {
		return err
	}
	c.accessToken = token

	if c.autoRefresh {
		c.rotator = NewRotator(c.httpClient, c.cookies, c.refreshInterval)
		c.rotator.Start()
	}

	return nil
}

// Close shuts down the client and stops background tasks
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true

	if c.rotator != nil {
		c.rotator.Stop()
	}
}

// GetAccessToken returns the current access token
func (c *Client) GetAccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// GetCookies returns the current cookies
func (c *Client) GetCookies() *config.Cookies {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cookies
}

// GetHTTPClient returns the underlying HTTP client
func (c *Client) GetHTTPClient() tls_client.HttpClient {
	return c.httpClient
}

// GetModel returns the default model
func (c *Client) GetModel() models.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel sets the default model
func (c *Client) SetModel(model models.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// StartChat creates a new chat session
func (c *Client) StartChat(model ...models.Model) *ChatSession {
	m := c.GetModel()
	if len(model) > 0 {
		m = model[0]
	}

	return &ChatSession{
		client: c,
		model:  m,
	}
}

// IsBrowserRefreshEnabled returns whether browser refresh is enabled
func (c *Client) IsBrowserRefreshEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.browserRefresh
}

// RefreshFromBrowser re-extracts cookies from the local browser and
// re-fetches the access token. Returns true if cookies were refreshed.
func (c *Client) RefreshFromBrowser() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.browserRefresh {
		return false, fmt.Errorf("browser refresh is not enabled")
	}

	// Rate limit browser refresh attempts
	if time.Since(c.lastBrowserRefresh) < c.browserRefreshMinWait {
		return false, fmt.Errorf("browser refresh attempted too recently, wait %v", c.browserRefreshMinWait-time.Since(c.lastBrowserRefresh))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := browser.ExtractGeminiCookies(ctx, c.browserRefreshType)
	if err != nil {
		c.lastBrowserRefresh = time.Now()
		return false, fmt.Errorf("failed to extract cookies from browser: %w", err)
	}

	c.cookies.Secure1PSID = result.Cookies.Secure1PSID
	c.cookies.Secure1PSIDTS = result.Cookies.Secure1PSIDTS
	c.lastBrowserRefresh = time.Now()

	if err := config.SaveCookies(c.cookies); err != nil {
		// Cookies are updated in memory even if the disk write fails
		fmt.Printf("Warning: failed to save refreshed cookies to disk: %v\n", err)
	}

	token, err := GetAccessToken(c.httpClient, c.cookies)
	if err != nil {
		return false, fmt.Errorf("failed to get access token with new cookies: %w", err)
	}
	c.accessToken = token

	return true, nil
}

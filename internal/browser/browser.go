// Package browser extracts Gemini session cookies from locally installed
// web browsers.
package browser

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/chrome"
	_ "github.com/browserutils/kooky/browser/chromium"
	_ "github.com/browserutils/kooky/browser/edge"
	_ "github.com/browserutils/kooky/browser/firefox"
	_ "github.com/browserutils/kooky/browser/opera"

	"github.com/dmateus/gemweb/internal/config"
)

// SupportedBrowser identifies a browser whose cookie store we can read
type SupportedBrowser string

const (
	BrowserAuto     SupportedBrowser = "auto"
	BrowserChrome   SupportedBrowser = "chrome"
	BrowserChromium SupportedBrowser = "chromium"
	BrowserFirefox  SupportedBrowser = "firefox"
	BrowserEdge     SupportedBrowser = "edge"
	BrowserOpera    SupportedBrowser = "opera"
)

// AllSupportedBrowsers returns every browser we know how to read
func AllSupportedBrowsers() []SupportedBrowser {
	return []SupportedBrowser{
		BrowserChrome,
		BrowserChromium,
		BrowserFirefox,
		BrowserEdge,
		BrowserOpera,
	}
}

func (b SupportedBrowser) String() string {
	return string(b)
}

// ParseBrowser parses a browser string into a SupportedBrowser
func ParseBrowser(s string) (SupportedBrowser, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return BrowserAuto, nil
	case "chrome", "google-chrome":
		return BrowserChrome, nil
	case "chromium":
		return BrowserChromium, nil
	case "firefox", "mozilla", "mozilla-firefox":
		return BrowserFirefox, nil
	case "edge", "microsoft-edge", "msedge":
		return BrowserEdge, nil
	case "opera":
		return BrowserOpera, nil
	default:
		return "", fmt.Errorf("unsupported browser: %s. Supported: chrome, chromium, firefox, edge, opera", s)
	}
}

// ExtractResult contains the result of cookie extraction
type ExtractResult struct {
	Cookies     *config.Cookies
	BrowserName string
}

// ExtractGeminiCookies extracts Gemini authentication cookies. With
// BrowserAuto every supported browser is tried in order of popularity.
func ExtractGeminiCookies(ctx context.Context, browser SupportedBrowser) (*ExtractResult, error) {
	if browser == BrowserAuto {
		return extractFromAllBrowsers(ctx)
	}
	return extractFromBrowser(ctx, browser)
}

func extractFromAllBrowsers(ctx context.Context) (*ExtractResult, error) {
	browsers := []SupportedBrowser{
		BrowserChrome,
		BrowserFirefox,
		BrowserEdge,
		BrowserChromium,
		BrowserOpera,
	}

	var lastErr error
	for _, browser := range browsers {
		result, err := extractFromBrowser(ctx, browser)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, fmt.Errorf("could not find Gemini cookies in any browser: %w", lastErr)
	}
	return nil, fmt.Errorf("could not find Gemini cookies in any supported browser")
}

// extractFromBrowser tries every profile of the given browser until one
// holds the session cookie.
func extractFromBrowser(ctx context.Context, browser SupportedBrowser) (*ExtractResult, error) {
	stores := kooky.FindAllCookieStores(ctx)
	defer func() {
		for _, store := range stores {
			store.Close()
		}
	}()

	var matchingStores []kooky.CookieStore
	for _, store := range stores {
		if matchesBrowser(store.Browser(), browser) {
			matchingStores = append(matchingStores, store)
		}
	}
	if len(matchingStores) == 0 {
		return nil, fmt.Errorf("browser %s not found or no cookie store available", browser)
	}

	var lastErr error
	for _, store := range matchingStores {
		result, err := extractCookiesFromStore(ctx, store)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func matchesBrowser(browserName string, target SupportedBrowser) bool {
	browserName = strings.ToLower(browserName)

	switch target {
	case BrowserChrome:
		return strings.Contains(browserName, "chrome") && !strings.Contains(browserName, "chromium")
	case BrowserChromium:
		return strings.Contains(browserName, "chromium")
	case BrowserFirefox:
		return strings.Contains(browserName, "firefox")
	case BrowserEdge:
		return strings.Contains(browserName, "edge")
	case BrowserOpera:
		return strings.Contains(browserName, "opera")
	default:
		return false
	}
}

// extractCookiesFromStore reads google.com cookies from one store. Besides
// the two session cookies, the remaining google.com cookies are kept as
// extras; generated-image hosts want them.
func extractCookiesFromStore(ctx context.Context, store kooky.CookieStore) (*ExtractResult, error) {
	cookies := store.TraverseCookies(
		kooky.Valid,
		kooky.DomainContains("google.com"),
	).OnlyCookies()

	result := &config.Cookies{}
	for cookie := range cookies {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		switch cookie.Name {
		case "__Secure-1PSID":
			// Prefer .google.com over regional domains
			if result.Secure1PSID == "" || cookie.Domain == ".google.com" {
				result.Secure1PSID = cookie.Value
			}
		case "__Secure-1PSIDTS":
			if result.Secure1PSIDTS == "" || cookie.Domain == ".google.com" {
				result.Secure1PSIDTS = cookie.Value
			}
		case "NID", "SID", "HSID", "SSID":
			if result.Extra == nil {
				result.Extra = make(map[string]string)
			}
			if _, ok := result.Extra[cookie.Name]; !ok || cookie.Domain == ".google.com" {
				result.Extra[cookie.Name] = cookie.Value
			}
		}
	}

	displayName := store.Browser()
	if profile := store.Profile(); profile != "" {
		displayName = fmt.Sprintf("%s (profile: %s)", displayName, profile)
	}

	if result.Secure1PSID == "" {
		return nil, fmt.Errorf("cookie __Secure-1PSID not found in %s. Please ensure you are logged into gemini.google.com", displayName)
	}

	return &ExtractResult{
		Cookies:     result,
		BrowserName: displayName,
	}, nil
}

// ListAvailableBrowsers returns the browsers that have cookie stores on
// this machine.
func ListAvailableBrowsers() []string {
	stores := kooky.FindAllCookieStores(context.Background())

	seen := make(map[string]bool)
	var browsers []string
	for _, store := range stores {
		name := store.Browser()
		if !seen[name] {
			browsers = append(browsers, name)
			seen[name] = true
		}
		store.Close()
	}
	sort.Strings(browsers)

	return browsers
}

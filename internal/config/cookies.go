package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/dmateus/gemweb/internal/models"
)

// Cookies holds the authentication cookies. __Secure-1PSID is the session
// anchor and required; __Secure-1PSIDTS expires and gets rotated. Extra
// carries any additional cookies imported from the browser.
type Cookies struct {
	mu            sync.RWMutex      `json:"-"`
	Secure1PSID   string            `json:"__Secure-1PSID"`
	Secure1PSIDTS string            `json:"__Secure-1PSIDTS,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// CookieListItem is a cookie in browser export format
type CookieListItem struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LoadCookies loads cookies from the cookies file
func LoadCookies() (*Cookies, error) {
	cookiesPath, err := GetCookiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cookiesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no cookies found. Please import cookies first:\n  gemweb import-cookies <path-to-cookies.json>")
		}
		return nil, fmt.Errorf("failed to read cookies file: %w", err)
	}

	return ParseCookies(data)
}

// ParseCookies parses cookies from JSON data. Both the list format
// [{name, value}] produced by browser exporters and the plain dict format
// {name: value} are accepted.
func ParseCookies(data []byte) (*Cookies, error) {
	var dictFormat map[string]string
	if err := json.Unmarshal(data, &dictFormat); err == nil {
		return cookiesFromMap(dictFormat)
	}

	var listFormat []CookieListItem
	if err := json.Unmarshal(data, &listFormat); err == nil {
		m := make(map[string]string, len(listFormat))
		for _, item := range listFormat {
			m[item.Name] = item.Value
		}
		return cookiesFromMap(m)
	}

	return nil, fmt.Errorf("invalid cookies format: expected list [{name, value}] or dict {name: value}")
}

func cookiesFromMap(m map[string]string) (*Cookies, error) {
	cookies := &Cookies{}
	for name, value := range m {
		switch name {
		case "__Secure-1PSID":
			cookies.Secure1PSID = value
		case "__Secure-1PSIDTS":
			cookies.Secure1PSIDTS = value
		case "extra":
			// Reserved key in our own dict serialization
		default:
			if cookies.Extra == nil {
				cookies.Extra = make(map[string]string)
			}
			cookies.Extra[name] = value
		}
	}
	if cookies.Secure1PSID == "" {
		return nil, fmt.Errorf("missing required cookie: __Secure-1PSID")
	}
	return cookies, nil
}

// SaveCookies saves cookies to the cookies file
func SaveCookies(cookies *Cookies) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	cookiesPath := configDir + "/cookies.json"

	// Save in list format for compatibility with browser exports
	listFormat := []CookieListItem{
		{Name: "__Secure-1PSID", Value: cookies.GetSecure1PSID()},
	}
	if psidts := cookies.GetSecure1PSIDTS(); psidts != "" {
		listFormat = append(listFormat, CookieListItem{Name: "__Secure-1PSIDTS", Value: psidts})
	}
	for name, value := range cookies.Extra {
		listFormat = append(listFormat, CookieListItem{Name: name, Value: value})
	}

	data, err := json.MarshalIndent(listFormat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cookies: %w", err)
	}

	if err := os.WriteFile(cookiesPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cookies file: %w", err)
	}

	return nil
}

// ImportCookies imports cookies from a source file
func ImportCookies(sourcePath string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("source file not found: %s", sourcePath)
		}
		return fmt.Errorf("could not read file: %w", err)
	}

	cookies, err := ParseCookies(data)
	if err != nil {
		return err
	}

	return SaveCookies(cookies)
}

// ValidateCookies checks if cookies can possibly authenticate
func ValidateCookies(cookies *Cookies) error {
	if cookies == nil {
		return fmt.Errorf("cookies are nil")
	}
	if cookies.Secure1PSID == "" {
		return fmt.Errorf("missing required cookie: __Secure-1PSID")
	}
	return nil
}

// GetSecure1PSID returns the __Secure-1PSID cookie (thread-safe)
func (c *Cookies) GetSecure1PSID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Secure1PSID
}

// GetSecure1PSIDTS returns the __Secure-1PSIDTS cookie (thread-safe)
func (c *Cookies) GetSecure1PSIDTS() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Secure1PSIDTS
}

// Update1PSIDTS updates the rotating PSIDTS cookie value (thread-safe)
func (c *Cookies) Update1PSIDTS(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Secure1PSIDTS = value
}

// Map returns the full cookie set for HTTP requests (thread-safe)
func (c *Cookies) Map() models.CookieMap {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m := models.CookieMap{
		"__Secure-1PSID": c.Secure1PSID,
	}
	if c.Secure1PSIDTS != "" {
		m["__Secure-1PSIDTS"] = c.Secure1PSIDTS
	}
	for name, value := range c.Extra {
		m[name] = value
	}
	return m
}

package browser

import (
	"testing"
)

func TestParseBrowser(t *testing.T) {
	tests := []struct {
		input    string
		expected SupportedBrowser
		wantErr  bool
	}{
		{"auto", BrowserAuto, false},
		{"", BrowserAuto, false},
		{"chrome", BrowserChrome, false},
		{"Chrome", BrowserChrome, false},
		{"google-chrome", BrowserChrome, false},
		{"chromium", BrowserChromium, false},
		{"firefox", BrowserFirefox, false},
		{"mozilla", BrowserFirefox, false},
		{"edge", BrowserEdge, false},
		{"msedge", BrowserEdge, false},
		{"opera", BrowserOpera, false},
		{"invalid", "", true},
		{"safari", "", true}, // Not supported
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseBrowser(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseBrowser(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseBrowser(%q) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseBrowser(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestMatchesBrowser(t *testing.T) {
	tests := []struct {
		storeName string
		target    SupportedBrowser
		want      bool
	}{
		{"Google Chrome", BrowserChrome, true},
		{"chromium", BrowserChrome, false},
		{"chromium", BrowserChromium, true},
		{"Firefox", BrowserFirefox, true},
		{"Microsoft Edge", BrowserEdge, true},
		{"opera", BrowserOpera, true},
		{"Firefox", BrowserChrome, false},
		{"anything", BrowserAuto, false},
	}

	for _, tt := range tests {
		if got := matchesBrowser(tt.storeName, tt.target); got != tt.want {
			t.Errorf("matchesBrowser(%q, %q) = %v, want %v", tt.storeName, tt.target, got, tt.want)
		}
	}
}

func TestAllSupportedBrowsers(t *testing.T) {
	browsers := AllSupportedBrowsers()
	if len(browsers) != 5 {
		t.Errorf("AllSupportedBrowsers() has %d entries, want 5", len(browsers))
	}
	for _, b := range browsers {
		if b == BrowserAuto {
			t.Error("AllSupportedBrowsers() should not include the auto pseudo-browser")
		}
	}
}

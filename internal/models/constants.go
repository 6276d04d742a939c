// Package models contains data types and constants for the Gemini web API.
package models

// Endpoints for the Gemini web API.
const (
	EndpointInit          = "https://gemini.google.com/app"
	EndpointGenerate      = "https://gemini.google.com/_/BardChatUi/data/assistant.lamda.BardFrontendService/StreamGenerate"
	EndpointBatchExec     = "https://gemini.google.com/_/BardChatUi/data/batchexecute"
	EndpointRotateCookies = "https://accounts.google.com/RotateCookies"
)

// RPC ids for batchexecute operations.
const (
	RPCSpeech = "XqA3Ic"
)

// Model represents a selectable Gemini model and the header that requests it.
type Model struct {
	Name   string
	Header map[string]string
}

// Available models.
var (
	// ModelUnspecified lets the server pick its default (no model header).
	ModelUnspecified = Model{Name: "unspecified"}

	Model25Flash = Model{
		Name: "gemini-2.5-flash",
		Header: map[string]string{
			"x-goog-ext-525001261-jspb": `[1,null,null,null,"71c2d248d3b102ff",null,null,0,[4],null,null,2]`,
		},
	}

	Model30Pro = Model{
		Name: "gemini-3.0-pro",
		Header: map[string]string{
			"x-goog-ext-525001261-jspb": `[1,null,null,null,"e6fa609c3fa255c0",null,null,0,[4],null,null,2]`,
		},
	}

	DefaultModel = Model25Flash
)

// AllModels returns all selectable models.
func AllModels() []Model {
	return []Model{Model25Flash, Model30Pro}
}

// ModelFromName returns the Model for a name, or ModelUnspecified.
func ModelFromName(name string) Model {
	switch name {
	case "gemini-2.5-flash", "fast":
		return Model25Flash
	case "gemini-3.0-pro", "pro":
		return Model30Pro
	default:
		return ModelUnspecified
	}
}

// DefaultHeaders returns the headers sent with every Gemini request.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":              "application/x-www-form-urlencoded;charset=utf-8",
		"Host":                      "gemini.google.com",
		"Origin":                    "https://gemini.google.com",
		"Referer":                   "https://gemini.google.com/",
		"User-Agent":                "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
		"Accept-Language":           "en-US,en;q=0.9",
		"Accept-Encoding":           "gzip, deflate, br, zstd",
		"Sec-CH-UA":                 `"Google Chrome";v="133", "Chromium";v="133", "Not_A Brand";v="24"`,
		"Sec-CH-UA-Mobile":          "?0",
		"Sec-CH-UA-Platform":        `"Linux"`,
		"Sec-Fetch-Site":            "same-origin",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-User":            "?1",
		"Sec-Fetch-Dest":            "document",
		"Upgrade-Insecure-Requests": "1",
		"X-Same-Domain":             "1",
		"x-goog-ext-73010989-jspb":  "[0]",
	}
}

// RotateCookiesHeaders returns headers for the cookie rotation endpoint.
func RotateCookiesHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
	}
}

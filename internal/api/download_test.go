package api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apierrors "github.com/dmateus/gemweb/internal/errors"
	"github.com/dmateus/gemweb/internal/models"
)

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestDownloadImage(t *testing.T) {
	mock := (&MockHttpClient{}).EnqueueWithContentType(pngBytes, 200, "image/png")
	client := newTestClient(t, mock)

	dir := t.TempDir()
	path, err := client.DownloadImage(models.WebImage{
		URL:   "https://example.com/photos/cat.png",
		Title: "A cat",
	}, ImageDownloadOptions{Directory: dir})
	if err != nil {
		t.Fatalf("DownloadImage() error: %v", err)
	}
	if filepath.Base(path) != "cat.png" {
		t.Errorf("DownloadImage() path = %q, want basename %q", path, "cat.png")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != string(pngBytes) {
		t.Errorf("downloaded file content mismatch")
	}
}

func TestDownloadImageExplicitFilename(t *testing.T) {
	mock := (&MockHttpClient{}).EnqueueWithContentType(pngBytes, 200, "image/png")
	client := newTestClient(t, mock)

	dir := t.TempDir()
	path, err := client.DownloadImage(models.WebImage{URL: "https://example.com/img"}, ImageDownloadOptions{
		Directory: dir,
		Filename:  "picked.png",
	})
	if err != nil {
		t.Fatalf("DownloadImage() error: %v", err)
	}
	if filepath.Base(path) != "picked.png" {
		t.Errorf("DownloadImage() path = %q, want basename %q", path, "picked.png")
	}
}

func TestDownloadImageNotAnImage(t *testing.T) {
	mock := (&MockHttpClient{}).EnqueueWithContentType([]byte("<html>login</html>"), 200, "text/html")
	client := newTestClient(t, mock)

	_, err := client.DownloadImage(models.WebImage{URL: "https://example.com/img"}, ImageDownloadOptions{
		Directory: t.TempDir(),
	})
	if err == nil || !strings.Contains(err.Error(), "not an image") {
		t.Errorf("DownloadImage() error = %v, want content type rejection", err)
	}
}

func TestDownloadImageBadStatus(t *testing.T) {
	mock := NewMockHttpClient([]byte("not found"), 404)
	client := newTestClient(t, mock)

	_, err := client.DownloadImage(models.WebImage{URL: "https://example.com/img"}, ImageDownloadOptions{
		Directory: t.TempDir(),
	})
	if err == nil {
		t.Fatal("DownloadImage() expected an error")
	}
	if got := apierrors.GetHTTPStatus(err); got != 404 {
		t.Errorf("GetHTTPStatus() = %d, want 404", got)
	}
}

func TestDownloadGeneratedImageFullSize(t *testing.T) {
	mock := (&MockHttpClient{}).EnqueueWithContentType(pngBytes, 200, "image/png")
	client := newTestClient(t, mock)

	img := models.GeneratedImage{
		URL:     "https://lh3.googleusercontent.com/gen/abc123",
		Title:   "[Generated image 1]",
		Cookies: models.CookieMap{"__Secure-1PSID": "gen-psid"},
	}
	_, err := client.DownloadGeneratedImage(img, ImageDownloadOptions{
		Directory: t.TempDir(),
		FullSize:  true,
	})
	if err != nil {
		t.Fatalf("DownloadGeneratedImage() error: %v", err)
	}

	if len(mock.Requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(mock.Requests))
	}
	if !strings.HasSuffix(mock.Requests[0], "=s2048") {
		t.Errorf("request URL = %q, want =s2048 suffix", mock.Requests[0])
	}
	if cookie := mock.Headers[0].Get("Cookie"); !strings.Contains(cookie, "__Secure-1PSID=gen-psid") {
		t.Errorf("Cookie header = %q, want session cookie", cookie)
	}
}

func TestDownloadGeneratedImageKeepsExistingSize(t *testing.T) {
	mock := (&MockHttpClient{}).EnqueueWithContentType(pngBytes, 200, "image/png")
	client := newTestClient(t, mock)

	img := models.GeneratedImage{URL: "https://lh3.googleusercontent.com/gen/abc123=s512"}
	_, err := client.DownloadGeneratedImage(img, ImageDownloadOptions{
		Directory: t.TempDir(),
		FullSize:  true,
	})
	if err != nil {
		t.Fatalf("DownloadGeneratedImage() error: %v", err)
	}
	if strings.Contains(mock.Requests[0], "=s2048") {
		t.Errorf("request URL = %q, existing size suffix should win", mock.Requests[0])
	}
}

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		title       string
		contentType string
		want        string
	}{
		{
			name:        "url segment with extension",
			url:         "https://example.com/a/b/photo.jpg?width=300",
			title:       "ignored",
			contentType: "image/jpeg",
			want:        "photo.jpg",
		},
		{
			name:        "title with extension from content type",
			url:         "https://example.com/asset",
			title:       "sunset over lisbon",
			contentType: "image/png",
			want:        "sunset over lisbon.png",
		},
		{
			name:        "title sanitized",
			url:         "https://example.com/asset",
			title:       `what/is:this?`,
			contentType: "image/webp",
			want:        "what_is_this_.webp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := generateFilename(tt.url, tt.title, tt.contentType); got != tt.want {
				t.Errorf("generateFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateFilenameTruncatesLongTitles(t *testing.T) {
	title := strings.Repeat("a", 80)
	got := generateFilename("https://example.com/asset", title, "image/gif")
	if got != strings.Repeat("a", 50)+".gif" {
		t.Errorf("generateFilename() = %q, want 50 char name plus extension", got)
	}
}

func TestGenerateFilenameFallsBackToTimestamp(t *testing.T) {
	got := generateFilename("https://example.com/asset", "", "image/jpeg")
	if !strings.HasPrefix(got, "image_") || !strings.HasSuffix(got, ".jpg") {
		t.Errorf("generateFilename() = %q, want image_<timestamp>.jpg", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a<b>c`, "a_b_c"},
		{`normal-name.png`, "normal-name.png"},
		{`  padded  `, "padded"},
		{"tab\there", "tab_here"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDownloadAllImagesPartialFailure(t *testing.T) {
	mock := (&MockHttpClient{}).
		Enqueue([]byte("gone"), 404).
		EnqueueWithContentType(pngBytes, 200, "image/png")
	client := newTestClient(t, mock)

	output := &models.ModelOutput{
		Metadata: []string{"c_1", "r_1", ""},
		Candidates: []models.Candidate{{
			RCID: "rc_1",
			WebImages: []models.WebImage{
				{URL: "https://example.com/broken.png"},
				{URL: "https://example.com/works.png"},
			},
		}},
	}

	paths, err := client.DownloadAllImages(output, ImageDownloadOptions{Directory: t.TempDir()})
	if err != nil {
		t.Fatalf("DownloadAllImages() error: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("DownloadAllImages() returned %d paths, want 1", len(paths))
	}
}

func TestDownloadAllImagesAllFail(t *testing.T) {
	mock := NewMockHttpClient([]byte("gone"), 500)
	client := newTestClient(t, mock)

	output := &models.ModelOutput{
		Candidates: []models.Candidate{{
			WebImages: []models.WebImage{{URL: "https://example.com/broken.png"}},
		}},
	}

	paths, err := client.DownloadAllImages(output, ImageDownloadOptions{Directory: t.TempDir()})
	if err == nil {
		t.Fatal("DownloadAllImages() expected an error when nothing downloaded")
	}
	if paths != nil {
		t.Errorf("DownloadAllImages() paths = %v, want nil", paths)
	}
}

func TestDownloadAllImagesNilOutput(t *testing.T) {
	client := newTestClient(t, &MockHttpClient{})

	paths, err := client.DownloadAllImages(nil, ImageDownloadOptions{Directory: t.TempDir()})
	if err != nil || paths != nil {
		t.Errorf("DownloadAllImages(nil) = (%v, %v), want (nil, nil)", paths, err)
	}
}

package api

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"

	apierrors "github.com/dmateus/gemweb/internal/errors"
	"github.com/dmateus/gemweb/internal/models"
)

// ImageDownloadOptions configures image download behavior
type ImageDownloadOptions struct {
	// Directory is the destination directory (default: ~/.gemweb/images)
	Directory string
	// Filename is the output filename (auto-generated if empty)
	Filename string
	// FullSize downloads the image at maximum resolution (only for GeneratedImage)
	FullSize bool
}

// DefaultDownloadOptions returns the default download options
func DefaultDownloadOptions() ImageDownloadOptions {
	homeDir, _ := os.UserHomeDir()
	return ImageDownloadOptions{
		Directory: filepath.Join(homeDir, ".gemweb", "images"),
		FullSize:  true,
	}
}

// DownloadImage downloads a WebImage to disk
func (c *Client) DownloadImage(img models.WebImage, opts ImageDownloadOptions) (string, error) {
	return c.downloadImageURL(img.URL, img.Title, nil, opts)
}

// DownloadGeneratedImage downloads a GeneratedImage to disk. The asset host
// only serves the image under the session cookies it was generated with, so
// the cookies captured on the image are sent along. If opts.FullSize is true
// the URL gets an =s2048 suffix for maximum resolution.
func (c *Client) DownloadGeneratedImage(img models.GeneratedImage, opts ImageDownloadOptions) (string, error) {
	url := img.URL
	if opts.FullSize && !strings.Contains(url, "=s") {
		url += "=s2048"
	}
	return c.downloadImageURL(url, img.Title, img.Cookies, opts)
}

func (c *Client) downloadImageURL(url, title string, cookies models.CookieMap, opts ImageDownloadOptions) (string, error) {
	if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	req, err := fhttp.NewRequest(fhttp.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for name, value := range cookies {
		req.AddCookie(&fhttp.Cookie{Name: name, Value: value})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("download image", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return "", apierrors.NewAPIError(resp.StatusCode, url, "image download failed")
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "image") {
		return "", fmt.Errorf("response is not an image: %s", contentType)
	}

	filename := opts.Filename
	if filename == "" {
		filename = generateFilename(url, title, contentType)
	}
	destPath := filepath.Join(opts.Directory, filename)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("read image", url, err)
	}
	if err := os.WriteFile(destPath, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	absPath, err := filepath.Abs(destPath)
	if err != nil {
		return destPath, nil
	}
	return absPath, nil
}

// generateFilename creates a filename based on URL, title, and content type
func generateFilename(url, title, contentType string) string {
	ext := ".jpg"
	switch {
	case strings.Contains(contentType, "png"):
		ext = ".png"
	case strings.Contains(contentType, "gif"):
		ext = ".gif"
	case strings.Contains(contentType, "webp"):
		ext = ".webp"
	}

	// Prefer a filename-looking final URL segment
	urlParts := strings.Split(strings.Split(url, "?")[0], "/")
	if len(urlParts) > 0 {
		lastPart := urlParts[len(urlParts)-1]
		if matched, _ := regexp.MatchString(`\.\w+$`, lastPart); matched {
			return sanitizeFilename(lastPart)
		}
	}

	if title != "" {
		safe := sanitizeFilename(title)
		if len(safe) > 50 {
			safe = safe[:50]
		}
		return safe + ext
	}

	return fmt.Sprintf("image_%s%s", time.Now().Format("20060102_150405"), ext)
}

// sanitizeFilename removes characters not allowed in filenames
func sanitizeFilename(name string) string {
	reg := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	return strings.TrimSpace(reg.ReplaceAllString(name, "_"))
}

// DownloadAllImages downloads every image of the chosen candidate, returning
// the paths that succeeded. Partial failure reports the last error only when
// nothing downloaded.
func (c *Client) DownloadAllImages(output *models.ModelOutput, opts ImageDownloadOptions) ([]string, error) {
	if output == nil {
		return nil, nil
	}
	candidate := output.ChosenCandidate()
	if candidate == nil {
		return nil, nil
	}

	var paths []string
	var lastError error

	for i, img := range candidate.WebImages {
		path, err := c.DownloadImage(img, opts)
		if err != nil {
			lastError = err
			continue
		}
		paths = append(paths, path)

		// Small delay between downloads to avoid rate limiting
		if i < len(candidate.WebImages)-1 {
			time.Sleep(100 * time.Millisecond)
		}
	}

	for i, img := range candidate.GeneratedImages {
		path, err := c.DownloadGeneratedImage(img, opts)
		if err != nil {
			lastError = err
			continue
		}
		paths = append(paths, path)

		if i < len(candidate.GeneratedImages)-1 {
			time.Sleep(100 * time.Millisecond)
		}
	}

	if len(paths) == 0 && lastError != nil {
		return nil, lastError
	}
	return paths, nil
}

// Package images serves product pictures for the shop gallery. The provider
// is picked once at configuration time: with an Unsplash key the register
// fetches and caches real photos, without one it draws SVG placeholders.
// Neither variant ever returns an error to the handler.
package images

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Provider returns image bytes and their content type for a product.
type Provider interface {
	Get(name, barcode string) ([]byte, string)
}

// New selects the provider variant from configuration.
func New(accessKey, cacheDir string, log *slog.Logger) Provider {
	if accessKey == "" {
		return Placeholder{}
	}
	return &Unsplash{
		AccessKey: accessKey,
		CacheDir:  cacheDir,
		Client:    &http.Client{Timeout: 10 * time.Second},
		Log:       log,
	}
}

// Placeholder always renders a local SVG with the product name, so the shop
// page works with no network and no API key.
type Placeholder struct{}

func (Placeholder) Get(name, _ string) ([]byte, string) {
	return svgPlaceholder(name), "image/svg+xml"
}

func svgPlaceholder(text string) []byte {
	if text == "" {
		text = "Product"
	}
	svg := fmt.Sprintf(`<svg xmlns='http://www.w3.org/2000/svg' width='400' height='300'>
  <defs>
    <linearGradient id='g' x1='0' x2='1' y1='0' y2='1'>
      <stop offset='0%%' stop-color='#667eea'/>
      <stop offset='100%%' stop-color='#764ba2'/>
    </linearGradient>
  </defs>
  <rect width='100%%' height='100%%' fill='url(#g)'/>
  <text x='50%%' y='50%%' dominant-baseline='middle' text-anchor='middle'
        font-family='Arial, Helvetica, sans-serif' font-size='24' fill='#ffffff'>%s</text>
</svg>`, html.EscapeString(text))
	return []byte(svg)
}

// Unsplash fetches a photo matching the product name, caches it on disk by
// barcode, and falls back to the placeholder on any failure.
type Unsplash struct {
	AccessKey string
	CacheDir  string
	Client    *http.Client
	Log       *slog.Logger
}

func (u *Unsplash) Get(name, barcode string) ([]byte, string) {
	if name == "" {
		name = "Product"
	}
	cachePath := filepath.Join(u.CacheDir, barcode+".jpg")
	if b, err := os.ReadFile(cachePath); err == nil {
		return b, "image/jpeg"
	}

	b, err := u.fetch(name)
	if err != nil {
		u.Log.Warn("unsplash fetch failed, serving placeholder", "product", name, "error", err)
		return svgPlaceholder(name), "image/svg+xml"
	}
	if err := os.MkdirAll(u.CacheDir, 0o755); err == nil {
		if err := os.WriteFile(cachePath, b, 0o644); err != nil {
			u.Log.Warn("failed to cache product image", "barcode", barcode, "error", err)
		}
	}
	return b, "image/jpeg"
}

func (u *Unsplash) fetch(name string) ([]byte, error) {
	apiURL := fmt.Sprintf(
		"https://api.unsplash.com/search/photos?query=%s&per_page=1&content_filter=high&orientation=landscape&client_id=%s",
		url.QueryEscape(name), u.AccessKey)
	resp, err := u.Client.Get(apiURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash search status %d", resp.StatusCode)
	}
	var payload struct {
		Results []struct {
			URLs struct {
				Small   string `json:"small"`
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("no results for %q", name)
	}
	imageURL := payload.Results[0].URLs.Small
	if imageURL == "" {
		imageURL = payload.Results[0].URLs.Regular
	}
	if imageURL == "" {
		return nil, fmt.Errorf("no image url for %q", name)
	}
	img, err := u.Client.Get(imageURL)
	if err != nil {
		return nil, err
	}
	defer img.Body.Close()
	if img.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download status %d", img.StatusCode)
	}
	return io.ReadAll(img.Body)
}

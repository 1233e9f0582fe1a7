package images

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSelectsVariant(t *testing.T) {
	if _, ok := New("", "cache", testLogger()).(Placeholder); !ok {
		t.Error("expected placeholder provider without an access key")
	}
	if _, ok := New("key", "cache", testLogger()).(*Unsplash); !ok {
		t.Error("expected unsplash provider with an access key")
	}
}

func TestPlaceholderEscapesName(t *testing.T) {
	body, contentType := Placeholder{}.Get("<script>Milk</script>", "M1")
	if contentType != "image/svg+xml" {
		t.Fatalf("content type = %q", contentType)
	}
	svg := string(body)
	if strings.Contains(svg, "<script>") {
		t.Fatal("product name must be escaped")
	}
	if !strings.Contains(svg, "Milk") {
		t.Fatal("product name missing from placeholder")
	}
}

func TestPlaceholderEmptyNameFallsBack(t *testing.T) {
	body, _ := Placeholder{}.Get("", "X")
	if !strings.Contains(string(body), "Product") {
		t.Fatal("expected generic label for empty name")
	}
}

func TestUnsplashServesCachedImageWithoutNetwork(t *testing.T) {
	dir := t.TempDir()
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0}
	if err := os.WriteFile(filepath.Join(dir, "A1.jpg"), jpeg, 0o644); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	u := &Unsplash{
		AccessKey: "key",
		CacheDir:  dir,
		// a client that cannot reach anything proves the cache path is hit
		Client: &http.Client{Timeout: time.Nanosecond},
		Log:    testLogger(),
	}
	body, contentType := u.Get("Apple", "A1")
	if contentType != "image/jpeg" {
		t.Fatalf("content type = %q", contentType)
	}
	if string(body) != string(jpeg) {
		t.Fatal("expected cached bytes")
	}
}

func TestUnsplashFailureFallsBackToPlaceholder(t *testing.T) {
	u := &Unsplash{
		AccessKey: "key",
		CacheDir:  t.TempDir(),
		Client:    &http.Client{Timeout: time.Nanosecond},
		Log:       testLogger(),
	}
	body, contentType := u.Get("Apple", "A1")
	if contentType != "image/svg+xml" {
		t.Fatalf("content type = %q, want svg fallback", contentType)
	}
	if !strings.Contains(string(body), "Apple") {
		t.Fatal("fallback placeholder missing product name")
	}
}

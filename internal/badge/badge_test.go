package badge

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestProviderUsesAssetFile(t *testing.T) {
	dir := t.TempDir()
	gif := []byte("GIF89a-test")
	if err := os.WriteFile(filepath.Join(dir, "banned.gif"), gif, 0o600); err != nil {
		t.Fatalf("write asset: %v", err)
	}

	img, err := NewProvider(dir, zap.NewNop()).For(true)
	if err != nil {
		t.Fatalf("badge: %v", err)
	}
	if img.Name != "banned.gif" || img.ContentType != "image/gif" {
		t.Fatalf("unexpected badge %s (%s)", img.Name, img.ContentType)
	}
	if !bytes.Equal(img.Data, gif) {
		t.Fatalf("expected asset bytes to be passed through")
	}
	if img.AttachmentURL() != "attachment://banned.gif" {
		t.Fatalf("unexpected attachment url %q", img.AttachmentURL())
	}
}

func TestProviderRendersFallback(t *testing.T) {
	img, err := NewProvider(t.TempDir(), zap.NewNop()).For(false)
	if err != nil {
		t.Fatalf("badge: %v", err)
	}
	if img.Name != "notbanned.png" || img.ContentType != "image/png" {
		t.Fatalf("unexpected badge %s (%s)", img.Name, img.ContentType)
	}

	decoded, err := png.Decode(bytes.NewReader(img.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		t.Fatalf("unexpected size %v", bounds)
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if r != 0 || b != 0 || g == 0 {
		t.Fatalf("expected green background, got %d %d %d", r, g, b)
	}
}

func TestRenderedBannedPanelIsRed(t *testing.T) {
	img, err := NewProvider(t.TempDir(), zap.NewNop()).For(true)
	if err != nil {
		t.Fatalf("badge: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(img.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r == 0 || g != 0 || b != 0 {
		t.Fatalf("expected red background, got %d %d %d", r, g, b)
	}

	file := img.File()
	if file.Name != "banned.png" || file.Reader == nil {
		t.Fatalf("unexpected discord file %+v", file)
	}
}

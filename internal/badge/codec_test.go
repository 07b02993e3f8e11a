package badge

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "badge.png")
	if err := WriteFile(path, []byte("png")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "png" {
		t.Fatalf("unexpected file: %q %v", got, err)
	}
}

func TestWriteFileWrapsEncodeError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := WriteFile(filepath.Join(blocker, "badge.png"), []byte("png")); !errors.Is(err, ErrEncode) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSavePNGMatchesEncodePNG(t *testing.T) {
	img := solid(4, 4, orange)
	var want bytes.Buffer
	if err := EncodePNG(&want, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out", "badge.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(got, want.Bytes()) {
		t.Fatalf("saved bytes differ from encoded png: %v", err)
	}
}

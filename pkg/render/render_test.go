package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestPNG(t *testing.T) {
	dot := []byte(`digraph G { rankdir=LR; "app" -> "libc_so_6" [label="12 called"]; }`)

	img, err := PNG(context.Background(), dot)
	if err != nil {
		t.Fatalf("PNG failed: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Errorf("output does not start with PNG magic, got % x", img[:min(len(img), 4)])
	}
}

func TestPNGInvalidDOT(t *testing.T) {
	if _, err := PNG(context.Background(), []byte("digraph {")); err == nil {
		t.Error("PNG should fail on an unterminated document")
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.png")
	dot := []byte(`digraph G { "a" -> "b"; }`)

	if err := File(context.Background(), dot, path); err != nil {
		t.Fatalf("File failed: %v", err)
	}
	img, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("written file is not a PNG")
	}
}

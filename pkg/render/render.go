// Package render rasterizes Graphviz descriptions to PNG images.
//
// Rendering runs through the embedded goccy/go-graphviz engine, so no dot
// binary needs to be installed. Rasterization happens after the description
// file is complete; a rendering failure never invalidates it.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"
)

// PNG lays out and rasterizes a DOT document, returning the encoded image.
func PNG(ctx context.Context, dot []byte) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// File renders dot to a PNG image at path, overwriting any existing file.
func File(ctx context.Context, dot []byte, path string) error {
	img, err := PNG(ctx, dot)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

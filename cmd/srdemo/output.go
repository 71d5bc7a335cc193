package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

type imageFormat string

const (
	formatPNG imageFormat = "png"
	formatBMP imageFormat = "bmp"
)

// formatOf returns the explicit format, or the one implied by the output
// file extension.
func formatOf(explicit, out string) (imageFormat, error) {
	f := strings.ToLower(explicit)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	}
	switch imageFormat(f) {
	case formatPNG, formatBMP:
		return imageFormat(f), nil
	case "":
		return formatPNG, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", f)
	}
}

// frameName expands the output pattern for frame i. A single frame uses the
// pattern as is unless it contains a verb. Multiple frames without a verb
// get a _NNN suffix before the extension.
func frameName(pattern string, i, frames int) string {
	if strings.Contains(pattern, "%") {
		return fmt.Sprintf(pattern, i)
	}
	if frames == 1 {
		return pattern
	}
	ext := filepath.Ext(pattern)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(pattern, ext), i, ext)
}

// upscale enlarges img by an integer factor with nearest-neighbour
// sampling, keeping pixels crisp.
func upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func encode(w io.Writer, img image.Image, format imageFormat) error {
	switch format {
	case formatBMP:
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

func writeImage(path string, img image.Image, format imageFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := encode(w, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

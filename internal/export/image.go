package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/terragen/internal/terrain"
)

// HeightImage renders the grid heights as a grayscale image, one pixel per
// vertex. Column is x, row is y. Heights are scaled so the mesh minimum is
// black and the maximum is white; a flat mesh is mid-gray.
func HeightImage(m *terrain.Mesh) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, m.Width+1, m.Height+1))

	lo, hi := m.Bounds.Min[1], m.Bounds.Max[1]
	span := hi - lo

	for x := 0; x <= m.Width; x++ {
		for y := 0; y <= m.Height; y++ {
			v := uint16(0x8000)
			if span > 0 {
				h := (m.Positions[m.Index(x, y)][1] - lo) / span
				v = uint16(h*0xffff + 0.5)
			}
			img.SetGray16(x, y, color.Gray16{Y: v})
		}
	}
	return img
}

// WriteHeightImage encodes the height image as "png" or "bmp".
func WriteHeightImage(m *terrain.Mesh, w io.Writer, format string) error {
	img := HeightImage(m)

	var err error
	switch strings.ToLower(format) {
	case "png":
		err = png.Encode(w, img)
	case "bmp":
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("export image: unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("export image: %w", err)
	}
	return nil
}

// WriteHeightImageFile writes the height image, choosing the format from the extension.
func WriteHeightImageFile(m *terrain.Mesh, path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteHeightImage(m, f, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

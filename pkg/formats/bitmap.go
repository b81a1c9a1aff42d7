package formats

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"

	"github.com/Faultbox/skyroute/pkg/grid"
)

// Bitmap errors.
var (
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrEmptyImage       = errors.New("image has no pixels")
)

// Palette16 is the standard 16-color palette semantic maps are drawn with.
// Index 9 is red, 6 teal, 0 black and 15 white.
var Palette16 = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0x80, 0x00, 0x00, 0xff},
	color.RGBA{0x00, 0x80, 0x00, 0xff},
	color.RGBA{0x80, 0x80, 0x00, 0xff},
	color.RGBA{0x00, 0x00, 0x80, 0xff},
	color.RGBA{0x80, 0x00, 0x80, 0xff},
	color.RGBA{0x00, 0x80, 0x80, 0xff},
	color.RGBA{0xc0, 0xc0, 0xc0, 0xff},
	color.RGBA{0x80, 0x80, 0x80, 0xff},
	color.RGBA{0xff, 0x00, 0x00, 0xff},
	color.RGBA{0x00, 0xff, 0x00, 0xff},
	color.RGBA{0xff, 0xff, 0x00, 0xff},
	color.RGBA{0x00, 0x00, 0xff, 0xff},
	color.RGBA{0xff, 0x00, 0xff, 0xff},
	color.RGBA{0x00, 0xff, 0xff, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
}

// DecodeBitmap decodes a BMP, PNG or GIF into a grid of color indices.
// Paletted images keep their own indices; other images are mapped to the
// nearest Palette16 entry.
func DecodeBitmap(r io.Reader) (*grid.Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedImage
		}
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return FromImage(img)
}

// DecodeBitmapFile decodes a bitmap from disk.
func DecodeBitmapFile(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bitmap: %w", err)
	}
	defer f.Close()
	return DecodeBitmap(f)
}

// FromImage converts a decoded image to a grid of color indices.
func FromImage(img image.Image) (*grid.Grid, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}

	g := grid.New(b.Dx(), b.Dy(), 0)
	paletted, isPaletted := img.(*image.Paletted)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			px, py := b.Min.X+x, b.Min.Y+y
			if isPaletted {
				g.Set(x, y, int(paletted.ColorIndexAt(px, py)))
			} else {
				g.Set(x, y, Palette16.Index(img.At(px, py)))
			}
		}
	}
	return g, nil
}

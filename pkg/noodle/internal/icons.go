package internal

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed icons/folder.svg
var folderSVG []byte

//go:embed icons/file.svg
var fileSVG []byte

// IconSize is the edge length of the generic browser icons.
const IconSize = 64

// FolderIcon rasterises the folder icon tinted with c.
func FolderIcon(c Color) ([]uint32, error) {
	return RasterizeSVG(tint(folderSVG, c), IconSize, IconSize)
}

// FileIcon rasterises the generic file icon tinted with c.
func FileIcon(c Color) ([]uint32, error) {
	return RasterizeSVG(tint(fileSVG, c), IconSize, IconSize)
}

func tint(svg []byte, c Color) []byte {
	hex := fmt.Sprintf("#%06X", ColorToHex(c))
	return bytes.ReplaceAll(svg, []byte("currentColor"), []byte(hex))
}

// RasterizeSVG renders svgData into width*height pixels in Color layout.
func RasterizeSVG(svgData []byte, width, height int) ([]uint32, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	if width <= 0 || height <= 0 {
		width = int(icon.ViewBox.W)
		height = int(icon.ViewBox.H)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	icon.SetTarget(0, 0, float64(width), float64(height))
	icon.Draw(raster, 1.0)

	return rgbaToPixels(img), nil
}

// rgbaToPixels un-premultiplies img into straight-alpha Colors.
func rgbaToPixels(img *image.RGBA) []uint32 {
	bounds := img.Bounds()
	pixels := make([]uint32, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[(y-bounds.Min.Y)*img.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, a := row[4*x], row[4*x+1], row[4*x+2], row[4*x+3]
			if a != 0 && a != 0xFF {
				r = uint8(uint32(r) * 0xFF / uint32(a))
				g = uint8(uint32(g) * 0xFF / uint32(a))
				b = uint8(uint32(b) * 0xFF / uint32(a))
			}
			pixels = append(pixels, uint32(RGBA(r, g, b, a)))
		}
	}
	return pixels
}

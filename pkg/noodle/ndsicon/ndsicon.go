// Package ndsicon decodes the 32x32 banner icon stored in a DS cartridge image.
package ndsicon

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	Size = 32

	bannerOffsetField = 0x68
	pixelDataOffset   = 0x20
	paletteOffset     = 0x220
	pixelDataSize     = Size * Size / 2
	paletteEntries    = 16
)

// Decode reads the banner icon from a ROM image. Pixels are packed as
// 0xAABBGGRR; palette index 0 decodes to opaque white.
func Decode(r io.ReaderAt) ([]uint32, error) {
	var field [4]byte
	if _, err := r.ReadAt(field[:], bannerOffsetField); err != nil {
		return nil, fmt.Errorf("failed to read banner offset: %w", err)
	}
	banner := int64(binary.LittleEndian.Uint32(field[:]))

	data := make([]byte, pixelDataSize)
	if _, err := r.ReadAt(data, banner+pixelDataOffset); err != nil {
		return nil, fmt.Errorf("failed to read icon pixels at %#x: %w", banner+pixelDataOffset, err)
	}

	raw := make([]byte, paletteEntries*2)
	if _, err := r.ReadAt(raw, banner+paletteOffset); err != nil {
		return nil, fmt.Errorf("failed to read icon palette at %#x: %w", banner+paletteOffset, err)
	}
	var palette [paletteEntries]uint16
	for i := range palette {
		palette[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}

	return untile(tilePixels(data, palette)), nil
}

// DecodeFile decodes the icon of the ROM at path. A ROM that cannot be read
// yields a fully transparent icon and the error.
func DecodeFile(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return make([]uint32, Size*Size), err
	}
	defer f.Close()

	icon, err := Decode(f)
	if err != nil {
		return make([]uint32, Size*Size), err
	}
	return icon, nil
}

// ExpandColor converts a BGR555 colour to 0xAABBGGRR.
func ExpandColor(c uint16) uint32 {
	r := uint32(c&0x1F) * 255 / 31
	g := uint32((c>>5)&0x1F) * 255 / 31
	b := uint32((c>>10)&0x1F) * 255 / 31
	return 0xFF<<24 | b<<16 | g<<8 | r
}

func tilePixels(data []byte, palette [paletteEntries]uint16) []uint32 {
	tiles := make([]uint32, Size*Size)
	for i := range tiles {
		index := data[i/2] & 0x0F
		if i&1 != 0 {
			index = data[i/2] >> 4
		}
		if index == 0 {
			tiles[i] = 0xFFFFFFFF
		} else {
			tiles[i] = ExpandColor(palette[index])
		}
	}
	return tiles
}

// untile rearranges 4x4 tiles of 8x8 pixels into row-major order.
func untile(tiles []uint32) []uint32 {
	icon := make([]uint32, Size*Size)
	for i := 0; i < 4; i++ {
		for j := 0; j < 8; j++ {
			for k := 0; k < 4; k++ {
				copy(icon[256*i+32*j+8*k:][:8], tiles[256*i+8*j+64*k:][:8])
			}
		}
	}
	return icon
}

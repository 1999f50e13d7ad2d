package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
)

// Status colours.
var (
	Green  = color.RGBA{R: 0x2e, G: 0xb8, B: 0x4b, A: 0xff}
	Yellow = color.RGBA{R: 0xf2, G: 0xc0, B: 0x1e, A: 0xff}
	Grey   = color.RGBA{R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff}
)

const iconSize = 16

// StatusIcon draws a filled dot in c. Windows gets an ICO, other platforms
// a PNG.
func StatusIcon(c color.RGBA) []byte {
	img := dot(c)
	if runtime.GOOS == "windows" {
		return encodeICO(img)
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func dot(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	const r = 6.5
	const center = (iconSize - 1) / 2.0
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx, dy := float64(x)-center, float64(y)-center
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

// encodeICO wraps a 32-bit BGRA bitmap in a single-image ICO container.
func encodeICO(img *image.RGBA) []byte {
	const (
		headerSize = 6
		dirSize    = 16
		dibSize    = 40
		pixelBytes = iconSize * iconSize * 4
		maskStride = 4 // 16 bits padded to 32
		maskBytes  = iconSize * maskStride
	)
	imageSize := dibSize + pixelBytes + maskBytes

	var buf bytes.Buffer
	le := binary.LittleEndian
	w := func(v any) { binary.Write(&buf, le, v) }

	// ICONDIR
	w(uint16(0))
	w(uint16(1))
	w(uint16(1))
	// ICONDIRENTRY
	w(uint8(iconSize))
	w(uint8(iconSize))
	w(uint8(0))
	w(uint8(0))
	w(uint16(1))
	w(uint16(32))
	w(uint32(imageSize))
	w(uint32(headerSize + dirSize))
	// BITMAPINFOHEADER; height is doubled to include the AND mask
	w(uint32(dibSize))
	w(int32(iconSize))
	w(int32(iconSize * 2))
	w(uint16(1))
	w(uint16(32))
	w(uint32(0))
	w(uint32(pixelBytes + maskBytes))
	w(int32(0))
	w(int32(0))
	w(uint32(0))
	w(uint32(0))

	// Pixels, bottom-up BGRA
	for y := iconSize - 1; y >= 0; y-- {
		for x := 0; x < iconSize; x++ {
			p := img.RGBAAt(x, y)
			buf.Write([]byte{p.B, p.G, p.R, p.A})
		}
	}
	// AND mask: all zero, alpha channel decides transparency
	buf.Write(make([]byte, maskBytes))

	return buf.Bytes()
}

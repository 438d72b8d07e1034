package render

import (
	"bytes"
	"fmt"
	"image"

	"golang.org/x/image/bmp"
)

// bmpFileHeaderSize is the BITMAPFILEHEADER that precedes the info header in
// a .bmp file. Clipboard DIBs start at the info header.
const bmpFileHeaderSize = 14

// EncodeBMP encodes img as a complete .bmp file.
func EncodeBMP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode bmp: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeDIB encodes img as a packed device-independent bitmap: a BMP without
// its file header, the layout clipboard DIB formats expect.
func EncodeDIB(img image.Image) ([]byte, error) {
	data, err := EncodeBMP(img)
	if err != nil {
		return nil, err
	}
	if len(data) < bmpFileHeaderSize {
		return nil, fmt.Errorf("encode dib: short bmp (%d bytes)", len(data))
	}
	return data[bmpFileHeaderSize:], nil
}

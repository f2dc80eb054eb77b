// Package pixelate obfuscates cover art by downsampling to a fraction
// of the linear resolution and scaling back up, producing the blocky
// look of the pixelation guessing game.
package pixelate

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
)

const DefaultIntensity = 0.1

var ErrDecode = errors.New("pixelate: decode source image")

// Pixelate decodes src, pixelates it at the given intensity (the
// fraction of linear resolution kept, e.g. 0.1 keeps one pixel in
// ten per axis) and returns the result PNG-encoded. Deterministic for
// a given source and intensity.
func Pixelate(src []byte, intensity float64) ([]byte, error) {
	if intensity <= 0 || intensity > 1 {
		return nil, fmt.Errorf("pixelate: intensity %v out of range (0, 1]", intensity)
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	blockW := int(float64(w) * intensity)
	blockH := int(float64(h) * intensity)
	if blockW < 1 {
		blockW = 1
	}
	if blockH < 1 {
		blockH = 1
	}

	small := scaleNearest(img, blockW, blockH)
	out := scaleNearest(small, w, h)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("pixelate: encode: %w", err)
	}

	return buf.Bytes(), nil
}

func scaleNearest(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()

	for y := 0; y < h; y++ {
		sy := sb.Min.Y + y*sh/h
		for x := 0; x < w; x++ {
			sx := sb.Min.X + x*sw/w
			dst.Set(x, y, src.At(sx, sy))
		}
	}

	return dst
}

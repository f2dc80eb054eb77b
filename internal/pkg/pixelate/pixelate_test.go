package pixelate

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8(x ^ y), A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestPixelateKeepsDimensions(t *testing.T) {
	src := testImage(t, 120, 80)

	out, err := Pixelate(src, DefaultIntensity)
	if err != nil {
		t.Fatalf("Pixelate: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 80 {
		t.Errorf("output size %dx%d, want 120x80", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPixelateDeterministic(t *testing.T) {
	src := testImage(t, 64, 64)

	a, err := Pixelate(src, 0.1)
	if err != nil {
		t.Fatalf("Pixelate: %v", err)
	}
	b, err := Pixelate(src, 0.1)
	if err != nil {
		t.Fatalf("Pixelate: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("same source and intensity produced different output")
	}
}

func TestPixelateChangesImage(t *testing.T) {
	src := testImage(t, 64, 64)

	out, err := Pixelate(src, 0.1)
	if err != nil {
		t.Fatalf("Pixelate: %v", err)
	}

	orig, _, _ := image.Decode(bytes.NewReader(src))
	blurred, _, _ := image.Decode(bytes.NewReader(out))

	diff := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if orig.At(x, y) != blurred.At(x, y) {
				diff++
			}
		}
	}
	if diff == 0 {
		t.Error("pixelated image is identical to the source")
	}
}

func TestPixelateBadInput(t *testing.T) {
	if _, err := Pixelate([]byte("not an image"), 0.1); !errors.Is(err, ErrDecode) {
		t.Errorf("want ErrDecode, got %v", err)
	}

	src := testImage(t, 10, 10)
	if _, err := Pixelate(src, 0); err == nil {
		t.Error("intensity 0 accepted")
	}
	if _, err := Pixelate(src, 1.5); err == nil {
		t.Error("intensity 1.5 accepted")
	}
}

func TestPixelateTinyImage(t *testing.T) {
	src := testImage(t, 3, 3)

	// intensity far below one pixel still has to produce output
	if _, err := Pixelate(src, 0.1); err != nil {
		t.Fatalf("Pixelate tiny: %v", err)
	}
}

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	apperrors "go-image-describer/internal/errors"
	"go-image-describer/pkg/models"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_OpaquePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 320, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 320; x++ {
			src.Set(x, y, color.RGBA{uint8(x), uint8(y), 100, 255})
		}
	}

	decoded, err := Decode(encodePNG(t, src), "photo.png")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	d := decoded.Descriptor
	if d.Width != 320 || d.Height != 200 {
		t.Errorf("Expected 320x200, got %dx%d", d.Width, d.Height)
	}
	if d.Format != models.FormatPNG {
		t.Errorf("Expected PNG format, got %s", d.Format)
	}
	// Opaque truecolor PNG carries no alpha channel
	if d.ColorMode != models.ColorModeRGB {
		t.Errorf("Expected RGB color mode, got %s", d.ColorMode)
	}
	if d.OriginalFileName != "photo.png" {
		t.Errorf("Expected original filename to be preserved, got %q", d.OriginalFileName)
	}
	if decoded.MIMEType != "image/png" {
		t.Errorf("Expected image/png MIME type, got %q", decoded.MIMEType)
	}
}

func TestDecode_TransparentPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	src.Set(0, 0, color.NRGBA{255, 0, 0, 128})

	decoded, err := Decode(encodePNG(t, src), "logo.png")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Descriptor.ColorMode != models.ColorModeRGBA {
		t.Errorf("Expected RGBA color mode for alpha PNG, got %s", decoded.Descriptor.ColorMode)
	}
}

func TestDecode_GrayscalePNG(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 8, 8))

	decoded, err := Decode(encodePNG(t, src), "scan.png")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Descriptor.ColorMode != models.ColorModeGrayscale {
		t.Errorf("Expected Grayscale color mode, got %s", decoded.Descriptor.ColorMode)
	}
}

func TestDecode_JPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 48))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("Failed to encode test JPEG: %v", err)
	}

	decoded, err := Decode(buf.Bytes(), "shot.jpg")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Descriptor.Format != models.FormatJPEG {
		t.Errorf("Expected JPEG format, got %s", decoded.Descriptor.Format)
	}
	if decoded.Descriptor.ColorMode != models.ColorModeRGB {
		t.Errorf("Expected RGB color mode for JPEG, got %s", decoded.Descriptor.ColorMode)
	}
	if decoded.MIMEType != "image/jpeg" {
		t.Errorf("Expected image/jpeg MIME type, got %q", decoded.MIMEType)
	}
}

func TestDecode_InvalidBytes(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"), "note.txt")
	if err == nil {
		t.Fatal("Expected decode error for non-image bytes")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeImageDecode) {
		t.Errorf("Expected image_decode error type, got %v", err)
	}
}

func TestEncodePNG_RoundTrips(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 30))
	decoded, err := Decode(encodePNG(t, src), "tiny.png")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	encoded, err := decoded.EncodePNG()
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	reDecoded, _, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("Re-encoded bytes failed to decode: %v", err)
	}
	bounds := reDecoded.Bounds()
	if bounds.Dx() != 20 || bounds.Dy() != 30 {
		t.Errorf("Expected 20x30 after round trip, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestEncodePNG_FlattensAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	// Fully transparent corner should become white once flattened.
	src.Set(0, 0, color.NRGBA{0, 0, 0, 0})

	decoded, err := Decode(encodePNG(t, src), "ghost.png")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	encoded, err := decoded.EncodePNG()
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	flat, _, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("Flattened bytes failed to decode: %v", err)
	}

	r, g, b, a := flat.At(0, 0).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("Expected opaque white at transparent corner, got r=%d g=%d b=%d a=%d", r, g, b, a)
	}
}

// Package imaging turns uploaded bytes into decoded images and the
// metadata descriptors the rest of the pipeline works from.
package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	apperrors "go-image-describer/internal/errors"
	"go-image-describer/pkg/models"
)

// DecodedImage pairs a decoded image with its descriptor and the original
// upload bytes, which are what gets sent to the remote service first.
type DecodedImage struct {
	Image      image.Image
	Descriptor models.ImageDescriptor
	RawBytes   []byte
	MIMEType   string
}

// Decode parses uploaded bytes and builds the descriptor. A zero-dimension
// or undecodable image is rejected here so downstream code can rely on
// positive width and height.
func Decode(data []byte, fileName string) (*DecodedImage, error) {
	img, formatName, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewImageDecodeError("failed to decode image", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, apperrors.NewImageDecodeError("image has zero dimensions", nil)
	}

	format := formatFromName(formatName)
	return &DecodedImage{
		Image: img,
		Descriptor: models.ImageDescriptor{
			Width:            width,
			Height:           height,
			ColorMode:        colorModeOf(img),
			Format:           format,
			OriginalFileName: fileName,
		},
		RawBytes: data,
		MIMEType: mimeTypeOf(format),
	}, nil
}

// EncodePNG re-serializes the decoded image as PNG bytes, the second wire
// strategy for remote calls. RGBA images are flattened onto a white
// background first, matching what vision endpoints handle best.
func (d *DecodedImage) EncodePNG() ([]byte, error) {
	img := d.Image
	if d.Descriptor.ColorMode == models.ColorModeRGBA {
		img = flattenOnWhite(img)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, apperrors.NewInternalError("failed to encode image as PNG", err)
	}
	return buf.Bytes(), nil
}

func flattenOnWhite(img image.Image) image.Image {
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}

// colorModeOf maps the decoder's concrete type to a color mode. The PNG
// decoder produces *image.RGBA for opaque truecolor and *image.NRGBA only
// when an alpha channel is present, so the two map to RGB and RGBA
// respectively.
func colorModeOf(img image.Image) models.ColorMode {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return models.ColorModeGrayscale
	case *image.Paletted:
		return models.ColorModePalette
	case *image.CMYK:
		return models.ColorModeCMYK
	case *image.NRGBA, *image.NRGBA64:
		return models.ColorModeRGBA
	case *image.RGBA, *image.RGBA64, *image.YCbCr:
		return models.ColorModeRGB
	default:
		return models.ColorModeOther
	}
}

func formatFromName(name string) models.ImageFormat {
	switch strings.ToLower(name) {
	case "png":
		return models.FormatPNG
	case "jpeg":
		return models.FormatJPEG
	case "gif":
		return models.FormatGIF
	case "bmp":
		return models.FormatBMP
	case "tiff":
		return models.FormatTIFF
	default:
		return models.FormatUnknown
	}
}

func mimeTypeOf(format models.ImageFormat) string {
	switch format {
	case models.FormatPNG:
		return "image/png"
	case models.FormatJPEG:
		return "image/jpeg"
	case models.FormatGIF:
		return "image/gif"
	case models.FormatBMP:
		return "image/bmp"
	case models.FormatTIFF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

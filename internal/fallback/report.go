// Package fallback builds locally computed reports for when every remote
// analysis attempt fails. Reports are derived from image metadata only;
// no pixels are read.
package fallback

import (
	"fmt"
	"strings"

	"go-image-describer/pkg/models"
)

// Size category buckets, exclusive upper bounds in pixels.
const (
	smallPixelLimit  = 640 * 480          // 307,200
	mediumPixelLimit = 1920 * 1080        // 2,073,600
	largePixelLimit  = 4 * 1024 * 1024    // 4,194,304
)

// Aspect-ratio buckets shared with the recommendation strings.
const (
	wideRatio       = 1.5
	tallRatio       = 0.7
	squareLowRatio  = 0.9
	squareHighRatio = 1.1
)

var colorModeDescriptions = map[models.ColorMode]string{
	models.ColorModeRGB:       "Color image (Red, Green, Blue)",
	models.ColorModeRGBA:      "Color image with transparency",
	models.ColorModeGrayscale: "Grayscale (Black and White)",
	models.ColorModePalette:   "Palette-based color",
	models.ColorModeCMYK:      "CMYK color (for printing)",
}

// Orientation buckets an image by its dimensions.
func Orientation(width, height int) string {
	switch {
	case width > height:
		return "Landscape"
	case height > width:
		return "Portrait"
	default:
		return "Square"
	}
}

// SizeCategory buckets an image by total pixel count.
func SizeCategory(pixels int) string {
	switch {
	case pixels < smallPixelLimit:
		return "Small"
	case pixels < mediumPixelLimit:
		return "Medium"
	case pixels < largePixelLimit:
		return "Large"
	default:
		return "Very Large"
	}
}

// ColorModeDescription returns the human-readable description for a mode.
func ColorModeDescription(mode models.ColorMode) string {
	if desc, ok := colorModeDescriptions[mode]; ok {
		return desc
	}
	return fmt.Sprintf("Unknown mode: %s", mode)
}

// Recommendations derives short feature notes from color mode and geometry.
func Recommendations(d models.ImageDescriptor) []string {
	var recs []string
	switch d.ColorMode {
	case models.ColorModeRGBA:
		recs = append(recs, "Has transparent background")
	case models.ColorModeGrayscale:
		recs = append(recs, "Black and white image")
	case models.ColorModeCMYK:
		recs = append(recs, "Optimized for printing")
	}

	ratio := d.AspectRatio()
	switch {
	case ratio > wideRatio:
		recs = append(recs, "Wide panoramic format")
	case ratio < tallRatio:
		recs = append(recs, "Tall vertical format")
	case ratio >= squareLowRatio && ratio <= squareHighRatio:
		recs = append(recs, "Square format")
	}
	return recs
}

// BuildReport produces the fallback text for an analysis whose remote
// attempts have all failed: the sequence-diagram explanation when the
// classifier fired, otherwise the metadata report. Pure and total.
func BuildReport(d models.ImageDescriptor, isSequenceDiagram bool) string {
	if isSequenceDiagram {
		return buildSequenceDiagramReport(d)
	}
	return buildMetadataReport(d)
}

func buildMetadataReport(d models.ImageDescriptor) string {
	ratio := d.AspectRatio()
	pixels := d.PixelCount()

	var b strings.Builder
	b.WriteString("## 📊 Detailed Image Analysis\n\n")
	b.WriteString("### 📐 **Technical Specifications**\n")
	fmt.Fprintf(&b, "- **Dimensions**: %d × %d pixels (%s total pixels)\n", d.Width, d.Height, groupDigits(pixels))
	fmt.Fprintf(&b, "- **Aspect Ratio**: %.2f:1\n", ratio)
	fmt.Fprintf(&b, "- **Orientation**: %s\n", Orientation(d.Width, d.Height))
	fmt.Fprintf(&b, "- **Size Category**: %s\n", SizeCategory(pixels))
	fmt.Fprintf(&b, "- **File Format**: %s\n", formatName(d.Format))
	fmt.Fprintf(&b, "- **Color Mode**: %s\n\n", ColorModeDescription(d.ColorMode))

	b.WriteString("### 🎨 **Image Characteristics**\n")
	fmt.Fprintf(&b, "- **File Type**: %s\n", likelyFileType(d.OriginalFileName))
	fmt.Fprintf(&b, "- **Compression**: %s (typical for %s)\n\n", compressionClass(d.Format), formatName(d.Format))

	b.WriteString("### 💡 **Features & Recommendations**\n")
	recs := Recommendations(d)
	if len(recs) == 0 {
		b.WriteString("- Standard image format\n")
	}
	for _, rec := range recs {
		fmt.Fprintf(&b, "- ✅ %s\n", rec)
	}

	b.WriteString("\n### 🔍 **Usage Suggestions**\n")
	fmt.Fprintf(&b, "- Perfect for: %s\n", usageSuggestion(d.Format))
	fmt.Fprintf(&b, "- Best viewed at: %d×%d pixels or smaller\n", d.Width, d.Height)
	fmt.Fprintf(&b, "- Aspect ratio: %s\n\n", aspectSuggestion(ratio))

	b.WriteString(`### ⚠️ **AI Enhancement Note**
To get AI-powered content analysis (what's actually *in* the image), your Google API key needs vision capabilities. You can:
1. Check your API key at Google AI Studio
2. Ensure vision/image analysis is enabled
3. Try a different API key if available

*This analysis provides technical information about your image file. For content-based analysis, please ensure proper API access.*`)

	return b.String()
}

func formatName(f models.ImageFormat) string {
	if f == "" {
		return string(models.FormatUnknown)
	}
	return string(f)
}

func compressionClass(f models.ImageFormat) string {
	switch f {
	case models.FormatPNG, models.FormatBMP, models.FormatTIFF:
		return "Lossless"
	default:
		return "Lossy"
	}
}

func likelyFileType(fileName string) string {
	lower := strings.ToLower(fileName)
	switch {
	case hasAnySuffix(lower, ".jpg", ".jpeg", ".png", ".gif", ".bmp"):
		return "Photograph or Digital Image"
	case hasAnySuffix(lower, ".svg", ".ico"):
		return "Vector Graphic or Icon"
	case hasAnySuffix(lower, ".psd"):
		return "Photoshop Document"
	case hasAnySuffix(lower, ".tiff", ".tif"):
		return "Professional/High-Quality Image"
	default:
		return "Image File"
	}
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func usageSuggestion(f models.ImageFormat) string {
	switch f {
	case models.FormatPNG:
		return "Web display and digital use"
	case models.FormatJPEG:
		return "Photographs and images"
	case models.FormatTIFF, models.FormatBMP:
		return "High-quality prints"
	default:
		return "General use"
	}
}

func aspectSuggestion(ratio float64) string {
	switch {
	case ratio > wideRatio:
		return "Great for wallpapers/wide displays"
	case ratio < tallRatio:
		return "Great for portraits/mobile"
	default:
		return "Versatile square format"
	}
}

// groupDigits formats n with comma thousand separators.
func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

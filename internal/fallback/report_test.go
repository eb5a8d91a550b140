package fallback

import (
	"strings"
	"testing"

	"go-image-describer/pkg/models"
)

func TestOrientation(t *testing.T) {
	tests := []struct {
		width, height int
		want          string
	}{
		{1920, 1080, "Landscape"},
		{1080, 1920, "Portrait"},
		{512, 512, "Square"},
	}
	for _, tt := range tests {
		if got := Orientation(tt.width, tt.height); got != tt.want {
			t.Errorf("Orientation(%d, %d) = %q, want %q", tt.width, tt.height, got, tt.want)
		}
	}
}

func TestSizeCategory_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		pixels int
		want   string
	}{
		{"just below small limit", 640*480 - 1, "Small"},
		{"exactly at small limit is Medium", 640 * 480, "Medium"},
		{"1919x1079 is Medium", 1919 * 1079, "Medium"},
		// 1920*1080 = 2,073,600 is not < 2,073,600, so it falls in Large.
		{"exactly 1920x1080 is Large", 1920 * 1080, "Large"},
		{"just below large limit", 4*1024*1024 - 1, "Large"},
		{"exactly at large limit is Very Large", 4 * 1024 * 1024, "Very Large"},
		{"huge image", 8000 * 6000, "Very Large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SizeCategory(tt.pixels); got != tt.want {
				t.Errorf("SizeCategory(%d) = %q, want %q", tt.pixels, got, tt.want)
			}
		})
	}
}

func TestColorModeDescription(t *testing.T) {
	if got := ColorModeDescription(models.ColorModeRGB); got != "Color image (Red, Green, Blue)" {
		t.Errorf("Unexpected RGB description: %q", got)
	}
	if got := ColorModeDescription(models.ColorModeCMYK); got != "CMYK color (for printing)" {
		t.Errorf("Unexpected CMYK description: %q", got)
	}
	if got := ColorModeDescription(models.ColorModeOther); !strings.Contains(got, "Unknown mode") {
		t.Errorf("Expected unknown-mode fallback, got %q", got)
	}
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name string
		d    models.ImageDescriptor
		want []string
	}{
		{
			name: "RGBA wide",
			d:    models.ImageDescriptor{Width: 1600, Height: 900, ColorMode: models.ColorModeRGBA},
			want: []string{"Has transparent background", "Wide panoramic format"},
		},
		{
			name: "grayscale tall",
			d:    models.ImageDescriptor{Width: 600, Height: 1000, ColorMode: models.ColorModeGrayscale},
			want: []string{"Black and white image", "Tall vertical format"},
		},
		{
			name: "CMYK square",
			d:    models.ImageDescriptor{Width: 500, Height: 500, ColorMode: models.ColorModeCMYK},
			want: []string{"Optimized for printing", "Square format"},
		},
		{
			name: "RGB between buckets yields nothing",
			d:    models.ImageDescriptor{Width: 130, Height: 100, ColorMode: models.ColorModeRGB},
			want: nil,
		},
		{
			name: "square bounds are inclusive",
			d:    models.ImageDescriptor{Width: 110, Height: 100, ColorMode: models.ColorModeRGB},
			want: []string{"Square format"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommendations(tt.d)
			if len(got) != len(tt.want) {
				t.Fatalf("Recommendations(%+v) = %v, want %v", tt.d, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Recommendation %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildReport_Metadata(t *testing.T) {
	d := models.ImageDescriptor{
		Width:            1920,
		Height:           1080,
		ColorMode:        models.ColorModeRGB,
		Format:           models.FormatPNG,
		OriginalFileName: "city.png",
	}
	report := BuildReport(d, false)

	for _, want := range []string{
		"1920 × 1080 pixels (2,073,600 total pixels)",
		"**Aspect Ratio**: 1.78:1",
		"**Orientation**: Landscape",
		"**Size Category**: Large",
		"**File Format**: PNG",
		"Color image (Red, Green, Blue)",
		"**Compression**: Lossless (typical for PNG)",
		"Perfect for: Web display and digital use",
		"Wide panoramic format",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Metadata report missing %q", want)
		}
	}
	if strings.Contains(report, "Sequence Diagram Analysis") {
		t.Error("Metadata report must not contain the sequence template")
	}
}

func TestBuildReport_ZeroHeightRatioDefaultsToOne(t *testing.T) {
	d := models.ImageDescriptor{Width: 100, Height: 0, ColorMode: models.ColorModeRGB, Format: models.FormatPNG}
	report := BuildReport(d, false)
	if !strings.Contains(report, "**Aspect Ratio**: 1.00:1") {
		t.Error("Zero-height image should report aspect ratio 1.00:1")
	}
}

func TestBuildReport_NoRecommendationsFallbackLine(t *testing.T) {
	d := models.ImageDescriptor{Width: 130, Height: 100, ColorMode: models.ColorModeRGB, Format: models.FormatJPEG}
	report := BuildReport(d, false)
	if !strings.Contains(report, "- Standard image format") {
		t.Error("Expected standard-format line when no recommendations apply")
	}
}

func TestBuildReport_SequenceDiagram(t *testing.T) {
	d := models.ImageDescriptor{Width: 1400, Height: 600, ColorMode: models.ColorModeRGB, Format: models.FormatPNG}
	report := BuildReport(d, true)

	if !strings.Contains(report, "UML Sequence Diagram") {
		t.Error("Sequence report missing diagram overview")
	}
	if !strings.Contains(report, "**Image Size**: 1400 × 600 pixels") {
		t.Error("Sequence report missing interpolated dimensions")
	}
	if strings.Contains(report, "Technical Specifications") {
		t.Error("Sequence report must not contain the metadata template")
	}
}

func TestBuildReport_Pure(t *testing.T) {
	d := models.ImageDescriptor{
		Width:            800,
		Height:           600,
		ColorMode:        models.ColorModeRGBA,
		Format:           models.FormatPNG,
		OriginalFileName: "logo.png",
	}
	for _, seq := range []bool{false, true} {
		first := BuildReport(d, seq)
		second := BuildReport(d, seq)
		if first != second {
			t.Errorf("BuildReport(seq=%v) not byte-identical across calls", seq)
		}
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{307200, "307,200"},
		{2073600, "2,073,600"},
	}
	for _, tt := range tests {
		if got := groupDigits(tt.in); got != tt.want {
			t.Errorf("groupDigits(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

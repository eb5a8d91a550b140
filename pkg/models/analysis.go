package models

import "time"

// ColorMode describes how pixel color is represented in the source image.
type ColorMode string

const (
	ColorModeRGB       ColorMode = "RGB"
	ColorModeRGBA      ColorMode = "RGBA"
	ColorModeGrayscale ColorMode = "Grayscale"
	ColorModePalette   ColorMode = "Palette"
	ColorModeCMYK      ColorMode = "CMYK"
	ColorModeOther     ColorMode = "Other"
)

// ImageFormat is the container format the image was decoded from.
type ImageFormat string

const (
	FormatPNG     ImageFormat = "PNG"
	FormatJPEG    ImageFormat = "JPEG"
	FormatGIF     ImageFormat = "GIF"
	FormatBMP     ImageFormat = "BMP"
	FormatTIFF    ImageFormat = "TIFF"
	FormatUnknown ImageFormat = "Unknown"
)

// ImageDescriptor carries the metadata the analysis pipeline works from.
// Width and Height are always positive; construction validates this.
type ImageDescriptor struct {
	Width            int         `json:"width"`
	Height           int         `json:"height"`
	ColorMode        ColorMode   `json:"color_mode"`
	Format           ImageFormat `json:"format"`
	OriginalFileName string      `json:"original_file_name,omitempty"`
}

// PixelCount returns the total number of pixels.
func (d ImageDescriptor) PixelCount() int {
	return d.Width * d.Height
}

// AspectRatio returns width/height, defaulting to 1 when height is zero.
func (d ImageDescriptor) AspectRatio() float64 {
	if d.Height == 0 {
		return 1
	}
	return float64(d.Width) / float64(d.Height)
}

// ClassificationResult reports whether an image looks like a UML sequence
// diagram, and why. It is derived purely from the descriptor and the user
// prompt and never mutated after creation.
type ClassificationResult struct {
	IsSequenceDiagram bool   `json:"is_sequence_diagram"`
	Reason            string `json:"reason,omitempty"`
}

// AnalysisRequest is one upload-and-analyze cycle's worth of input.
type AnalysisRequest struct {
	Descriptor     ImageDescriptor
	ImageBytes     []byte // bytes as uploaded, in the original format
	ImageMIMEType  string
	PromptText     string
	Classification ClassificationResult
}

// FailureKind categorizes why a remote analysis attempt failed.
type FailureKind string

const (
	FailureQuotaExceeded    FailureKind = "quota_exceeded"
	FailurePermissionDenied FailureKind = "permission_denied"
	FailureModelUnavailable FailureKind = "model_unavailable"
	FailureOther            FailureKind = "other"
)

// Terminal reports whether this failure aborts the candidate chain.
// Quota and permission problems affect every candidate equally, so trying
// further models cannot help.
func (k FailureKind) Terminal() bool {
	return k == FailureQuotaExceeded || k == FailurePermissionDenied
}

// AnalysisOutcome is the tagged result of the remote candidate chain:
// either a text payload plus the model that produced it, or the last
// classified failure after exhaustion.
type AnalysisOutcome struct {
	Text        string      `json:"text,omitempty"`
	Model       string      `json:"model,omitempty"`
	Failure     FailureKind `json:"failure,omitempty"`
	FailureText string      `json:"failure_text,omitempty"`
}

// Succeeded reports whether any candidate produced text.
func (o AnalysisOutcome) Succeeded() bool {
	return o.Text != ""
}

// AnalysisResponse is the user-visible result of one analysis action.
type AnalysisResponse struct {
	ID             string               `json:"id"`
	Timestamp      time.Time            `json:"timestamp"`
	Description    string               `json:"description"`
	Source         string               `json:"source"` // model identifier, or "fallback"
	Fallback       bool                 `json:"fallback"`
	Classification ClassificationResult `json:"classification"`
	Descriptor     ImageDescriptor      `json:"image"`
	Guidance       string               `json:"guidance,omitempty"`
	DownloadName   string               `json:"download_name"`
	ProcessingSec  float64              `json:"processing_time_sec"`
}

// ModelInfo describes one remote model, for the diagnostics surface.
type ModelInfo struct {
	Name             string   `json:"name"`
	DisplayName      string   `json:"display_name,omitempty"`
	SupportedActions []string `json:"supported_actions,omitempty"`
}

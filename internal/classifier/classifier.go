// Package classifier decides whether an image is likely a UML sequence
// diagram, from its filename and aspect ratio alone. It never reads pixels.
package classifier

import (
	"strings"

	"go-image-describer/pkg/models"
)

// fileNameKeywords flag a sequence diagram regardless of geometry.
var fileNameKeywords = []string{
	"sequence", "seq", "interaction", "collaboration",
	"message flow", "uml", "system flow", "process flow",
}

// promptKeywords let the user's prompt upgrade a negative classification.
var promptKeywords = []string{
	"sequence", "lifeline", "message", "participant",
	"actor", "interaction", "uml", "diagram",
}

// Aspect-ratio heuristics: sequence diagrams are usually wide (participants
// side by side) and tall enough to show several message levels.
const (
	wideRatio       = 1.5
	wideMinHeight   = 200
	mediumRatio     = 1.2
	mediumMinHeight = 150
)

const (
	ReasonFileName     = "Filename suggests sequence diagram"
	ReasonWideFormat   = "Wide format typical of sequence diagrams"
	ReasonMediumFormat = "Format suggests technical diagram"
	ReasonUserPrompt   = "User prompt suggests sequence diagram"
)

// Classify applies the filename and geometry heuristics in priority order.
// It is pure and total: the same inputs always produce the same result.
func Classify(fileName string, width, height int) models.ClassificationResult {
	lower := strings.ToLower(fileName)
	for _, keyword := range fileNameKeywords {
		if lower != "" && strings.Contains(lower, keyword) {
			return models.ClassificationResult{IsSequenceDiagram: true, Reason: ReasonFileName}
		}
	}

	aspectRatio := 1.0
	if height > 0 {
		aspectRatio = float64(width) / float64(height)
	}

	// Height thresholds are strict: exactly 200 (or 150) does not qualify.
	if aspectRatio > wideRatio && height > wideMinHeight {
		return models.ClassificationResult{IsSequenceDiagram: true, Reason: ReasonWideFormat}
	}
	if aspectRatio > mediumRatio && height > mediumMinHeight {
		return models.ClassificationResult{IsSequenceDiagram: true, Reason: ReasonMediumFormat}
	}
	return models.ClassificationResult{}
}

// ClassifyDescriptor classifies from a descriptor's filename and dimensions.
func ClassifyDescriptor(d models.ImageDescriptor) models.ClassificationResult {
	return Classify(d.OriginalFileName, d.Width, d.Height)
}

// ApplyPromptOverride upgrades a negative classification to positive when
// the prompt mentions sequence-diagram vocabulary. It never downgrades a
// positive result.
func ApplyPromptOverride(result models.ClassificationResult, promptText string) models.ClassificationResult {
	if result.IsSequenceDiagram {
		return result
	}
	lower := strings.ToLower(promptText)
	for _, keyword := range promptKeywords {
		if lower != "" && strings.Contains(lower, keyword) {
			return models.ClassificationResult{IsSequenceDiagram: true, Reason: ReasonUserPrompt}
		}
	}
	return result
}

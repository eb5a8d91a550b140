package validation

import (
	"fmt"

	apperrors "go-image-describer/internal/errors"
	"go-image-describer/pkg/models"
)

// Prompt length cap; remote models reject absurdly long instructions anyway.
const maxPromptLength = 4000

// DescriptorValidator enforces the invariants an ImageDescriptor must hold
// before it enters the analysis pipeline.
type DescriptorValidator struct{}

// NewDescriptorValidator creates a descriptor validator.
func NewDescriptorValidator() *DescriptorValidator {
	return &DescriptorValidator{}
}

// ValidateDescriptor rejects zero or negative dimensions. A descriptor with
// invalid geometry is a construction bug upstream, never a user error to
// absorb silently.
func (v *DescriptorValidator) ValidateDescriptor(d models.ImageDescriptor) error {
	if d.Width <= 0 || d.Height <= 0 {
		return apperrors.NewValidationError(
			fmt.Sprintf("image dimensions must be positive (got %dx%d)", d.Width, d.Height), nil)
	}
	return nil
}

// ValidatePrompt rejects prompts beyond the length cap. Empty prompts are
// fine; the resolver substitutes a default.
func (v *DescriptorValidator) ValidatePrompt(promptText string) error {
	if len(promptText) > maxPromptLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("prompt exceeds %d characters", maxPromptLength), nil)
	}
	return nil
}

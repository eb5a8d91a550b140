// Package prompt holds the prompt catalog and decides which instruction is
// sent to the remote model for a given request.
package prompt

import "strings"

// DefaultPrompt is substituted when the user supplies no prompt text.
const DefaultPrompt = "Describe this image"

// SequenceDiagramPrompt replaces the user prompt when the image is
// classified as a UML sequence diagram.
const SequenceDiagramPrompt = `This is a UML sequence diagram. Please analyze it in detail and provide:
1. All participants/actors in the diagram
2. The sequence of messages between participants
3. Any conditions, loops, or combined fragments
4. The overall flow and purpose of the interaction
5. Any return messages or synchronous/asynchronous calls
Please be very specific about the text labels and message content.`

// Predefined returns the prompt suggestions offered by the UI.
func Predefined() []string {
	return []string{
		"Describe this image in detail",
		"What objects can you identify in this image?",
		"What is the main subject of this image?",
		"Analyze the colors and composition of this image",
		"Is there any text in this image? If so, what does it say?",
		"What is the mood or atmosphere of this image?",
		"Are there any people in this image? Describe them.",
		"What location or setting is depicted in this image?",
		"Analyze this sequence diagram - show all participants, messages, and interactions",
		"Extract all text and labels from this diagram",
		"Explain the flow and logic shown in this technical diagram",
	}
}

// Resolve picks the instruction actually sent to the remote model:
// the specialized sequence-diagram prompt when classification is positive,
// otherwise the user's text, otherwise the default.
func Resolve(userPrompt string, isSequenceDiagram bool) string {
	if isSequenceDiagram {
		return SequenceDiagramPrompt
	}
	if strings.TrimSpace(userPrompt) == "" {
		return DefaultPrompt
	}
	return userPrompt
}

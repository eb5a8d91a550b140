package vision

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"go-image-describer/internal/logger"
	"go-image-describer/pkg/models"
)

// Encoding is one wire representation of the image.
type Encoding struct {
	Data     []byte
	MIMEType string
}

// CallRequest is everything one pass through the candidate chain needs.
// Primary carries the upload's native bytes; Retry carries the PNG
// re-encoding tried when the first strategy fails.
type CallRequest struct {
	Prompt  string
	Primary Encoding
	Retry   Encoding
}

// Caller walks the ordered candidate models until one succeeds.
type Caller struct {
	client     ModelClient
	candidates []string
}

// NewCaller creates a caller over the given candidate list. The order is
// the order of attempts; the list is copied so later config mutation
// cannot reorder a chain mid-flight.
func NewCaller(client ModelClient, candidates []string) *Caller {
	return &Caller{
		client:     client,
		candidates: append([]string(nil), candidates...),
	}
}

// Candidates returns the chain order, primarily for logging and tests.
func (c *Caller) Candidates() []string {
	return append([]string(nil), c.candidates...)
}

// Call tries each candidate in order with up to two encodings and returns
// a tagged outcome. Quota and permission failures are terminal: they abort
// the whole chain because no other candidate can do better with the same
// key. Model-unavailable and other failures move on.
func (c *Caller) Call(ctx context.Context, req CallRequest) models.AnalysisOutcome {
	var lastKind models.FailureKind
	var lastMessage string

	for _, candidate := range c.candidates {
		text, err := c.client.GenerateDescription(ctx, candidate, req.Prompt, req.Primary.Data, req.Primary.MIMEType)
		if err == nil {
			return models.AnalysisOutcome{Text: text, Model: candidate}
		}

		lastKind = ClassifyError(err)
		lastMessage = err.Error()
		logger.WithError(err).WithFields(logrus.Fields{
			"model":    candidate,
			"strategy": "native",
			"failure":  lastKind,
		}).Debug("Remote analysis attempt failed")
		if lastKind.Terminal() {
			break
		}

		// Second strategy: same candidate, image re-encoded as raw PNG bytes.
		if len(req.Retry.Data) > 0 {
			text, err = c.client.GenerateDescription(ctx, candidate, req.Prompt, req.Retry.Data, req.Retry.MIMEType)
			if err == nil {
				return models.AnalysisOutcome{Text: text, Model: candidate}
			}
			lastKind = ClassifyError(err)
			lastMessage = err.Error()
			logger.WithError(err).WithFields(logrus.Fields{
				"model":    candidate,
				"strategy": "png",
				"failure":  lastKind,
			}).Debug("Remote analysis retry failed")
			if lastKind.Terminal() {
				break
			}
		}
	}

	return models.AnalysisOutcome{Failure: lastKind, FailureText: lastMessage}
}

// ClassifyError maps a remote error message onto the failure taxonomy by
// case-insensitive substring match, the contract the remote service
// actually provides.
func ClassifyError(err error) models.FailureKind {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota") || strings.Contains(msg, "limit"):
		return models.FailureQuotaExceeded
	case strings.Contains(msg, "404") || strings.Contains(msg, "not found"):
		return models.FailureModelUnavailable
	case strings.Contains(msg, "permission") || strings.Contains(msg, "forbidden"):
		return models.FailurePermissionDenied
	default:
		return models.FailureOther
	}
}

// Guidance renders the user-facing advice for a terminal failure category.
func Guidance(kind models.FailureKind) string {
	switch kind {
	case models.FailureQuotaExceeded:
		return "Google AI API quota exceeded. The free tier limit has been reached. " +
			"Wait for the quota to reset, check your usage dashboard, or enable billing for more quota."
	case models.FailurePermissionDenied:
		return "API key permission denied. Check that your API key has vision capabilities enabled " +
			"at Google AI Studio, or try generating a new key with proper permissions."
	case models.FailureModelUnavailable:
		return "None of the configured models are available to this API key."
	case models.FailureOther:
		return "The remote AI service could not analyze this image."
	default:
		return ""
	}
}

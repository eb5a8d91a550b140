// Package service orchestrates one upload-and-analyze cycle: classify the
// image, resolve the prompt, walk the remote candidate chain, and degrade
// to a locally built report when every remote attempt fails.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-image-describer/internal/classifier"
	"go-image-describer/internal/fallback"
	"go-image-describer/internal/imaging"
	"go-image-describer/internal/logger"
	"go-image-describer/internal/observer"
	"go-image-describer/internal/prompt"
	"go-image-describer/internal/repository"
	"go-image-describer/internal/vision"
	"go-image-describer/pkg/models"
	"go-image-describer/pkg/validation"
)

// FallbackSource marks responses built locally instead of by a remote model.
const FallbackSource = "fallback"

// AnalysisService is the application's one user-facing operation, in its
// two entry forms: a direct upload or a fetchable URL.
type AnalysisService interface {
	AnalyzeUpload(ctx context.Context, data []byte, fileName, promptText string) (*models.AnalysisResponse, error)
	AnalyzeURL(ctx context.Context, imageURL, promptText string) (*models.AnalysisResponse, error)
	PredefinedPrompts() []string
	ListModels(ctx context.Context) ([]models.ModelInfo, error)
	Metrics() map[string]interface{}
}

type analysisService struct {
	imageRepo repository.ImageRepository
	caller    *vision.Caller
	client    vision.ModelClient
	validator *validation.DescriptorValidator
	publisher *observer.Publisher
	metrics   *observer.MetricsObserver
}

// NewAnalysisService wires the pipeline together.
func NewAnalysisService(
	imageRepo repository.ImageRepository,
	caller *vision.Caller,
	client vision.ModelClient,
) AnalysisService {
	metrics := observer.NewMetricsObserver()
	publisher := observer.NewPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	return &analysisService{
		imageRepo: imageRepo,
		caller:    caller,
		client:    client,
		validator: validation.NewDescriptorValidator(),
		publisher: publisher,
		metrics:   metrics,
	}
}

func (s *analysisService) AnalyzeUpload(ctx context.Context, data []byte, fileName, promptText string) (*models.AnalysisResponse, error) {
	decoded, err := imaging.Decode(data, fileName)
	if err != nil {
		return nil, err
	}
	return s.describe(ctx, decoded, promptText)
}

func (s *analysisService) AnalyzeURL(ctx context.Context, imageURL, promptText string) (*models.AnalysisResponse, error) {
	decoded, err := s.imageRepo.FetchDecodedImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return s.describe(ctx, decoded, promptText)
}

func (s *analysisService) PredefinedPrompts() []string {
	return prompt.Predefined()
}

func (s *analysisService) ListModels(ctx context.Context) ([]models.ModelInfo, error) {
	return s.client.ListModels(ctx)
}

func (s *analysisService) Metrics() map[string]interface{} {
	return s.metrics.GetMetrics()
}

// describe runs the classify → resolve → remote chain → fallback sequence
// as one atomic unit of work; the result is delivered once, with no
// partial state exposed.
func (s *analysisService) describe(ctx context.Context, decoded *imaging.DecodedImage, promptText string) (*models.AnalysisResponse, error) {
	start := time.Now()
	analysisID := uuid.NewString()
	d := decoded.Descriptor

	if err := s.validator.ValidateDescriptor(d); err != nil {
		return nil, err
	}
	if err := s.validator.ValidatePrompt(promptText); err != nil {
		return nil, err
	}

	s.publisher.Notify(ctx, observer.AnalysisEvent{
		EventType:  observer.AnalysisStarted,
		Timestamp:  start,
		AnalysisID: analysisID,
		FileName:   d.OriginalFileName,
	})

	classification := classifier.ClassifyDescriptor(d)
	classification = classifier.ApplyPromptOverride(classification, promptText)
	resolvedPrompt := prompt.Resolve(promptText, classification.IsSequenceDiagram)

	req := vision.CallRequest{
		Prompt:  resolvedPrompt,
		Primary: vision.Encoding{Data: decoded.RawBytes, MIMEType: decoded.MIMEType},
	}
	if pngBytes, err := decoded.EncodePNG(); err == nil {
		req.Retry = vision.Encoding{Data: pngBytes, MIMEType: "image/png"}
	} else {
		// The chain still runs with the native encoding only.
		logger.WithError(err).Warn("PNG re-encoding unavailable for retry strategy")
	}

	outcome := s.caller.Call(ctx, req)

	response := &models.AnalysisResponse{
		ID:             analysisID,
		Timestamp:      start,
		Classification: classification,
		Descriptor:     d,
		DownloadName:   downloadName(d.OriginalFileName),
	}

	if outcome.Succeeded() {
		response.Description = outcome.Text
		response.Source = outcome.Model
		response.ProcessingSec = time.Since(start).Seconds()

		s.publisher.Notify(ctx, observer.AnalysisEvent{
			EventType:      observer.AnalysisCompleted,
			Timestamp:      time.Now(),
			AnalysisID:     analysisID,
			FileName:       d.OriginalFileName,
			Model:          outcome.Model,
			ProcessingTime: time.Since(start),
		})
		return response, nil
	}

	// Total remote failure degrades to the local report; the failure
	// category rides along as guidance rather than becoming an error.
	response.Description = fallback.BuildReport(d, classification.IsSequenceDiagram)
	response.Source = FallbackSource
	response.Fallback = true
	response.Guidance = vision.Guidance(outcome.Failure)
	response.ProcessingSec = time.Since(start).Seconds()

	s.publisher.Notify(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisFellBack,
		Timestamp:      time.Now(),
		AnalysisID:     analysisID,
		FileName:       d.OriginalFileName,
		FailureKind:    string(outcome.Failure),
		ProcessingTime: time.Since(start),
		ErrorMessage:   outcome.FailureText,
	})
	return response, nil
}

// downloadName follows the image_analysis_<originalFileName>.txt convention.
func downloadName(fileName string) string {
	if fileName == "" {
		fileName = "image"
	}
	return fmt.Sprintf("image_analysis_%s.txt", fileName)
}

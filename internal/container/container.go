package container

import (
	"context"
	"net/http"

	"go-image-describer/internal/config"
	"go-image-describer/internal/repository"
	"go-image-describer/internal/service"
	"go-image-describer/internal/storage"
	"go-image-describer/internal/transport"
	"go-image-describer/internal/vision"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	imageFetcher    storage.ImageFetcher
	imageRepository repository.ImageRepository
	analysisService service.AnalysisService
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	// Build dependency graph
	imageFetcher, err := storage.NewFetcher(cfg)
	if err != nil {
		return nil, err
	}

	geminiClient, err := vision.NewGeminiClient(ctx, cfg.GoogleAPIKey)
	if err != nil {
		return nil, err
	}

	caller := vision.NewCaller(geminiClient, cfg.CandidateModels)
	imageRepository := repository.NewImageRepository(imageFetcher)
	analysisService := service.NewAnalysisService(imageRepository, caller, geminiClient)
	handler := transport.NewHandler(analysisService, cfg)

	return &Container{
		config:          cfg,
		imageFetcher:    imageFetcher,
		imageRepository: imageRepository,
		analysisService: analysisService,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

package storage

import (
	"fmt"

	"go-image-describer/internal/config"
)

// NewFetcher selects the image source backend from configuration.
func NewFetcher(cfg *config.Config) (ImageFetcher, error) {
	switch cfg.StorageBackend {
	case config.StorageHTTP:
		return NewHTTPImageFetcher(cfg.ImageFetchTimeout, cfg.MaxRequestBodySize), nil
	case config.StorageAzure:
		return NewAzureFetcher(cfg.AzureStorageAccount, cfg.AzureStorageKey)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}

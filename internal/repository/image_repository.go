// Package repository mediates image acquisition for URL-based analysis:
// fetch the bytes through the configured storage backend, then decode them
// into the descriptor the pipeline works from.
package repository

import (
	"context"
	"net/url"
	"path"

	apperrors "go-image-describer/internal/errors"
	"go-image-describer/internal/imaging"
	"go-image-describer/internal/storage"
	"go-image-describer/pkg/validation"
)

// ImageRepository acquires decoded images by URL.
type ImageRepository interface {
	FetchDecodedImage(ctx context.Context, imageURL string) (*imaging.DecodedImage, error)
	ValidateImageURL(imageURL string) error
}

type imageRepository struct {
	fetcher   storage.ImageFetcher
	validator *validation.URLValidator
}

// NewImageRepository creates a repository over the given fetcher.
func NewImageRepository(fetcher storage.ImageFetcher) ImageRepository {
	return &imageRepository{
		fetcher:   fetcher,
		validator: validation.NewURLValidator(),
	}
}

func (r *imageRepository) FetchDecodedImage(ctx context.Context, imageURL string) (*imaging.DecodedImage, error) {
	if err := r.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}

	data, _, err := r.fetcher.FetchImage(ctx, imageURL)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}

	return imaging.Decode(data, fileNameFromURL(imageURL))
}

func (r *imageRepository) ValidateImageURL(imageURL string) error {
	return r.validator.ValidateImageURL(imageURL)
}

// fileNameFromURL extracts the last path segment so the classifier can use
// remote filenames the same way it uses upload filenames.
func fileNameFromURL(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

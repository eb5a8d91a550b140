package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// azureFetcher implements ImageFetcher against an Azure blob container.
// The blob URL is expected as https://host/<container>?blob=<name>.
type azureFetcher struct {
	client *azblob.Client
}

// NewAzureFetcher creates an Azure-backed image fetcher using shared key
// credentials.
func NewAzureFetcher(accountName, accountKey string) (ImageFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &azureFetcher{client: client}, nil
}

func (s *azureFetcher) FetchImage(ctx context.Context, blobURL string) ([]byte, string, error) {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid blob URL: %w", err)
	}
	if parsedURL.Path == "" || parsedURL.Path == "/" {
		return nil, "", fmt.Errorf("blob URL missing container name")
	}

	containerName := parsedURL.Path[1:]
	blobName := parsedURL.Query().Get("blob")
	if blobName == "" {
		return nil, "", fmt.Errorf("blob URL missing blob query parameter")
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, "", fmt.Errorf("download failed: %w", err)
	}
	defer downloadResponse.Body.Close()

	body, err := io.ReadAll(downloadResponse.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read blob: %w", err)
	}

	contentType := ""
	if downloadResponse.ContentType != nil {
		contentType = *downloadResponse.ContentType
	}
	return body, contentType, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/complaintsys/backend/internal/config"
)

// BlobStore uploads an attachment under the given path and returns the URL
// the stored object is retrievable at.
type BlobStore interface {
	Upload(ctx context.Context, blobName string, data []byte) (string, error)
}

// AzureBlobStore stores attachments in an Azure Blob container. Uploads to an
// existing path overwrite the previous object.
type AzureBlobStore struct {
	client    *azblob.Client
	container string
}

func NewAzureBlobStore(cfg *config.StorageConfig) (*AzureBlobStore, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}

	return &AzureBlobStore{
		client:    client,
		container: cfg.ContainerName,
	}, nil
}

func (s *AzureBlobStore) Upload(ctx context.Context, blobName string, data []byte) (string, error) {
	if _, err := s.client.UploadBuffer(ctx, s.container, blobName, data, nil); err != nil {
		return "", fmt.Errorf("upload blob %s: %w", blobName, err)
	}

	url := s.client.ServiceClient().NewContainerClient(s.container).NewBlobClient(blobName).URL()
	return url, nil
}

package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobClient is a thin wrapper so callers can hold one value instead of
// passing the raw client into every call.
type BlobClient struct {
	Client *s3.Client
}

func (b *BlobClient) Put(ctx context.Context, container string, fileName string, content []byte) error {
	_, err := PutFile(ctx, b.Client, container, fileName, bytes.NewReader(content))
	return err
}

func (b *BlobClient) Delete(ctx context.Context, container string, fileName string) error {
	return DeleteFile(ctx, b.Client, container, fileName)
}

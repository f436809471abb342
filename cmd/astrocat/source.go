package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/astrocat/blobstore"
	minioblob "github.com/hupe1980/astrocat/blobstore/minio"
	s3blob "github.com/hupe1980/astrocat/blobstore/s3"
)

func (f *globalFlags) store(ctx context.Context) (blobstore.BlobStore, error) {
	switch f.source {
	case "local":
		root := f.prefix
		if root == "" {
			root = "."
		}
		return blobstore.NewLocalStore(root), nil

	case "s3":
		if f.bucket == "" {
			return nil, errors.New("--bucket is required for the s3 source")
		}
		opts := []s3blob.Option{
			s3blob.WithPrefix(f.prefix),
			s3blob.WithConcurrency(f.concurrency),
		}
		if f.region != "" {
			opts = append(opts, s3blob.WithRegion(f.region))
		}
		if f.endpoint != "" {
			opts = append(opts, s3blob.WithEndpoint(f.endpoint))
		}
		return s3blob.New(ctx, f.bucket, opts...)

	case "minio":
		if f.bucket == "" || f.endpoint == "" {
			return nil, errors.New("--bucket and --endpoint are required for the minio source")
		}
		access, secret := f.accessKey, f.secretKey
		if access == "" {
			access = os.Getenv("MINIO_ACCESS_KEY")
		}
		if secret == "" {
			secret = os.Getenv("MINIO_SECRET_KEY")
		}
		client, err := minio.New(f.endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(access, secret, ""),
			Secure: !f.insecure,
			Region: f.region,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return minioblob.NewStore(client, f.bucket, f.prefix), nil

	default:
		return nil, fmt.Errorf("unknown --source %q (want local, s3 or minio)", f.source)
	}
}

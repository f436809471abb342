package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/astrocat/blobstore"
)

// Client is the subset of *s3.Client the store uses.
type Client interface {
	manager.DownloadAPIClient
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var (
	_ blobstore.BlobStore = (*Store)(nil)
	_ blobstore.Fetcher   = (*Store)(nil)
)

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client     Client
	downloader *manager.Downloader
	bucket     string
	prefix     string
}

type options struct {
	prefix      string
	region      string
	endpoint    string
	concurrency int
	partSize    int64
}

// Option configures New.
type Option func(*options)

// WithPrefix sets the key prefix all blob names are relative to.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRegion overrides the region from the shared AWS config.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the client at an S3-compatible endpoint and switches
// to path-style addressing.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithConcurrency sets how many ranged GETs a single download runs at once.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// WithPartSize sets the byte size of each ranged GET.
func WithPartSize(size int64) Option {
	return func(o *options) { o.partSize = size }
}

// New creates a store from the shared AWS configuration.
func New(ctx context.Context, bucket string, optFns ...Option) (*Store, error) {
	opts := options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	var cfgOpts []func(*config.LoadOptions) error
	if opts.region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(opts.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.endpoint != "" {
			o.BaseEndpoint = aws.String(opts.endpoint)
			o.UsePathStyle = true
		}
	})

	return newStore(client, bucket, opts), nil
}

// NewStore creates a store over an existing client. rootPrefix is prepended
// to all keys (e.g. "catalogs/").
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return newStore(client, bucket, options{prefix: rootPrefix})
}

func newStore(client Client, bucket string, opts options) *Store {
	downloader := manager.NewDownloader(client, func(d *manager.Downloader) {
		if opts.concurrency > 0 {
			d.Concurrency = opts.concurrency
		}
		if opts.partSize > 0 {
			d.PartSize = opts.partSize
		}
	})

	return &Store{
		client:     client,
		downloader: downloader,
		bucket:     bucket,
		prefix:     strings.TrimSuffix(opts.prefix, "/"),
	}
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Open checks the blob exists and returns a ranged reader.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &s3Blob{
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
	}, nil
}

// Fetch downloads the whole blob with parallel ranged GETs.
func (s *Store) Fetch(ctx context.Context, name string) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(nil)
	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return buf.Bytes(), nil
}

// List returns the names under prefix, relative to the root prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.key(prefix)),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			name := aws.ToString(obj.Key)
			if s.prefix != "" {
				name = strings.TrimPrefix(name, s.prefix+"/")
			}
			if name != "" {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func mapError(err error) error {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return blobstore.ErrNotFound
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return blobstore.ErrNotFound
	}
	return err
}

type s3Blob struct {
	client Client
	bucket string
	key    string
	size   int64
}

func (b *s3Blob) Close() error {
	return nil
}

func (b *s3Blob) Size() int64 {
	return b.size
}

func (b *s3Blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off >= b.size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	end := off + int64(len(p)) - 1
	if end >= b.size {
		end = b.size - 1
	}

	resp, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return 0, mapError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	want := int(end - off + 1)
	n, err := io.ReadFull(resp.Body, p[:want])
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return n, io.EOF
		}
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// Writer persists one exported document.
type Writer interface {
	WriteText(ctx context.Context, path, content string) error
}

// SummaryPath derives the summary export path from a detail export path:
// the extension is dropped and "-summary.csv" appended.
func SummaryPath(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p)) + "-summary.csv"
}

// IsPermission reports whether err was caused by missing access rights.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

// FileWriter writes documents to the local filesystem.
type FileWriter struct{}

func (FileWriter) WriteText(_ context.Context, p, content string) error {
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

// MultiWriter writes every document to each writer in turn. All writers are
// attempted; their errors are aggregated.
type MultiWriter []Writer

func (m MultiWriter) WriteText(ctx context.Context, p, content string) error {
	var errs []error
	for _, w := range m {
		if err := w.WriteText(ctx, p, content); err != nil {
			errs = append(errs, err)
		}
	}
	return utilerrors.NewAggregate(errs)
}

// ── S3-compatible mirror ─────────────────────────────────────────────────────

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// ObjectWriter mirrors exports into an S3-compatible bucket. Object keys are
// the export's base name below Prefix.
type ObjectWriter struct {
	client   *minio.Client
	bucket   string
	region   string
	prefix   string
	initOnce sync.Once
	initErr  error
}

func NewObjectWriter(cfg S3Config) (*ObjectWriter, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &ObjectWriter{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (o *ObjectWriter) ensureBucket(ctx context.Context) error {
	o.initOnce.Do(func() {
		exists, err := o.client.BucketExists(ctx, o.bucket)
		if err != nil {
			o.initErr = err
			return
		}
		if exists {
			return
		}
		o.initErr = o.client.MakeBucket(ctx, o.bucket, minio.MakeBucketOptions{Region: o.region})
	})
	return o.initErr
}

// ObjectKey returns the key under which an export path is stored.
func (o *ObjectWriter) ObjectKey(p string) string {
	return objectKey(o.prefix, p)
}

func objectKey(prefix, p string) string {
	base := filepath.Base(p)
	if prefix == "" {
		return base
	}
	return path.Join(prefix, base)
}

func (o *ObjectWriter) WriteText(ctx context.Context, p, content string) error {
	if err := o.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket %s: %w", o.bucket, err)
	}
	key := o.ObjectKey(p)
	data := []byte(content)
	_, err := o.client.PutObject(ctx, o.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(p),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", o.bucket, key, err)
	}
	return nil
}

func contentType(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".json":
		return "application/json"
	case ".md":
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

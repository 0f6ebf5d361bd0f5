package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// ObjectStore is where uploaded media bytes live. Put returns the public URL
// of the stored object.
type ObjectStore interface {
	Put(ctx context.Context, objectName string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
}

// MediaObjectName builds media/<slug>-<unix>-<uuid><ext> from an uploaded
// file name.
func MediaObjectName(fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".bin"
	}
	base := GenerateSlug(strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)))
	if base == "" {
		base = "file"
	}
	if len(base) > 60 {
		base = strings.Trim(base[:60], "-")
	}
	return fmt.Sprintf("media/%s-%d-%s%s", base, now.UTC().Unix(), uuid.New().String(), ext)
}

// R2Store talks to Cloudflare R2 (or any S3-compatible endpoint).
type R2Store struct {
	S3           *s3.Client
	Bucket       string
	PublicDomain string
}

type R2Config struct {
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // https://<account-id>.r2.cloudflarestorage.com
	PublicDomain    string
	Region          string
}

func NewR2Store(ctx context.Context, cfg R2Config) (*R2Store, error) {
	if cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2Store{S3: client, Bucket: cfg.Bucket, PublicDomain: strings.TrimRight(cfg.PublicDomain, "/")}, nil
}

func (r *R2Store) Put(ctx context.Context, objectName string, body io.Reader, size int64, contentType string) (string, error) {
	_, err := r.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.Bucket),
		Key:           aws.String(objectName),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	return fmt.Sprintf("%s/%s/%s", r.PublicDomain, r.Bucket, objectName), nil
}

func (r *R2Store) Delete(ctx context.Context, objectName string) error {
	_, err := r.S3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", objectName, err)
	}
	return nil
}

// GCSStore writes objects to a Google Cloud Storage bucket.
type GCSStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSStore{Client: client, Bucket: bucket}, nil
}

func (g *GCSStore) Put(ctx context.Context, objectName string, body io.Reader, size int64, contentType string) (string, error) {
	// Never overwrite an existing object.
	w := g.Client.Bucket(g.Bucket).Object(objectName).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000, immutable"

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload close: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.Bucket, objectName), nil
}

func (g *GCSStore) Delete(ctx context.Context, objectName string) error {
	err := g.Client.Bucket(g.Bucket).Object(objectName).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete %s: %w", objectName, err)
	}
	return nil
}

// MemoryStore keeps objects in process memory; used by tests and the
// memory store driver.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	BaseURL string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{objects: map[string][]byte{}, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (m *MemoryStore) Put(_ context.Context, objectName string, body io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	m.mu.Lock()
	m.objects[objectName] = data
	m.mu.Unlock()
	return m.BaseURL + "/" + objectName, nil
}

func (m *MemoryStore) Delete(_ context.Context, objectName string) error {
	m.mu.Lock()
	delete(m.objects, objectName)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Object(objectName string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[objectName]
	return data, ok
}

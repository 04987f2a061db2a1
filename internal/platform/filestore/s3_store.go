package filestore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
)

// S3Config configures the bucket store.
type S3Config struct {
	Bucket string
	Region string
	// Endpoint overrides the AWS endpoint for S3-compatible services such as
	// MinIO or LocalStack. Path-style addressing is used when set.
	Endpoint string
	// AccessKeyID and SecretAccessKey select static credentials; otherwise the
	// default AWS credential chain applies.
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL replaces the computed object URL prefix when set.
	PublicBaseURL string
}

// ObjectPutter is the subset of the S3 client the store needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// FieldPatcher records the stored URL on the owning record.
type FieldPatcher interface {
	PatchField(ctx context.Context, resource string, id int64, field string, value any) error
}

// S3Store writes objects to a bucket and PATCHes their URL onto the record.
type S3Store struct {
	client  ObjectPutter
	patcher FieldPatcher
	bucket  string
	baseURL string
}

// NewS3Store loads AWS configuration and builds a bucket store.
func NewS3Store(ctx context.Context, cfg S3Config, patcher FieldPatcher) (*S3Store, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	options := []func(*config.LoadOptions) error{}
	if region := strings.TrimSpace(cfg.Region); region != "" {
		options = append(options, config.WithRegion(region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		options = append(options, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if baseURL == "" {
		baseURL = defaultObjectBaseURL(bucket, awsCfg.Region, endpoint)
	}
	return NewS3StoreWithClient(client, patcher, bucket, baseURL), nil
}

// NewS3StoreWithClient builds a store over an existing client.
func NewS3StoreWithClient(client ObjectPutter, patcher FieldPatcher, bucket, baseURL string) *S3Store {
	return &S3Store{client: client, patcher: patcher, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

func defaultObjectBaseURL(bucket, region, endpoint string) string {
	if endpoint != "" {
		return endpoint + "/" + bucket
	}
	if region == "" {
		return "https://" + bucket + ".s3.amazonaws.com"
	}
	return "https://" + bucket + ".s3." + region + ".amazonaws.com"
}

// Put uploads obj under uploads/<resource>/ and patches the record field.
func (s *S3Store) Put(ctx context.Context, obj Object) (string, error) {
	if s == nil || s.client == nil || s.patcher == nil {
		return "", apperrors.EK(apperrors.KindUnavailable, "core.error.unavailable", "file store is not configured")
	}
	key := ObjectKey(obj.Resource, obj.Name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          obj.Reader(),
		ContentType:   aws.String(obj.ContentType),
		ContentLength: aws.Int64(obj.Size()),
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUnavailable, "store object", err)
	}
	objectURL := s.baseURL + "/" + escapeKey(key)
	if err := s.patcher.PatchField(ctx, obj.Resource, obj.ID, obj.Field, objectURL); err != nil {
		return "", fmt.Errorf("attach %s: %w", obj.Field, err)
	}
	return objectURL, nil
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for idx, part := range parts {
		parts[idx] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

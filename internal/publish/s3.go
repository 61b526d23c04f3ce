package publish

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
)

// Uploader is the part of manager.Uploader the S3 sink uses.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Sink uploads reports to paths like:
//
//	s3://<bucket>/<prefix>/schedules/YYYY/MM/DD/<instance>_<run>.json
type S3Sink struct {
	bucket   string
	prefix   string
	uploader Uploader
	now      func() time.Time
}

// NewS3Sink builds a sink from the default AWS credential chain
// (AWS_REGION, AWS_PROFILE, AWS_ACCESS_KEY_ID and friends).
func NewS3Sink(ctx context.Context, bucket, prefix string) (*S3Sink, error) {
	cfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3SinkWithUploader(bucket, prefix, manager.NewUploader(s3.NewFromConfig(cfg)))
}

// NewS3SinkWithUploader builds a sink around an existing uploader.
func NewS3SinkWithUploader(bucket, prefix string, up Uploader) (*S3Sink, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket required")
	}
	if up == nil {
		return nil, fmt.Errorf("uploader required")
	}
	return &S3Sink{
		bucket:   bucket,
		prefix:   prefix,
		uploader: up,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Key returns the object key r would be stored under right now.
func (s *S3Sink) Key(r *instance.Report) string {
	return objectKey(s.prefix, s.now(), r)
}

// Publish uploads r as JSON with S3-managed encryption.
func (s *S3Sink) Publish(ctx context.Context, r *instance.Report) error {
	var buf bytes.Buffer
	if err := instance.WriteReport(&buf, r); err != nil {
		return err
	}
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(s.Key(r)),
		Body:                 bytes.NewReader(buf.Bytes()),
		ContentType:          aws.String("application/json"),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("s3 upload failed: %w", err)
	}
	return nil
}

func (s *S3Sink) Close() error { return nil }

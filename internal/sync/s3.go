package sync

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Destination ships backups to an S3-compatible bucket. Every backup is
// uploaded twice: under a timestamped key so history survives, and under
// the configured key as the latest snapshot.
type S3Destination struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Destination creates an S3 destination writing under the given key.
// A non-empty endpoint switches to path-style addressing (MinIO and
// similar).
func NewS3Destination(ctx context.Context, bucket, key, region, endpoint string) (*S3Destination, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Destination{
		client: s3.NewFromConfig(cfg, s3opts...),
		bucket: bucket,
		key:    key,
	}, nil
}

// Name identifies the destination in logs.
func (d *S3Destination) Name() string {
	return "s3://" + d.bucket + "/" + d.key
}

// historyKey derives the timestamped object name from the configured key:
// "gazette/backup.jsonl" becomes "gazette/backup-20060102T150405Z.jsonl".
func (d *S3Destination) historyKey(takenAt time.Time) string {
	ext := path.Ext(d.key)
	return strings.TrimSuffix(d.key, ext) + "-" + takenAt.Format("20060102T150405Z") + ext
}

// Store uploads the backup under its history key and the latest key.
func (d *S3Destination) Store(ctx context.Context, b *Backup) error {
	for _, key := range []string{d.historyKey(b.TakenAt), d.key} {
		if err := d.put(ctx, key, b); err != nil {
			return err
		}
	}
	return nil
}

func (d *S3Destination) put(ctx context.Context, key string, b *Backup) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(b.Data),
		ContentType: aws.String("application/x-ndjson"),
		Metadata: map[string]string{
			"taken-at": b.TakenAt.Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", d.bucket, key, err)
	}
	return nil
}

// Package publish uploads rendered charts to S3-compatible object storage.
package publish

import (
	"bytes"
	"context"
	stderrors "errors"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/surveycharts/pkg/buildinfo"
	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/observability"
	"github.com/matzehuels/surveycharts/pkg/pipeline"
	"github.com/matzehuels/surveycharts/pkg/render"
)

// PutObjectAPI is the part of the S3 client the publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher writes artifacts under <prefix>/<run-id>/<chart>.<format>.
type S3Publisher struct {
	Client PutObjectAPI
	Bucket string
	Prefix string
	Logger *log.Logger
}

// Object describes one uploaded artifact.
type Object struct {
	Name string
	Key  string
	Size int
}

// URL returns the s3:// location of the object.
func (o Object) URL(bucket string) string {
	return "s3://" + bucket + "/" + o.Key
}

// NewS3 builds a publisher for target (s3://bucket/prefix) using the default
// AWS credential chain. Region and endpoint override the environment; a
// custom endpoint switches to path-style addressing for MinIO and similar.
func NewS3(ctx context.Context, target string, cfg config.PublishConfig) (*S3Publisher, error) {
	t, err := errors.ParseS3Target(target)
	if err != nil {
		return nil, err
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePublishFailed, err, "load AWS config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Publisher{Client: client, Bucket: t.Bucket, Prefix: t.Prefix}, nil
}

// Key returns the object key of one artifact.
func (p *S3Publisher) Key(runID, chart string, format render.Format) string {
	return path.Join(p.Prefix, runID, chart+format.Ext())
}

// Publish uploads every artifact of result in name order. It stops at the
// first failed upload; objects already written are returned with the error.
func (p *S3Publisher) Publish(ctx context.Context, result *pipeline.Result) ([]Object, error) {
	var objects []Object
	for _, name := range result.Names() {
		chart, format, err := pipeline.SplitArtifactName(name)
		if err != nil {
			return objects, errors.Wrap(errors.ErrCodeInternal, err, "publish")
		}
		data := result.Artifacts[name]
		obj := Object{Name: name, Key: p.Key(result.RunID, chart, render.Format(format)), Size: len(data)}

		if err := p.put(ctx, obj.Key, data, render.Format(format).ContentType()); err != nil {
			return objects, errors.Wrap(errors.ErrCodePublishFailed, err, "upload %s", obj.URL(p.Bucket))
		}
		p.logger().Debug("uploaded artifact", "key", obj.Key, "bytes", obj.Size)
		objects = append(objects, obj)
	}
	return objects, nil
}

func (p *S3Publisher) put(ctx context.Context, key string, data []byte, contentType string) error {
	start := time.Now()
	err := RetryWithBackoff(ctx, func() error {
		_, err := p.Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(p.Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(int64(len(data))),
			Metadata:      map[string]string{"generator": buildinfo.Generator()},
		})
		if isTransient(err) {
			return Retryable(err)
		}
		return err
	})
	observability.Publish().OnUpload(ctx, p.Bucket, key, len(data), time.Since(start), err)
	return err
}

// isTransient reports throttling and server errors.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var status interface{ HTTPStatusCode() int }
	if stderrors.As(err, &status) {
		code := status.HTTPStatusCode()
		return code == 429 || code >= 500
	}
	return false
}

func (p *S3Publisher) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}

package uploads

import (
	"context"
	"io"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// S3Conf configures the S3 (or MinIO) upload backend.
type S3Conf struct {
	Bucket       string `yaml:"bucket"`
	Region       string `yaml:"region"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	BaseEndpoint string `yaml:"base_endpoint"`
	// PublicBaseURL is the URL prefix objects are served from. When empty
	// the bucket is assumed to be reachable at BaseEndpoint/Bucket.
	PublicBaseURL string `yaml:"public_base_url"`
}

// S3Store puts uploads into an S3 bucket.
type S3Store struct {
	client *s3.Client
	conf   S3Conf
}

// NewS3Store builds the S3 client. A non-empty BaseEndpoint points it at a
// MinIO or other S3-compatible deployment.
func NewS3Store(ctx context.Context, conf S3Conf) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(conf.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "uploads: could not load aws config")
	}
	client := s3.NewFromConfig(
		cfg, func(o *s3.Options) {
			if conf.BaseEndpoint != "" {
				o.BaseEndpoint = aws.String(conf.BaseEndpoint)
				o.UsePathStyle = true
			}
		},
	)
	return &S3Store{client: client, conf: conf}, nil
}

// Save implements Store.
func (s *S3Store) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name := objectName(filename)
	_, err := s.client.PutObject(
		ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.conf.Bucket),
			Key:         aws.String(name),
			Body:        r,
			ContentType: aws.String(contentType),
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "uploads: s3 put failed")
	}
	base := s.conf.PublicBaseURL
	if base == "" {
		base, err = url.JoinPath(s.conf.BaseEndpoint, s.conf.Bucket)
		if err != nil {
			return "", errors.Wrap(err, "uploads: could not build object url")
		}
	}
	return url.JoinPath(base, name)
}

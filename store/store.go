// Package store reads open-data JSON documents from S3.
package store

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// ErrNotFound reports that the requested object does not exist in the bucket.
// Individual resource misses are expected and callers skip them.
var ErrNotFound = errors.New("object does not exist")

// Client fetches objects from a single bucket under a fixed key prefix.
// It is stateless and safe for concurrent use.
type Client struct {
	api    s3iface.S3API
	bucket string
	prefix string
}

// New builds a Client against the given region, bucket and key prefix.
// Credentials come from the default AWS chain (env vars or instance role).
func New(region, bucket, prefix string) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, errors.Wrap(err, "creating AWS session")
	}
	return &Client{api: s3.New(sess), bucket: bucket, prefix: prefix}, nil
}

// NewWithAPI builds a Client over an existing S3 API, used by tests.
func NewWithAPI(api s3iface.S3API, bucket, prefix string) *Client {
	return &Client{api: api, bucket: bucket, prefix: prefix}
}

// Get fetches one object by its key relative to the configured prefix.
// Missing keys and buckets return ErrNotFound.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	full := c.prefix + key
	result, err := c.api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(full),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchBucket, s3.ErrCodeNoSuchKey:
				return nil, ErrNotFound
			}
		}
		return nil, errors.Wrapf(err, "fetching S3 object %v", full)
	}
	defer result.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(result.Body); err != nil {
		return nil, errors.Wrapf(err, "reading S3 object %v", full)
	}
	return buf.Bytes(), nil
}

package store

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
	gotKeys []string
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	key := aws.StringValue(in.Key)
	f.gotKeys = append(f.gotKeys, key)
	data, ok := f.objects[key]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestGetAppliesPrefix(t *testing.T) {
	api := &fakeS3{objects: map[string][]byte{
		"open-data/data/competitions.json": []byte(`[]`),
	}}
	c := NewWithAPI(api, "bucket", "open-data/data/")

	data, err := c.Get(context.Background(), "competitions.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
	require.Len(t, api.gotKeys, 1)
	assert.Equal(t, "open-data/data/competitions.json", api.gotKeys[0])
}

func TestGetNotFound(t *testing.T) {
	c := NewWithAPI(&fakeS3{objects: map[string][]byte{}}, "bucket", "")

	_, err := c.Get(context.Background(), "events/999.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

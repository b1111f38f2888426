package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
)

type fakeObjects struct {
	objects map[string][]byte
	ctypes  map[string]string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, ctypes: map[string]string{}}
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = b
	f.ctypes[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_RoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newFakeObjects()
	var store ports.BlobStorage = NewS3WithAPI(zap.NewNop(), api, "uploads")

	require.NoError(t, store.EnsureLocation(ctx, "owner"))
	require.NoError(t, store.Put(ctx, "owner/q1.csv", []byte("a,b\n"), "text/csv"))
	assert.Equal(t, "text/csv", api.ctypes["owner/q1.csv"])

	got, err := store.Get(ctx, "owner/q1.csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(got))

	require.NoError(t, store.Delete(ctx, "owner/q1.csv"))
	_, err = store.Get(ctx, "owner/q1.csv")
	assert.ErrorIs(t, err, ports.ErrBlobNotFound)

	// deleting again is not an error
	assert.NoError(t, store.Delete(ctx, "owner/q1.csv"))
}

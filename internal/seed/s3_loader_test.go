package seed

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trem-do-bem/internal/model"
)

type fakeS3 struct {
	body string
	err  error
	key  string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.key = aws.ToString(params.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestS3Loader_Load(t *testing.T) {
	client := &fakeS3{body: `{"products":[{"id":"a","name":"A","pricePer100g":2.5}]}`}
	loader := newS3Loader(client, "bucket", zerolog.Nop())

	products, err := loader.Load(context.Background(), "seed/catalogue.json")
	require.NoError(t, err)
	assert.Equal(t, "seed/catalogue.json", client.key)
	require.Len(t, products, 1)
	assert.Equal(t, 2.5, products[0].PricePer100g)
}

func TestS3Loader_Load_Error(t *testing.T) {
	loader := newS3Loader(&fakeS3{err: errors.New("access denied")}, "bucket", zerolog.Nop())

	_, err := loader.Load(context.Background(), "seed/catalogue.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket=bucket")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	s3 := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			assert.Equal(t, "seed/catalogue.json", path, "S3 key should have prefix")
			return []model.Product{{ID: "s3"}}, nil
		},
	}
	local := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	products, err := NewFallbackLoader(s3, local, "seed/", zerolog.Nop()).Load(context.Background(), "catalogue.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"s3"}, productIDs(products))
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	s3 := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	local := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			assert.Equal(t, "catalogue.json", path, "local file path should not have prefix")
			return []model.Product{{ID: "local"}}, nil
		},
	}

	products, err := NewFallbackLoader(s3, local, "seed/", zerolog.Nop()).Load(context.Background(), "catalogue.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"local"}, productIDs(products))
	assert.Equal(t, 1, s3.calls)
}

func TestFallbackLoader_NoS3(t *testing.T) {
	local := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			return []model.Product{{ID: "local"}}, nil
		},
	}

	products, err := NewFallbackLoader(nil, local, "seed/", zerolog.Nop()).Load(context.Background(), "catalogue.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"local"}, productIDs(products))
}

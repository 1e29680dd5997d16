package storage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"report-sync/core/storage"
	"report-sync/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ storage.Client = (*mocks.Client)(nil)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "reports",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestClient_BucketExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch r.URL.Path {
		case "/reports", "/reports/":
			w.WriteHeader(http.StatusOK)
		case "/private", "/private/":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client, err := storage.NewClient(storage.Config{
		Endpoint:       srv.URL,
		AccessKey:      "testkey",
		SecretKey:      "testsecret",
		Region:         "us-east-1",
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)
	ctx := context.Background()

	exists, err := client.BucketExists(ctx, "reports")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.BucketExists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = client.BucketExists(ctx, "private")
	assert.Error(t, err)
}

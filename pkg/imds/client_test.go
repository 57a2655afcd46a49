package imds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMetadataServer mimics the IMDSv2 token-then-query protocol.
func fakeMetadataServer(t *testing.T, values map[string]string) *httptest.Server {
	t.Helper()

	const token = "AQAEAFake-Token=="

	mux := http.NewServeMux()
	mux.HandleFunc("/latest/api/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-aws-ec2-metadata-token-ttl-seconds") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(token))
	})
	mux.HandleFunc("/latest/meta-data/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-aws-ec2-metadata-token") != token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		path := r.URL.Path[len("/latest/meta-data/"):]
		value, ok := values[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(value))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientGet(t *testing.T) {
	srv := fakeMetadataServer(t, map[string]string{
		"instance-id": "i-123",
	})
	client := NewClient(WithBaseURL(srv.URL))

	value, err := client.Get(context.Background(), "instance-id")
	require.NoError(t, err)
	assert.Equal(t, "i-123", value)
}

func TestClientGetUnknownPath(t *testing.T) {
	srv := fakeMetadataServer(t, nil)
	client := NewClient(WithBaseURL(srv.URL))

	_, err := client.Get(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestGetOrSentinel(t *testing.T) {
	t.Run("value present", func(t *testing.T) {
		srv := fakeMetadataServer(t, map[string]string{"instance-type": "t2.micro"})
		client := NewClient(WithBaseURL(srv.URL))

		assert.Equal(t, "t2.micro", client.GetOrSentinel(context.Background(), "instance-type"))
	})

	t.Run("endpoint unreachable", func(t *testing.T) {
		// Point at a server that is already closed
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		client := NewClient(WithBaseURL(srv.URL), WithTimeout(500*time.Millisecond))
		assert.Equal(t, Sentinel, client.GetOrSentinel(context.Background(), "instance-id"))
	})
}

func TestTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestIdentity(t *testing.T) {
	t.Run("all attributes available", func(t *testing.T) {
		srv := fakeMetadataServer(t, map[string]string{
			"instance-id":                 "i-123",
			"instance-type":               "t2.micro",
			"placement/availability-zone": "us-east-1a",
			"public-hostname":             "example.com",
		})
		client := NewClient(WithBaseURL(srv.URL))

		id := client.Identity(context.Background())
		assert.Equal(t, "i-123", id.InstanceID)
		assert.Equal(t, "t2.micro", id.InstanceType)
		assert.Equal(t, "us-east-1a", id.AvailabilityZone)
		assert.Equal(t, "example.com", id.PublicHostname)
		assert.True(t, id.Complete())
	})

	t.Run("falls back to local hostname", func(t *testing.T) {
		srv := fakeMetadataServer(t, map[string]string{
			"instance-id":                 "i-456",
			"instance-type":               "t3.small",
			"placement/availability-zone": "us-east-1b",
			"local-hostname":              "ip-10-0-0-12.ec2.internal",
		})
		client := NewClient(WithBaseURL(srv.URL))

		id := client.Identity(context.Background())
		assert.Equal(t, "ip-10-0-0-12.ec2.internal", id.PublicHostname)
	})

	t.Run("token endpoint unreachable yields sentinels", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		client := NewClient(WithBaseURL(srv.URL), WithTimeout(500*time.Millisecond))
		id := client.Identity(context.Background())

		assert.Equal(t, Sentinel, id.InstanceID)
		assert.Equal(t, Sentinel, id.InstanceType)
		assert.Equal(t, Sentinel, id.AvailabilityZone)
		assert.Equal(t, Sentinel, id.PublicHostname)
		assert.False(t, id.Complete())
	})
}

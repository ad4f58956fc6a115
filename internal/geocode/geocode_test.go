package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	c := NewClient("test-key", time.Millisecond)
	c.baseURL = serverURL
	return c
}

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Taberna, Lisboa", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(`[{"lat":"38.7100","lon":"-9.1400"}]`))
	}))
	defer server.Close()

	lat, lng, err := testClient(server.URL).Lookup(context.Background(), "Taberna, Lisboa")
	require.NoError(t, err)
	assert.InDelta(t, 38.71, lat, 0.0001)
	assert.InDelta(t, -9.14, lng, 0.0001)
}

func TestLookupNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, _, err := testClient(server.URL).Lookup(context.Background(), "nowhere")
	assert.Error(t, err)
}

func TestLookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, _, err := testClient(server.URL).Lookup(context.Background(), "Taberna")
	assert.Error(t, err)
}

func TestLookupSpacesRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"1","lon":"2"}]`))
	}))
	defer server.Close()

	delay := 30 * time.Millisecond
	c := NewClient("test-key", delay)
	c.baseURL = server.URL

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, _, err := c.Lookup(context.Background(), "q")
		require.NoError(t, err)
	}

	// The limiter admits one request immediately, then one per delay.
	assert.GreaterOrEqual(t, time.Since(start), 2*delay)
}

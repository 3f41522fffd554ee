package geo_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linkmetry/linkmetry/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPInfoClient_Lookup(t *testing.T) {
	t.Run("normalizes a successful response", func(t *testing.T) {
		var gotPath string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{
				"ip": "8.8.8.8",
				"city": "Mountain View",
				"region": "California",
				"country": "US",
				"loc": "37.4056,-122.0775",
				"org": "AS15169 Google LLC",
				"postal": "94043",
				"timezone": "America/Los_Angeles"
			}`)
		}))
		defer srv.Close()

		client := geo.NewIPInfoClient("", geo.WithBaseURL(srv.URL))

		record, err := client.Lookup(context.Background(), "8.8.8.8")

		require.NoError(t, err)
		assert.Equal(t, "/8.8.8.8/json", gotPath)
		assert.Equal(t, "US", record.Country)
		assert.Equal(t, "US", record.CountryName)
		assert.Equal(t, "California", record.Region)
		assert.Equal(t, "Mountain View", record.City)
		assert.Equal(t, "94043", record.PostalCode)
		assert.Equal(t, "America/Los_Angeles", record.Timezone)
		assert.Equal(t, "37.4056,-122.0775", record.Location)
		assert.Equal(t, "AS15169 Google LLC", record.Org)
	})

	t.Run("sends token when configured", func(t *testing.T) {
		var gotToken string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.URL.Query().Get("token")

			fmt.Fprint(w, `{"country": "US"}`)
		}))
		defer srv.Close()

		client := geo.NewIPInfoClient("secret", geo.WithBaseURL(srv.URL))

		_, err := client.Lookup(context.Background(), "8.8.8.8")

		require.NoError(t, err)
		assert.Equal(t, "secret", gotToken)
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := geo.NewIPInfoClient("", geo.WithBaseURL(srv.URL))

		record, err := client.Lookup(context.Background(), "8.8.8.8")

		assert.Error(t, err)
		assert.Nil(t, record)
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "not json")
		}))
		defer srv.Close()

		client := geo.NewIPInfoClient("", geo.WithBaseURL(srv.URL))

		record, err := client.Lookup(context.Background(), "8.8.8.8")

		assert.Error(t, err)
		assert.Nil(t, record)
	})

	t.Run("unreachable server is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		srv.Close()

		client := geo.NewIPInfoClient("", geo.WithBaseURL(srv.URL))

		record, err := client.Lookup(context.Background(), "8.8.8.8")

		assert.Error(t, err)
		assert.Nil(t, record)
	})
}

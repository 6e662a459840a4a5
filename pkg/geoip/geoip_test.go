package geoip

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountryCode(t *testing.T) {
	t.Run("resolves a specific ip", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/203.0.113.9/country/", r.URL.Path)
			fmt.Fprint(w, "ES\n")
		}))
		defer srv.Close()

		country, err := NewClient(srv.URL).CountryCode(context.Background(), "203.0.113.9")
		require.NoError(t, err)
		assert.Equal(t, "ES", country)
	})

	t.Run("empty ip resolves the caller", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/country/", r.URL.Path)
			fmt.Fprint(w, "us")
		}))
		defer srv.Close()

		country, err := NewClient(srv.URL).CountryCode(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "US", country)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).CountryCode(context.Background(), "")
		assert.Error(t, err)
	})

	t.Run("garbage body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "Undefined")
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).CountryCode(context.Background(), "")
		assert.Error(t, err)
	})
}

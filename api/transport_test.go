package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/athenaeum-hq/athenaeum-go/api"
)

type staticSource struct {
	token string
	err   error
}

func (s staticSource) AccessToken(ctx context.Context) (string, error) {
	return s.token, s.err
}

func TestBearerTransport(t *testing.T) {
	t.Run("attaches bearer token", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
		}))
		defer server.Close()

		client := &http.Client{Transport: &api.BearerTransport{Source: staticSource{token: "a1"}}}
		resp, err := client.Get(server.URL)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, "Bearer a1", gotAuth)
	})

	t.Run("empty token sends no header", func(t *testing.T) {
		var hasAuth bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasAuth = r.Header["Authorization"]
		}))
		defer server.Close()

		client := &http.Client{Transport: &api.BearerTransport{Source: staticSource{}}}
		resp, err := client.Get(server.URL)
		require.NoError(t, err)
		resp.Body.Close()
		require.False(t, hasAuth)
	})

	t.Run("source failure abandons the request", func(t *testing.T) {
		var served bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			served = true
		}))
		defer server.Close()

		client := &http.Client{Transport: &api.BearerTransport{
			Source: staticSource{err: errors.New("refresh rejected")},
		}}
		_, err := client.Get(server.URL) //nolint:bodyclose // the request never leaves the transport
		require.Error(t, err)
		require.False(t, served)
	})

	t.Run("missing source", func(t *testing.T) {
		client := &http.Client{Transport: &api.BearerTransport{}}
		_, err := client.Get("http://localhost:0") //nolint:bodyclose
		require.Error(t, err)
	})
}

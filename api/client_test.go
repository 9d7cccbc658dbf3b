package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/athenaeum-hq/athenaeum-go/api"
)

type echoPayload struct {
	Name string `json:"name"`
}

func TestClient(t *testing.T) {
	t.Run("baseURL required", func(t *testing.T) {
		_, err := api.NewClient("")
		require.Error(t, err)
	})

	t.Run("get decodes JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/api/books/", r.URL.Path)
			require.NotEmpty(t, r.Header.Get("X-Request-ID"))
			w.Write([]byte(`{"name":"dune"}`))
		}))
		defer server.Close()

		client, err := api.NewClient(server.URL + "/")
		require.NoError(t, err)

		var out echoPayload
		require.NoError(t, client.Get(context.Background(), "api/books/", &out))
		require.Equal(t, "dune", out.Name)
	})

	t.Run("post sends JSON body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var in echoPayload
			require.NoError(t, jsonDecode(r, &in))
			require.Equal(t, "dune", in.Name)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"name":"dune"}`))
		}))
		defer server.Close()

		client, err := api.NewClient(server.URL + "/")
		require.NoError(t, err)

		var out echoPayload
		require.NoError(t, client.Post(context.Background(), "api/books/", echoPayload{Name: "dune"}, &out))
		require.Equal(t, "dune", out.Name)
	})

	t.Run("detail error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
		}))
		defer server.Close()

		client, err := api.NewClient(server.URL + "/")
		require.NoError(t, err)

		err = client.Get(context.Background(), "auth/user/", nil)
		require.Error(t, err)
		require.Equal(t, http.StatusUnauthorized, api.StatusCode(err))

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		require.True(t, apiErr.Unauthorized())
		require.Contains(t, apiErr.Message, "not valid")
	})

	t.Run("field validation error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"email":["Enter a valid email address."],"username":["This field is required.","Too short."]}`))
		}))
		defer server.Close()

		client, err := api.NewClient(server.URL + "/")
		require.NoError(t, err)

		err = client.Post(context.Background(), "auth/signup/", echoPayload{}, nil)
		require.Error(t, err)

		fieldErrors := api.FieldErrors(err)
		require.Equal(t, []string{"Enter a valid email address."}, fieldErrors["email"])
		require.Len(t, fieldErrors["username"], 2)
	})

	t.Run("undecodable error body still carries status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("<html>gateway exploded</html>"))
		}))
		defer server.Close()

		client, err := api.NewClient(server.URL + "/")
		require.NoError(t, err)

		err = client.Get(context.Background(), "api/books/", nil)
		require.Equal(t, http.StatusInternalServerError, api.StatusCode(err))
	})

	t.Run("malformed success body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("definitely not json"))
		}))
		defer server.Close()

		client, err := api.NewClient(server.URL + "/")
		require.NoError(t, err)

		var out echoPayload
		err = client.Get(context.Background(), "api/books/", &out)
		require.ErrorIs(t, err, api.ErrMalformedResponse)
	})

	t.Run("no content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client, err := api.NewClient(server.URL + "/")
		require.NoError(t, err)
		require.NoError(t, client.Delete(context.Background(), "api/books/1/"))
	})
}

func jsonDecode(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utenadev/gca4g/internal/errors"
	projectDomain "github.com/utenadev/gca4g/internal/project/domain"
)

type recordedRequest struct {
	method string
	path   string
	auth   string
	body   []byte
}

func newTestScriptClient(t *testing.T, status int, response string) (ScriptClient, chan recordedRequest) {
	t.Helper()
	requests := make(chan recordedRequest, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests <- recordedRequest{
			method: r.Method,
			path:   r.URL.EscapedPath(),
			auth:   r.Header.Get("Authorization"),
			body:   body,
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)

	client := NewScriptClient(server.Client(), server.URL+"/v1/projects", time.Second,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return client, requests
}

func TestScriptClient_GetContent(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_MapsFiles", func(t *testing.T) {
		client, requests := newTestScriptClient(t, http.StatusOK, `{"files":[
			{"name":"Code","type":"server_js","source":"function a() {}"},
			{"name":"Index","type":"html"}
		]}`)

		files, err := client.GetContent(ctx, "token", "abc123")
		require.NoError(t, err)
		assert.Equal(t, []projectDomain.GasFile{
			{Name: "Code", Type: projectDomain.FileTypeServerJS, Source: "function a() {}"},
			{Name: "Index", Type: projectDomain.FileTypeHTML, Source: ""},
		}, files)

		req := <-requests
		assert.Equal(t, http.MethodGet, req.method)
		assert.Equal(t, "/v1/projects/abc123:getContent", req.path)
		assert.Equal(t, "Bearer token", req.auth)
	})

	t.Run("Success_NoFiles", func(t *testing.T) {
		client, _ := newTestScriptClient(t, http.StatusOK, `{}`)

		files, err := client.GetContent(ctx, "token", "abc123")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("Error_NonSuccessStatus", func(t *testing.T) {
		client, _ := newTestScriptClient(t, http.StatusNotFound, `{"error":"not found"}`)

		_, err := client.GetContent(ctx, "token", "abc123")
		var apiErr *apperrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, `{"error":"not found"}`, apiErr.Body)
	})

	t.Run("Error_MalformedBody", func(t *testing.T) {
		client, _ := newTestScriptClient(t, http.StatusOK, `not json`)

		_, err := client.GetContent(ctx, "token", "abc123")
		assert.ErrorIs(t, err, apperrors.ErrMalformed)
	})
}

func TestScriptClient_UpdateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_SendsFiles", func(t *testing.T) {
		client, requests := newTestScriptClient(t, http.StatusOK, `{}`)

		err := client.UpdateContent(ctx, "token", "abc123", []projectDomain.GasFile{
			{Name: "Code", Type: projectDomain.FileTypeServerJS, Source: ""},
		})
		require.NoError(t, err)

		req := <-requests
		assert.Equal(t, http.MethodPut, req.method)
		assert.Equal(t, "/v1/projects/abc123:updateContent", req.path)
		assert.Equal(t, "Bearer token", req.auth)

		assert.JSONEq(t, `{"files":[{"name":"Code","type":"server_js","source":""}]}`, string(req.body))
	})

	t.Run("Error_Forbidden", func(t *testing.T) {
		client, _ := newTestScriptClient(t, http.StatusForbidden, "denied")

		err := client.UpdateContent(ctx, "token", "abc123", []projectDomain.GasFile{})
		var apiErr *apperrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
		assert.Equal(t, "denied", apiErr.Body)
	})
}

func TestScriptClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewScriptClient(server.Client(), server.URL, 20*time.Millisecond,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.GetContent(context.Background(), "token", "abc123")
	assert.ErrorIs(t, err, apperrors.ErrTimeout)
}

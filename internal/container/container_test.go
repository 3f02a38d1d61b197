package container_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CRYPTO_KEY", "01234567890123456789012345678901")

	cfg := config.DefaultConfig()
	cfg.Database = config.DatabaseConfig{
		Driver:      "sqlite",
		DSN:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		AutoMigrate: true,
	}
	cfg.Log.Level = "error"

	ctx := context.Background()
	require.NoError(t, container.Bootstrap(ctx, cfg))
	c, err := container.New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	srv := httptest.NewServer(c.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf strings.Builder
	_, _ = io.Copy(&buf, resp.Body)
	return resp, []byte(buf.String())
}

func TestEndToEnd(t *testing.T) {
	srv := newServer(t)

	resp, _ := call(t, srv, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodGet, "/projects", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := call(t, srv, http.MethodPost, "/auth/sign-up", "",
		`{"name":"Ana","email":"ana@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &auth))
	require.NotEmpty(t, auth.Token)

	resp, body = call(t, srv, http.MethodPost, "/projects", auth.Token, `{"name":"Thesis"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	resp, body = call(t, srv, http.MethodPost, "/projects/"+created.ID+"/nodes", auth.Token,
		`{"kind":"objective","path":{},"title":"Write chapters"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = call(t, srv, http.MethodPost, "/projects/"+created.ID+"/suggestions", auth.Token,
		`{"objectiveId":"x","goalId":"y"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, body = call(t, srv, http.MethodGet, "/tasks/board?view=matrix", auth.Token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = call(t, srv, http.MethodGet, "/journal/2024-01-01/summary", auth.Token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = call(t, srv, http.MethodGet, "/events/day/not-a-date", auth.Token, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, srv, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "organon_http_requests_total")
}

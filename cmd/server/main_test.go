package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_text_similarity/internal/config"
)

func newTestServer(t *testing.T) *server {
	t.Helper()
	logger, err := createLogger(config.Logging{File: filepath.Join(t.TempDir(), "server.log")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	cfg := config.Default()
	cfg.Segmenter.Kind = "whitespace"
	s, err := newServer(&cfg, logger, false)
	require.NoError(t, err)
	return s
}

func doRequest(s *server, method, path, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	req.SetBodyString(body)

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	s.handle(&ctx)
	return &ctx
}

func TestHandleScore(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		path     string
		body     string
		expected float64
	}{
		{"Identical", "/score", `{"original":"alpha beta gamma","comparison":"alpha beta gamma"}`, 1},
		{"Both empty", "/score", `{"original":"","comparison":""}`, 1},
		{"One empty", "/score", `{"original":"alpha","comparison":""}`, 0},
		{"Short text", "/score", `{"original":"alpha beta gamma","comparison":"alpha beta"}`, 0.5},
		{"Comprehensive identical", "/comprehensive", `{"original":"alpha beta gamma","comparison":"alpha beta gamma"}`, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := doRequest(s, fasthttp.MethodPost, tc.path, tc.body)
			require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
			assert.NotEmpty(t, string(ctx.Response.Header.Peek("X-Request-Id")))

			var resp Response
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
			assert.Equal(t, tc.expected, resp.Score)
		})
	}
}

func TestHandleCompare(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(s, fasthttp.MethodPost, "/compare", `{"original":"alpha beta gamma","comparison":"alpha beta"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp Response
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "short_text", resp.Path)
	require.NotNil(t, resp.Passed)
	assert.False(t, *resp.Passed)
	assert.Equal(t, 3, resp.Tokens1)
	assert.Equal(t, 2, resp.Tokens2)
	assert.Equal(t, 0.5, resp.Jaccard)
}

func TestHandleErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"Unknown path", fasthttp.MethodGet, "/nope", "", fasthttp.StatusNotFound},
		{"Wrong method", fasthttp.MethodGet, "/score", "", fasthttp.StatusMethodNotAllowed},
		{"Malformed body", fasthttp.MethodPost, "/score", "{", fasthttp.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := doRequest(s, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	ctx := doRequest(s, fasthttp.MethodGet, "/health", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"status":"ok"`)

	doRequest(s, fasthttp.MethodPost, "/score", `{"original":"alpha beta gamma","comparison":"alpha beta gamma"}`)
	ctx = doRequest(s, fasthttp.MethodGet, "/metrics", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "text_similarity_score_value")
}

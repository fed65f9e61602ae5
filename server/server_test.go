package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/gitkb/config"
	"github.com/poiesic/gitkb/knowledge"
	"github.com/poiesic/gitkb/responder"
	"github.com/poiesic/gitkb/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// responderService adapts a Responder and its knowledge set to Service.
type responderService struct {
	*responder.Responder
	set *knowledge.Set
}

func (s *responderService) Knowledge() *knowledge.Set { return s.set }

// stubService returns a fixed result, or panics when panicMsg is set.
type stubService struct {
	result   responder.Result
	panicMsg string
}

func (s *stubService) GenerateResponse(string) responder.Result {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.result
}

func (s *stubService) AvailableTopics() []string { return nil }

func (s *stubService) Knowledge() *knowledge.Set { return knowledge.Default() }

func newGitService(t *testing.T) Service {
	t.Helper()
	set := knowledge.Default()
	retriever, err := search.NewRetriever(set)
	require.NoError(t, err)
	resp, err := responder.NewResponder(retriever)
	require.NoError(t, err)
	return &responderService{Responder: resp, set: set}
}

func newTestServer(t *testing.T, svc Service, mutate ...func(*config.ServerConfig)) *Server {
	t.Helper()
	cfg := config.DefaultConfig().Server
	for _, m := range mutate {
		m(&cfg)
	}
	s, err := New(cfg, svc)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestNew(t *testing.T) {
	t.Run("nil service", func(t *testing.T) {
		_, err := New(config.DefaultConfig().Server, nil)
		assert.ErrorIs(t, err, ErrServiceRequired)
	})

	t.Run("missing static dir", func(t *testing.T) {
		cfg := config.DefaultConfig().Server
		cfg.StaticDir = filepath.Join(t.TempDir(), "missing")
		_, err := New(cfg, &stubService{})
		assert.ErrorIs(t, err, ErrStaticDir)
	})

	t.Run("static dir is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.html")
		require.NoError(t, os.WriteFile(path, []byte("hi"), 0644))
		cfg := config.DefaultConfig().Server
		cfg.StaticDir = path
		_, err := New(cfg, &stubService{})
		assert.ErrorIs(t, err, ErrStaticDir)
	})

	t.Run("addr from config", func(t *testing.T) {
		s := newTestServer(t, &stubService{}, func(c *config.ServerConfig) { c.Port = 8123 })
		assert.Equal(t, ":8123", s.Addr())
	})
}

func TestAgent(t *testing.T) {
	h := newTestServer(t, newGitService(t)).Handler()

	t.Run("answers from knowledge", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/agent", `{"query":"What is a commit?"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		body := decode[agentResponse](t, rec)
		assert.True(t, body.Success)
		assert.True(t, strings.HasPrefix(body.Response, "A commit"), body.Response)
		assert.True(t, strings.HasSuffix(body.Response, responder.ClosingPrompt))

		_, err := time.Parse(time.RFC3339, body.Timestamp)
		assert.NoError(t, err)
	})

	t.Run("no match falls back", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/agent", `{"query":"xyzzy plugh"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[agentResponse](t, rec)
		assert.True(t, body.Success)
		assert.Equal(t, responder.NoInformationMessage, body.Response)
	})

	invalid := []struct {
		name string
		body string
	}{
		{name: "missing query", body: `{}`},
		{name: "null query", body: `{"query":null}`},
		{name: "number query", body: `{"query":42}`},
		{name: "blank query", body: `{"query":"   "}`},
		{name: "empty query", body: `{"query":""}`},
		{name: "malformed json", body: `{"query":`},
		{name: "no body", body: ""},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/agent", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode[errorResponse](t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, msgQueryRequired, body.Error)
		})
	}
}

func TestAgent_Failure(t *testing.T) {
	svc := &stubService{result: responder.Failure{Fault: errors.New("boom")}}
	h := newTestServer(t, svc).Handler()

	rec := do(t, h, http.MethodPost, "/api/agent", `{"query":"anything"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[agentResponse](t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, responder.ApologyMessage, body.Response)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestAgent_BodyTooLarge(t *testing.T) {
	h := newTestServer(t, newGitService(t), func(c *config.ServerConfig) {
		c.MaxRequestSize = 16
	}).Handler()

	rec := do(t, h, http.MethodPost, "/api/agent", `{"query":"`+strings.Repeat("git ", 100)+`"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, msgRequestTooLarge, decode[errorResponse](t, rec).Error)
}

func TestTopics(t *testing.T) {
	h := newTestServer(t, newGitService(t)).Handler()

	rec := do(t, h, http.MethodGet, "/api/topics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[topicsResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, knowledge.Default().Topics(), body.Topics)
	assert.Equal(t, 15, body.Count)
}

func TestTopics_Empty(t *testing.T) {
	h := newTestServer(t, &stubService{}).Handler()

	rec := do(t, h, http.MethodGet, "/api/topics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"topics":[],"count":0}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, newGitService(t)).Handler()

	rec := do(t, h, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[healthResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, 15, body.Knowledge.Entries)
	assert.Equal(t, knowledge.Default().Digest().Hex(), body.Knowledge.Digest)
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestNotFound(t *testing.T) {
	h := newTestServer(t, &stubService{}).Handler()

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown api route", method: http.MethodGet, path: "/api/unknown"},
		{name: "unknown root route", method: http.MethodGet, path: "/nope"},
		{name: "root without static dir", method: http.MethodGet, path: "/"},
		{name: "wrong method", method: http.MethodGet, path: "/api/agent"},
		{name: "post to topics", method: http.MethodPost, path: "/api/topics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, "")
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"Route not found"}`, rec.Body.String())
		})
	}
}

func TestRecovery(t *testing.T) {
	h := newTestServer(t, &stubService{panicMsg: "kaboom"}).Handler()

	rec := do(t, h, http.MethodPost, "/api/agent", `{"query":"git"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRecovery_AccessLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	s, err := New(config.DefaultConfig().Server, &stubService{panicMsg: "kaboom"}, WithLogger(logger))
	require.NoError(t, err)

	rec := do(t, s.Handler(), http.MethodPost, "/api/agent", `{"query":"git"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var access map[string]any
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		if record["msg"] == "http request" {
			access = record
		}
	}
	require.NotNil(t, access, "no access log line in %s", logs.String())
	assert.Equal(t, float64(http.StatusInternalServerError), access["status"])
	assert.Equal(t, "/api/agent", access["path"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), access["request_id"])
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t, &stubService{}).Handler()

	t.Run("generated", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/health", "")
		_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	})

	t.Run("context round trip", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "abc")
		assert.Equal(t, "abc", RequestIDFromContext(ctx))
		assert.Equal(t, "", RequestIDFromContext(context.Background()))
	})
}

func TestCORS(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		h := newTestServer(t, &stubService{}).Handler()
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "https://example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disabled", func(t *testing.T) {
		h := newTestServer(t, &stubService{}, func(c *config.ServerConfig) {
			c.EnableCORS = false
		}).Handler()
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "https://example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestStaticDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Git for everyone</h1>"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "assets"), 0755))

	h := newTestServer(t, newGitService(t), func(c *config.ServerConfig) {
		c.StaticDir = dir
	}).Handler()

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Git for everyone")

	rec = do(t, h, http.MethodGet, "/api/unknown", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), msgRouteNotFound)

	rec = do(t, h, http.MethodGet, "/api/topics", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/nope"},
		{http.MethodGet, "/assets/"},
		{http.MethodPost, "/"},
		{http.MethodDelete, "/index.html"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.path, "")
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"success":false,"error":"Route not found"}`, rec.Body.String())
		})
	}

	rec = do(t, h, http.MethodHead, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestShutdownBeforeStart(t *testing.T) {
	s := newTestServer(t, &stubService{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.NoError(t, s.Start(), "start after shutdown returns without serving")
}

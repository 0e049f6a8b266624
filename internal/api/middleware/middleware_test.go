package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/api/middleware"
	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	buf, base := logger.SetupTestLogger(t)

	var seenTraceID string
	handler := middleware.NewTraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	}))

	t.Run("generates trace ID", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user", nil))

		_, err := uuid.Parse(seenTraceID)
		require.NoError(t, err)
		assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))
		logger.AssertLogContains(t, buf, `"trace_id":"`+seenTraceID+`"`)
		logger.AssertLogContains(t, buf, "request started")
	})

	t.Run("reuses incoming trace ID", func(t *testing.T) {
		incoming := "6F9619FF-8B86-D011-B42D-00C04FC964FF"
		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		req.Header.Set(shared.TraceIDHeader, incoming)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "6f9619ff-8b86-d011-b42d-00c04fc964ff", seenTraceID)
		assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))
	})

	rejected := []struct {
		name  string
		value string
	}{
		{"free text", "from-client"},
		{"oversized", strings.Repeat("a", 4096)},
		{"uuid without hyphens", "6f9619ff8b86d011b42d00c04fc964ff"},
		{"urn form", "urn:uuid:6f9619ff-8b86-d011-b42d-00c04fc964ff"},
		{"log injection", "6f9619ff-8b86-d011-b42d-00c04fc9\n\"x\":1"},
	}
	for _, tc := range rejected {
		t.Run("replaces "+tc.name, func(t *testing.T) {
			buf.Reset()
			req := httptest.NewRequest(http.MethodGet, "/user", nil)
			req.Header.Set(shared.TraceIDHeader, tc.value)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.NotEqual(t, tc.value, seenTraceID)
			_, err := uuid.Parse(seenTraceID)
			require.NoError(t, err)
			assert.Len(t, seenTraceID, 36)
			assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))
			logger.AssertLogContains(t, buf, "ignoring malformed incoming trace ID")
			logger.AssertLogNotContains(t, buf, tc.value)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	buf, base := logger.SetupTestLogger(t)

	handler := middleware.NewTraceMiddleware(base)(middleware.RequestLogger(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1}`))
		}),
	))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/user", nil))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)

	var completed map[string]interface{}
	for _, e := range entries {
		if e["msg"] == "request completed" {
			completed = e
		}
	}
	require.NotNil(t, completed, "expected a request completed entry")
	assert.Equal(t, "INFO", completed["level"])
	assert.Equal(t, float64(http.StatusCreated), completed["status"])
	assert.Equal(t, float64(len(`{"id":1}`)), completed["bytes"])
	assert.Equal(t, "/user", completed["path"])
	assert.NotEmpty(t, completed["trace_id"])
}

func TestCORS(t *testing.T) {
	called := false
	handler := middleware.NewCORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	t.Run("simple request", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/product", nil)
		req.Header.Set("Origin", "https://shop.example")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.True(t, called)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.CanonicalHeaderKey(shared.TraceIDHeader), w.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("preflight", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodOptions, "/product/1", nil)
		req.Header.Set("Origin", "https://shop.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, http.MethodPatch, w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight for a method outside the list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/product/1", nil)
		req.Header.Set("Origin", "https://shop.example")
		req.Header.Set("Access-Control-Request-Method", "TRACE")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("disabled", func(t *testing.T) {
		handler := middleware.NewRateLimit(0)(ok)
		for i := 0; i < 50; i++ {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user", nil))
			require.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("rejects beyond burst", func(t *testing.T) {
		_, _ = logger.SetupTestLogger(t)
		// A tiny rate keeps the bucket from refilling during the test.
		handler := middleware.NewRateLimit(0.001)(ok)

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/user", nil))
		assert.Equal(t, http.StatusOK, first.Code)

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/user", nil))
		assert.Equal(t, http.StatusTooManyRequests, second.Code)

		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
		assert.Equal(t, "Too many requests", body.Error)
	})
}

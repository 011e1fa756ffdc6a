package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestWithFields_SortedAndInherited(t *testing.T) {
	log, buf := newTestLogger(t)

	child := log.WithFields(map[string]any{"user": "alice", "req_id": "123"})
	child.Info("hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "k=v")
	assert.Less(t, strings.Index(out, "req_id=123"), strings.Index(out, "user=alice"))
}

func TestWithFields_EmptyReturnsSameLogger(t *testing.T) {
	log, _ := newTestLogger(t)
	assert.Same(t, log, log.WithFields(nil))
}

func TestNewLogger_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, false)

	log.Debug("hidden")
	log.Info("shown", "a", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"a":1`)
}

func TestFromContext_FallsBackToDiscard(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

func TestRequestLogger_LogsStatusAndAddedFields(t *testing.T) {
	log, buf := newTestLogger(t)

	handler := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		AddFields(r.Context(), map[string]any{"user_id": int64(7)})
		FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil))

	out := buf.String()
	assert.Contains(t, out, "msg=\"inside handler\"")
	assert.Contains(t, out, "msg=\"request completed\"")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "path=/api/goals")
	assert.Contains(t, out, "user_id=7")
}

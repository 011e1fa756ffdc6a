package logging

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// ContextKey is a type for context keys
type ContextKey string

const (
	// LoggerContextKey is the key for the logger in the request context
	LoggerContextKey ContextKey = "logger"
)

// RequestLogger is a middleware that logs HTTP requests
func RequestLogger(logger *Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logger.WithFields(map[string]any{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"remote_ip":  r.RemoteAddr,
			})

			reqLogger.Debug("request started")

			// Handlers further down may replace the logger (auth adds user_id),
			// so they get a holder they can update in place.
			holder := &loggerHolder{logger: reqLogger}
			ctx := context.WithValue(r.Context(), LoggerContextKey, holder)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			logLevel := slog.LevelInfo
			if status >= 500 {
				logLevel = slog.LevelError
			} else if status >= 400 {
				logLevel = slog.LevelWarn
			}

			holder.logger.Log(r.Context(), logLevel, "request completed",
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type loggerHolder struct {
	logger *Logger
}

// FromContext retrieves the request-scoped logger, or a discarding logger
// when the request did not pass through RequestLogger.
func FromContext(ctx context.Context) *Logger {
	if holder, ok := ctx.Value(LoggerContextKey).(*loggerHolder); ok {
		return holder.logger
	}
	return Discard()
}

// AddFields binds extra fields to the request-scoped logger for the rest of
// the request, including the completion line.
func AddFields(ctx context.Context, fields map[string]any) {
	if holder, ok := ctx.Value(LoggerContextKey).(*loggerHolder); ok {
		holder.logger = holder.logger.WithFields(fields)
	}
}

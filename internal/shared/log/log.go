// Package log is a thin context-aware wrapper around zerolog. Every entry
// written with a request context carries that request's id.
package log

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
)

type requestIDKey struct{}

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", "geogate").Logger()

// SetLevel sets the global level. Unknown levels fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func withContext(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if id := RequestID(ctx); id != "" {
		e = e.Str("request_id", id)
	}
	return e
}

func Debugf(ctx context.Context, format string, args ...any) {
	withContext(ctx, logger.Debug()).Msgf(format, args...)
}

func Info(ctx context.Context, msg string) {
	withContext(ctx, logger.Info()).Msg(msg)
}

func Infof(ctx context.Context, format string, args ...any) {
	withContext(ctx, logger.Info()).Msgf(format, args...)
}

func Warn(ctx context.Context, msg string) {
	withContext(ctx, logger.Warn()).Msg(msg)
}

func Warnf(ctx context.Context, format string, args ...any) {
	withContext(ctx, logger.Warn()).Msgf(format, args...)
}

func Error(ctx context.Context, err error, msg string) {
	withContext(ctx, logger.Error()).Err(err).Msg(msg)
}

func Errorf(ctx context.Context, err error, format string, args ...any) {
	withContext(ctx, logger.Error()).Err(err).Msgf(format, args...)
}

func ErrorWithStack(ctx context.Context, err error, msg string) {
	withContext(ctx, logger.Error()).Err(err).Bytes("stack", debug.Stack()).Msg(msg)
}

// Fatal logs and exits the process.
func Fatal(ctx context.Context, err error, msg string) {
	withContext(ctx, logger.Fatal()).Err(err).Msg(msg)
}

func RequestStart(ctx context.Context, r *http.Request, body []byte) {
	e := withContext(ctx, logger.Info()).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("remote_addr", r.RemoteAddr).
		Str("user_agent", r.UserAgent())
	if len(body) > 0 {
		e = e.Int("body_size", len(body))
	}
	e.Msg("request started")
}

func RequestEnd(ctx context.Context, r *http.Request, status int, elapsed time.Duration, size int) {
	e := logger.Info()
	if status >= 500 {
		e = logger.Error()
	} else if status >= 400 {
		e = logger.Warn()
	}
	withContext(ctx, e).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Dur("elapsed", elapsed).
		Int("response_size", size).
		Msg("request completed")
}

func PanicLog(ctx context.Context, r *http.Request, recovered any) {
	withContext(ctx, logger.Error()).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("panic", fmt.Sprintf("%v", recovered)).
		Bytes("stack", debug.Stack()).
		Msg("panic recovered")
}

package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

const (
	// A leitura da planilha costuma levar de 1 a 3s
	slowRequestThreshold = 5 * time.Second

	healthcheckPath     = "/healthcheck"
	correlationIDHeader = "X-Correlation-ID"
)

// LoggingMiddleware grava um ID de correlação no contexto e registra o resultado de cada requisição
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)
			w.Header().Set(correlationIDHeader, correlationID)

			// Consultado a cada poucos segundos pelo Render
			if r.URL.Path == healthcheckPath {
				next.ServeHTTP(w, r)
				return
			}

			lrw := newLoggingResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(lrw, r)

			logRequest(r, lrw, time.Since(start))
		})
	}
}

func logRequest(r *http.Request, lrw *loggingResponseWriter, elapsed time.Duration) {
	isDev := log.IsDevelopment()

	fields := log.Fields{
		"method":      r.Method,
		"path":        r.URL.Path,
		"status_code": lrw.statusCode,
		"duration_ms": elapsed.Milliseconds(),
	}
	if !isDev {
		fields["query"] = r.URL.RawQuery
		fields["remote_addr"] = r.RemoteAddr
		fields["user_agent"] = r.UserAgent()
		fields["bytes"] = lrw.written
	}

	logger := log.ForContext(r.Context()).WithFields(fields)

	msg := fmt.Sprintf("%s %s %d em %s", r.Method, r.URL.Path, lrw.statusCode, formatDuration(elapsed))
	if isDev && lrw.written > 0 {
		msg += " (" + humanize.Bytes(uint64(lrw.written)) + ")"
	}

	switch {
	case lrw.statusCode >= http.StatusInternalServerError:
		logger.Error(msg)
	case lrw.statusCode >= http.StatusBadRequest:
		logger.Warn(msg)
	default:
		logger.Info(msg)
	}

	if elapsed > slowRequestThreshold {
		logger.Warnf("Requisição lenta: acima de %s", formatDuration(slowRequestThreshold))
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter captura o status e a quantidade de bytes escritos
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int
	wroteHeader bool
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if !lrw.wroteHeader {
		lrw.statusCode = code
		lrw.wroteHeader = true
	}
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.wroteHeader = true
	n, err := lrw.ResponseWriter.Write(b)
	lrw.written += n
	return n, err
}

// LogPanicMiddleware recupera panics, registra a pilha e responde 500 em JSON
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]

				logger := log.ForContext(r.Context()).WithFields(log.Fields{
					"error":  recovered,
					"method": r.Method,
					"path":   r.URL.Path,
				})

				if log.IsDevelopment() {
					logger.Error("Panic ao atender requisição")
					fmt.Fprintf(os.Stderr, "\n%s\n", stack)
				} else {
					logger.WithField("stack_trace", string(stack)).Error("Panic ao atender requisição")
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
)

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	handler := limiter.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remoteAddr, forwarded string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/login", nil)
		req.RemoteAddr = remoteAddr
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234", "").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1235", "").Code)

	blocked := do("10.0.0.1:1236", "")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Contains(t, blocked.Body.String(), apiErrors.ErrTooManyRequests)
	assert.Equal(t, "1", blocked.Header().Get("Retry-After"))

	// Outro IP tem seu próprio limite
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1234", "").Code)

	// Sem proxy confiável, X-Forwarded-For não muda a identidade do visitante
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1237", "200.1.1.1").Code)

	// Após um segundo, um novo token é liberado
	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1238", "").Code)
}

func TestRateLimiter_DescartaVisitantesInativos(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.Len(t, limiter.visitors, 1)

	now = now.Add(limiterIdleTTL + time.Minute)
	assert.True(t, limiter.Allow("10.0.0.2"))
	assert.Len(t, limiter.visitors, 1)
}

func TestRateLimiter_ProxyConfiavel(t *testing.T) {
	limiter := NewRateLimiter(1, 1, "10.0.0.0/8")
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	handler := limiter.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("200.1.1.1"))
	assert.Equal(t, http.StatusOK, do("200.1.1.2"))
	assert.Equal(t, http.StatusTooManyRequests, do("200.1.1.1"))
	// Valor forjado à esquerda não escapa do limite do cliente real
	assert.Equal(t, http.StatusTooManyRequests, do("1.2.3.4, 200.1.1.1"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		forwarded  string
		expected   string
	}{
		{name: "RemoteAddr com porta", remoteAddr: "192.168.0.1:5000", expected: "192.168.0.1"},
		{name: "RemoteAddr sem porta", remoteAddr: "192.168.0.1", expected: "192.168.0.1"},
		{name: "X-Forwarded-For ignorado sem proxy confiável", remoteAddr: "10.0.0.1:80", forwarded: "200.1.1.1", expected: "10.0.0.1"},
		{name: "X-Forwarded-For ignorado quando a conexão não vem do proxy", trusted: []string{"10.0.0.0/8"}, remoteAddr: "172.16.0.9:80", forwarded: "200.1.1.1", expected: "172.16.0.9"},
		{name: "Cliente informado pelo proxy confiável", trusted: []string{"10.0.0.0/8"}, remoteAddr: "10.0.0.1:80", forwarded: " 200.1.1.1 ", expected: "200.1.1.1"},
		{name: "Último salto não confiável da cadeia", trusted: []string{"10.0.0.0/8"}, remoteAddr: "10.0.0.1:80", forwarded: "1.2.3.4, 200.1.1.1, 10.0.0.7", expected: "200.1.1.1"},
		{name: "Proxy confiável informado como IP", trusted: []string{"10.0.0.1"}, remoteAddr: "10.0.0.1:80", forwarded: "200.1.1.1", expected: "200.1.1.1"},
		{name: "Cadeia só com proxies confiáveis", trusted: []string{"10.0.0.0/8"}, remoteAddr: "10.0.0.1:80", forwarded: "10.0.0.5", expected: "10.0.0.5"},
		{name: "Valor inválido no X-Forwarded-For", trusted: []string{"10.0.0.0/8"}, remoteAddr: "10.0.0.1:80", forwarded: "não-é-ip", expected: "10.0.0.1"},
		{name: "Proxy confiável inválido é ignorado", trusted: []string{"rede-interna"}, remoteAddr: "10.0.0.1:80", forwarded: "200.1.1.1", expected: "10.0.0.1"},
		{name: "Proxy confiável IPv6", trusted: []string{"fd00::/8"}, remoteAddr: "[fd00::1]:80", forwarded: "2001:db8::1", expected: "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewRateLimiter(1, 1, tt.trusted...)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			assert.Equal(t, tt.expected, limiter.clientIP(req))
		})
	}
}

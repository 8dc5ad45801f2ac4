package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

// Limitadores sem uso por este tempo são descartados
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limita requisições por IP com token bucket
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	visitors map[string]*visitor
	mu       sync.Mutex
	now      func() time.Time

	// X-Forwarded-For só é considerado quando a conexão vem de um destes
	trustedProxies []netip.Prefix
}

// NewRateLimiter aceita proxies confiáveis como IPs ou blocos CIDR.
// Entradas inválidas são ignoradas com aviso.
func NewRateLimiter(perSecond float64, burst int, trustedProxies ...string) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}

	return &RateLimiter{
		limit:          rate.Limit(perSecond),
		burst:          burst,
		visitors:       make(map[string]*visitor),
		now:            time.Now,
		trustedProxies: parseTrustedProxies(trustedProxies),
	}
}

func parseTrustedProxies(entries []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}

		if addr, err := netip.ParseAddr(entry); err == nil {
			addr = addr.Unmap()
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}

		log.ForContext(context.Background()).WithField("proxy", entry).Warn("Proxy confiável inválido ignorado")
	}

	return prefixes
}

func (rl *RateLimiter) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, prefix := range rl.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}

	return false
}

// Allow consome um token do IP informado
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(rl.visitors, key)
		}
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Middleware responde 429 quando o IP excede o limite
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := rl.clientIP(r)
			if !rl.Allow(ip) {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"ip":   ip,
					"path": r.URL.Path,
				}).Warn("Limite de requisições excedido")

				w.Header().Set("Retry-After", "1")
				apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "Muitas requisições, tente novamente em instantes", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP usa RemoteAddr. Atrás de proxy confiável, percorre o
// X-Forwarded-For da direita para a esquerda e retorna o primeiro
// endereço que não pertence a um proxy confiável.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	remote := remoteHost(r.RemoteAddr)
	if !rl.isTrusted(remote) {
		return remote
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if _, err := netip.ParseAddr(hop); err != nil {
			// Cabeçalho adulterado: não há como confiar no restante da cadeia
			return remote
		}
		if !rl.isTrusted(hop) {
			return hop
		}
		remote = hop
	}

	return remote
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}

	return host
}

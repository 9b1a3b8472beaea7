package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
)

// limiterIdleTTL через сколько неиспользуемый лимитер удаляется
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов на пользователя (или IP для анонимных запросов)
type RateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	clients   map[string]*clientLimiter
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter создает лимитер: requestsPerMinute запросов в минуту с запасом burst
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	if burst <= 0 {
		burst = 5
	}
	return &RateLimiter{
		limit:   rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:   burst,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

// Middleware отклоняет запросы сверх лимита с 429
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientKey(r)) {
			w.Header().Set("Retry-After", "60")
			handlers.RespondError(w, http.StatusTooManyRequests, "слишком много запросов, попробуйте позже")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Allow проверяет, есть ли у клиента свободный токен
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

// sweep удаляет лимитеры неактивных клиентов, не чаще раза в минуту
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < time.Minute {
		return
	}
	l.lastSweep = now
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > limiterIdleTTL {
			delete(l.clients, key)
		}
	}
}

func clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return "ip:" + strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}

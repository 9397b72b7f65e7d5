package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig define a janela e o número máximo de requisições por IP
type RateLimitConfig struct {
	Window time.Duration
	Max    int
}

type rateLimitResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	RetryAfter string `json:"retryAfter"`
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter aplica um token bucket por IP de cliente
type RateLimiter struct {
	cfg      RateLimitConfig
	mu       sync.Mutex
	visitors map[string]*visitor
	lastGC   time.Time
	now      func() time.Time
}

// NewRateLimiter cria o limitador; o bucket reabastece Max tokens por Window
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Max <= 0 {
		cfg.Max = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	return &RateLimiter{
		cfg:      cfg,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Middleware retorna o handler gin do limitador
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := l.now()
		lim := l.limiterFor(c.ClientIP(), now)

		c.Header("RateLimit-Limit", strconv.Itoa(l.cfg.Max))
		c.Header("RateLimit-Remaining", strconv.Itoa(int(math.Max(0, math.Floor(lim.TokensAt(now)-1)))))

		res := lim.ReserveN(now, 1)
		if delay := res.DelayFrom(now); !res.OK() || delay > 0 {
			res.CancelAt(now)
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, rateLimitResponse{
				Success:    false,
				Error:      "Too many requests from this IP, please try again later.",
				RetryAfter: humanWindow(l.cfg.Window),
			})
			return
		}

		c.Next()
	}
}

// PrefixMiddleware aplica o limitador apenas aos caminhos com o prefixo informado
func (l *RateLimiter) PrefixMiddleware(prefix string) gin.HandlerFunc {
	limit := l.Middleware()
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, prefix) {
			c.Next()
			return
		}
		limit(c)
	}
}

func (l *RateLimiter) limiterFor(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > l.cfg.Window {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.cfg.Window {
				delete(l.visitors, key)
			}
		}
		l.lastGC = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		every := rate.Every(l.cfg.Window / time.Duration(l.cfg.Max))
		v = &visitor{limiter: rate.NewLimiter(every, l.cfg.Max)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func humanWindow(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return strconv.Itoa(m) + " minutes"
	}
	return d.String()
}

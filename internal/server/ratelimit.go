package server

import (
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	apperrors "github.com/renolab/renolab/internal/errors"
	"github.com/renolab/renolab/internal/i18n"
	"github.com/renolab/renolab/internal/metrics"
	"github.com/renolab/renolab/internal/observability"
)

// Rate limit response headers.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// rateLimit applies the named policy per client address. Routes whose policy
// is not configured are not limited.
func (s *Server) rateLimit(policy string) func(http.Handler) http.Handler {
	cfg, ok := s.cfg.RateLimit(policy)

	return func(next http.Handler) http.Handler {
		if !ok {
			if observability.ServerLogger != nil {
				observability.ServerLogger.Warn("rate limit policy not configured", zap.String("policy", policy))
			}
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := s.limiter.Check(clientKey(r), cfg)
			metrics.RecordRateLimitDecision(policy, decision.Allowed)
			metrics.SetRateLimitTrackedKeys(s.limiter.Len())

			if decision.Limit > 0 {
				w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
				w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))
				w.Header().Set(HeaderRateLimitReset, strconv.FormatInt(decision.ResetAt.Unix(), 10))
			}

			if decision.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			retry := decision.RetryAfter(s.limiter.Now())
			message := decision.Message
			if cfg.Message == "" {
				message = s.translator.Sprintf(i18n.FromRequest(r), i18n.RateLimited, retry)
			}
			HandleError(w, r, apperrors.NewRateLimitedError(message, retry, decision.Limit))
		})
	}
}

// clientKey is the client address after RealIP, without the port.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

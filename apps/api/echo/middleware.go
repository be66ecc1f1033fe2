package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core"
)

func adminMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin && contextHasAnyRole(ctx, roles) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// activeUserMiddleware rejects tokens of deleted or deactivated users.
func (a *authenticator) activeUserMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		usr, err := a.getContextUser(ctx)
		if err != nil {
			if core.IsNotFound(err) {
				return errUnauthorized
			}
			return errors.Wrap(err, "getting context user")
		}
		if !usr.IsActive {
			return errAccountDeactivated
		}
		return next(ctx)
	}
}

// rateLimiter counts attempts per key in fixed windows. A nil rateLimiter allows everything.
type rateLimiter struct {
	attempts *cache.Cache // {key: count}
	limit    int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	if limit <= 0 || window <= 0 {
		return nil
	}
	return &rateLimiter{
		attempts: cache.New(window, window),
		limit:    limit,
	}
}

// allow records an attempt and reports whether it is within the limit.
func (l *rateLimiter) allow(key string) bool {
	if l == nil {
		return true
	}
	_ = l.attempts.Add(key, 0, cache.DefaultExpiration) // opens a window unless one is running
	n, err := l.attempts.IncrementInt(key, 1)
	if err != nil { // the window closed in between
		return true
	}
	return n <= l.limit
}

func (l *rateLimiter) reset(key string) {
	if l != nil {
		l.attempts.Delete(key)
	}
}

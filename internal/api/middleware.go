package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"department-service/internal/model"
	"department-service/internal/token"
)

var (
	httpRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of http request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)
)

const claimsKey = "sessionClaims"

// bearerClaims is the single verification path for both gates. Any failure
// (missing header, bad signature, expired) reads the same to the client.
func bearerClaims(c *fiber.Ctx, tokens *token.Manager) (*token.Claims, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := tokens.Verify(parts[1])
	if err != nil {
		return nil, false
	}

	if _, err := claims.UserID(); err != nil {
		return nil, false
	}

	return claims, true
}

// RequireAuth admits any request carrying a valid session token and stashes
// the decoded claims on the request context.
func RequireAuth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := bearerClaims(c, tokens)
		if !ok {
			return fail(c, fiber.StatusUnauthorized, CodeAuthentication, "No valid token, authorization denied")
		}

		c.Locals(claimsKey, claims)

		return c.Next()
	}
}

// RequireAdmin is RequireAuth plus a role check. A valid token with the wrong
// role is forbidden, not unauthorized.
func RequireAdmin(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := bearerClaims(c, tokens)
		if !ok {
			return fail(c, fiber.StatusUnauthorized, CodeAuthentication, "No valid token, authorization denied")
		}

		if claims.Role != model.RoleAdmin {
			return fail(c, fiber.StatusForbidden, CodeAuthorization, "Admin access required")
		}

		c.Locals(claimsKey, claims)

		return c.Next()
	}
}

func ClaimsFromContext(c *fiber.Ctx) (*token.Claims, error) {
	claims, ok := c.Locals(claimsKey).(*token.Claims)
	if !ok {
		return nil, errors.New("claims not found in context")
	}
	return claims, nil
}

func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start).Seconds()
		statusCode := c.Response().StatusCode()

		if err != nil {
			var e *fiber.Error

			if errors.As(err, &e) {
				statusCode = e.Code
			} else {
				statusCode = fiber.StatusInternalServerError
			}
		}

		method := c.Method()
		path := c.Path()
		statusStr := fmt.Sprintf("%d", statusCode)

		httpRequestTotal.WithLabelValues(method, path, statusStr).Inc()
		httpRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)

		return err
	}
}

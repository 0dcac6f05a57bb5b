package middleware

import (
	"errors"
	"log"
	"strings"

	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const CtxViewerKey = "viewer_id"

// ViewerAuth resolves the bearer credential to a viewer identity. Requests
// without a usable credential continue as anonymous.
type ViewerAuth struct {
	jwt    jwt.Service
	logger *log.Logger
}

func NewViewerAuth(jwtSvc jwt.Service, logger *log.Logger) *ViewerAuth {
	return &ViewerAuth{jwt: jwtSvc, logger: logger}
}

func (m *ViewerAuth) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok || m.jwt == nil {
			return c.Next()
		}

		claims, err := m.jwt.ValidateAccessToken(token)
		if err != nil {
			if m.logger != nil && !errors.Is(err, jwt.ErrTokenExpired) {
				m.logger.Printf("[Auth] ignoring credential: %v", err)
			}
			return c.Next()
		}

		c.Locals(CtxViewerKey, claims.UserID)
		return c.Next()
	}
}

// Required rejects anonymous requests. It runs after Optional.
func (m *ViewerAuth) Required() fiber.Handler {
	return func(c fiber.Ctx) error {
		if Viewer(c) == uuid.Nil {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		return c.Next()
	}
}

// Viewer returns uuid.Nil for anonymous requests.
func Viewer(c fiber.Ctx) uuid.UUID {
	id, ok := c.Locals(CtxViewerKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}

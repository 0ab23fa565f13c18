package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/booksfrog/booksfrog/internal/domain"
	"github.com/booksfrog/booksfrog/internal/repository"
	apperrors "github.com/booksfrog/booksfrog/pkg/util"
)

const identityKey = "auth_identity"

// AuthMiddleware resolves bearer tokens into request identities. It never
// rejects a request on its own: missing, malformed or expired tokens leave the
// request anonymous and the route guards decide whether that is acceptable.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle runs once per request, before any business handler.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	username, err := m.tokens.Verify(parts[1])
	if err != nil {
		// Expired and forged tokens alike degrade to anonymous.
		return c.Next()
	}

	user, err := m.users.GetByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Next()
		}
		return apperrors.MapError(err)
	}

	c.Locals(identityKey, &domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Premium:  user.Premium,
	})
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

package middleware

import (
	"context"

	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// HeaderAPIKey is the request header carrying the caller's opaque credential.
const HeaderAPIKey = "api-key"

// CredentialResolver resolves a raw api key to the user it belongs to.
// Implementations must never compare raw keys against stored values; only
// digests are compared.
type CredentialResolver interface {
	ResolveAPIKey(ctx context.Context, rawKey string) (*models.User, error)
}

// APIKeyAuth returns middleware that authenticates requests via the api-key
// header. On success the resolved user is stored in Locals under "user" and
// its id under "userID"; the id is also mirrored into the request context for
// the context-aware logger.
func APIKeyAuth(resolver CredentialResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawKey := c.Get(HeaderAPIKey)
		if rawKey == "" {
			return models.RespondWithError(c,
				models.NewUnprocessableError("api-key header is required"))
		}

		user, err := resolver.ResolveAPIKey(c.UserContext(), rawKey)
		if err != nil {
			return models.RespondWithError(c, err)
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID)
		ctx := context.WithValue(c.UserContext(), UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response (and accepted request) header carrying the ray id.
const HeaderName = "X-Ray-ID"

// LocalsKey is where the ray id is stored on the context; see logger.WithRayID.
const LocalsKey = "ray_id"

// New returns a middleware tagging every request with a ray id.
// An incoming X-Ray-ID is kept so callers can correlate their own logs.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}

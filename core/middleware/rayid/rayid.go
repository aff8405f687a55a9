package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LocalsKey is the fiber locals key under which the ray ID is stored.
// logger.WithRayID reads the same key.
const LocalsKey = "ray_id"

// HeaderName is the response header carrying the request's ray ID.
const HeaderName = "X-Ray-ID"

// New returns middleware that assigns a unique ray ID to every request,
// storing it in locals for log correlation and echoing it in the response
// headers so callers can report it.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}

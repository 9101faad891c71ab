package handlers

import (
	"nexttalk-backend/internal/models"
	"nexttalk-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ActorMiddleware resolves the identity attributed to write operations and
// stores it in locals. There is no login flow; the identity comes from
// configuration and stands in for whatever session layer fronts this
// service.
func ActorMiddleware(c *fiber.Ctx) error {
	c.Locals("user_id", utils.GetEnv("ACTOR_ID", "current_user"))
	c.Locals("username", utils.GetEnv("ACTOR_NAME", "You"))
	return c.Next()
}

// ActorFromCtx reads the acting identity set by ActorMiddleware.
func ActorFromCtx(c *fiber.Ctx) models.Actor {
	return models.Actor{
		ID:   c.Locals("user_id").(string),
		Name: c.Locals("username").(string),
	}
}

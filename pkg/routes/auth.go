package routes

import (
	"github.com/DedS3t/monopoly-engine/app/controllers"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
)

// TableAuth verifies the bearer token and that it grants the :id table.
func TableAuth(secret []byte) []fiber.Handler {
	return []fiber.Handler{
		jwtware.New(jwtware.Config{SigningKey: secret}),
		controllers.RequireTable,
	}
}

func AuthRoutes(a *fiber.App, secret []byte) {
	route := a.Group("/session")

	route.Get("/", jwtware.New(jwtware.Config{SigningKey: secret}), controllers.Cur)
}

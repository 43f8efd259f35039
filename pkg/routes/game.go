package routes

import (
	"github.com/DedS3t/monopoly-engine/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func GameRoutes(a *fiber.App, h *controllers.GameController) {
	route := a.Group("/game")
	route.Post("/create", h.CreateGame)
	route.Get("/verify", h.VerifyGame)
	route.Get("/all", h.GetAllGames)
	route.Get("/record/:id", h.GetRecord)

	auth := TableAuth(h.Secret)
	play := func(method, path string, handler fiber.Handler) {
		handlers := append(append([]fiber.Handler{}, auth...), handler)
		route.Add(method, path, handlers...)
	}
	play(fiber.MethodGet, "/:id", h.GetGame)
	play(fiber.MethodDelete, "/:id", h.CloseGame)
	play(fiber.MethodGet, "/:id/log", h.GetLog)
	play(fiber.MethodGet, "/:id/standings", h.GetStandings)
	play(fiber.MethodPost, "/:id/turn", h.TakeTurn)
	play(fiber.MethodPost, "/:id/answer", h.Answer)
	play(fiber.MethodPost, "/:id/develop/:pos", h.AddRestaurant)
	play(fiber.MethodPost, "/:id/sell-restaurant/:pos", h.SellRestaurant)
	play(fiber.MethodPost, "/:id/pawn/:pos", h.Pawn)
	play(fiber.MethodPost, "/:id/unpawn/:pos", h.Unpawn)
	play(fiber.MethodPost, "/:id/trade", h.Trade)
	play(fiber.MethodPost, "/:id/drop-out", h.DropOut)
	play(fiber.MethodPost, "/:id/end", h.EndGame)
}

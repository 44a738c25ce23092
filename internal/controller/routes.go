package controller

import (
	"github.com/benbeisheim/chess-rules/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes mounts the REST and websocket endpoints on app.
func SetupRoutes(app *fiber.App, gc *GameController, wsc *WebSocketController, wsConfig websocket.Config) {
	app.Use("/ws/*", middleware.EnsureClientID())
	app.Get("/ws/sessions/:id", middleware.WebSocketUpgrade(), websocket.New(wsc.HandleConnection, wsConfig))

	api := app.Group("/api", middleware.EnsureClientID())
	sessions := api.Group("/sessions")
	sessions.Post("/", gc.CreateSession)
	sessions.Get("/:id", gc.GetView)
	sessions.Post("/:id/click", gc.Click)
	sessions.Post("/:id/promotion", gc.Promote)
	sessions.Post("/:id/replay", gc.Replay)
	sessions.Delete("/:id", gc.Exit)
}

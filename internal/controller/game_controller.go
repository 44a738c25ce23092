package controller

import (
	"errors"

	"github.com/apex/log"
	"github.com/benbeisheim/chess-rules/internal/middleware"
	"github.com/benbeisheim/chess-rules/internal/service"
	"github.com/benbeisheim/chess-rules/internal/ws"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// errorStatus maps service errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrSessionClosed):
		return fiber.StatusGone
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error("unexpected service error")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateSession(c *fiber.Ctx) error {
	sessionID := gc.gameService.CreateSession(middleware.ClientID(c))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": sessionID,
	})
}

func (gc *GameController) GetView(c *fiber.Ctx) error {
	view, err := gc.gameService.View(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Click(c *fiber.Ctx) error {
	var req ws.Click
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid click body",
		})
	}

	out, err := gc.gameService.Click(c.Params("id"), req.Column, req.Row, req.Button)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	var req ws.Promote
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid promotion body",
		})
	}

	out, err := gc.gameService.Promote(c.Params("id"), req.Column, req.Row, req.Piece)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (gc *GameController) Replay(c *fiber.Ctx) error {
	out, err := gc.gameService.Replay(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (gc *GameController) Exit(c *fiber.Ctx) error {
	events, err := gc.gameService.Exit(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"events": events,
	})
}

package routes

import (
	"errors"

	"github.com/busrute/busrute/pkg/dataaggregator"
	"github.com/busrute/busrute/pkg/dataaggregator/source"
	"github.com/busrute/busrute/pkg/planner"
	"github.com/gofiber/fiber/v2"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, planner.ErrInputIncomplete), errors.Is(err, planner.ErrIndexOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, planner.ErrNoRouteFound), errors.Is(err, planner.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, planner.ErrSuperseded):
		return fiber.StatusConflict
	case errors.Is(err, source.ErrNetwork), errors.Is(err, source.ErrEmptyResult), errors.Is(err, dataaggregator.NoMatchingSourceError):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	c.Status(statusForError(err))
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/talent-ats/internal/repositories"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// lookupError maps a repository error to a response; missing rows become 404.
func lookupError(c *fiber.Ctx, err error, what string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, what+" not found")
	case errors.Is(err, repositories.ErrTenantRequired):
		return errorJSON(c, fiber.StatusBadRequest, "company is required")
	default:
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load "+what)
	}
}

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-planner/internal/service"
	"github.com/maheshrc27/content-planner/internal/transfer"
)

// ParsePayload reads a JSON or form body into an untyped payload.
func ParsePayload(c *fiber.Ctx) (transfer.Payload, error) {
	ctype := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(ctype, fiber.MIMEApplicationForm):
		payload := transfer.Payload{}
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			payload[string(key)] = string(value)
		})
		return payload, nil
	case strings.HasPrefix(ctype, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		payload := make(transfer.Payload, len(form.Value))
		for k, v := range form.Value {
			if len(v) > 0 {
				payload[k] = v[0]
			}
		}
		return payload, nil
	}

	payload := transfer.Payload{}
	if len(c.Body()) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = transfer.Payload{}
	}
	return payload, nil
}

// RespondError maps service errors onto HTTP statuses. Storage failures are
// logged and reported as 500 without detail.
func RespondError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	var notFound *service.NotFoundError
	var depErr *service.DependencyError

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(verr.Fields)
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": notFound.Error(),
		})
	case errors.As(err, &depErr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": depErr.Err.Error(),
		})
	default:
		slog.Error(err.Error(), "method", c.Method(), "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}

func postID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}
	return int64(id), nil
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-planner/internal/service"
)

type LookupHandler struct {
	quotes service.QuoteService
	images service.ImageService
}

func NewLookupHandler(quotes service.QuoteService, images service.ImageService) *LookupHandler {
	return &LookupHandler{quotes: quotes, images: images}
}

func (h *LookupHandler) RandomQuote(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.quotes.RandomQuote(c.UserContext()))
}

func (h *LookupHandler) FetchImage(c *fiber.Ctx) error {
	image, err := h.images.FetchImage(c.UserContext(), c.Query("query"))
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(image)
}

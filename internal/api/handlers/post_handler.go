package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-planner/internal/models"
	"github.com/maheshrc27/content-planner/internal/service"
	"github.com/maheshrc27/content-planner/internal/transfer"
)

type PostHandler struct {
	s service.PostService
}

func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{s: service}
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.s.List(c.UserContext(), transfer.PostFilter{
		Search:   c.Query("search"),
		Platform: c.Query("platform"),
		Status:   c.Query("status"),
	})
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	payload, err := ParsePayload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Unable to parse request body",
		})
	}

	post, err := h.s.Create(c.UserContext(), payload)
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	post, err := h.s.Get(c.UserContext(), id)
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	return h.update(c, h.s.Update)
}

func (h *PostHandler) PatchPost(c *fiber.Ctx) error {
	return h.update(c, h.s.Patch)
}

type updateFunc func(ctx context.Context, id int64, payload transfer.Payload) (*models.Post, error)

func (h *PostHandler) update(c *fiber.Ctx, apply updateFunc) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	payload, err := ParsePayload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Unable to parse request body",
		})
	}

	post, err := apply(c.UserContext(), id, payload)
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	if err := h.s.Delete(c.UserContext(), id); err != nil {
		return RespondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

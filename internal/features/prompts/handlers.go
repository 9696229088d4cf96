package prompts

import (
	"errors"

	"github.com/forever-stories/backend/internal/auth"
	"github.com/forever-stories/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type PromptHandler struct {
	service *PromptService
}

func NewPromptHandler(service *PromptService) *PromptHandler {
	return &PromptHandler{service: service}
}

func (h *PromptHandler) Today(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	result, err := h.service.TodayPrompt(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to get prompt"})
	}
	return c.JSON(result)
}

func (h *PromptHandler) Next(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	result, err := h.service.NextPrompt(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to get next prompt"})
	}
	return c.JSON(result)
}

func (h *PromptHandler) Respond(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	result, err := h.service.Respond(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyResponse):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Response cannot be empty"})
		case errors.Is(err, ErrAlreadyAnsweredToday):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to save response"})
	}
	return c.JSON(result)
}

func (h *PromptHandler) History(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	responses, err := h.service.History(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to get history"})
	}
	return c.JSON(fiber.Map{"responses": responses})
}

func (h *PromptHandler) Stats(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	stats, err := h.service.Stats(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to get stats"})
	}
	return c.JSON(stats)
}

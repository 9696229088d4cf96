package persona

import (
	"errors"

	"github.com/forever-stories/backend/internal/auth"
	"github.com/forever-stories/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
}

type FollowUpRequest struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

type PersonaHandler struct {
	service *PersonaService
}

func NewPersonaHandler(service *PersonaService) *PersonaHandler {
	return &PersonaHandler{service: service}
}

func (h *PersonaHandler) Chat(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	result, err := h.service.Reply(c.UserContext(), userID, req.Message, req.History)
	if err != nil {
		if errors.Is(err, ErrMessageRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to generate response"})
	}

	return c.JSON(result)
}

func (h *PersonaHandler) GenerateFollowUps(c *fiber.Ctx) error {
	if _, err := auth.GetUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req FollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	questions, err := h.service.GenerateFollowUps(c.UserContext(), req.Question, req.Response)
	if err != nil {
		if errors.Is(err, ErrQuestionRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to generate follow-up questions"})
	}

	return c.JSON(fiber.Map{"followUpQuestions": questions})
}

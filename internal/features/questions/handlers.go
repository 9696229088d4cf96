package questions

import (
	"errors"

	"github.com/forever-stories/backend/internal/auth"
	"github.com/forever-stories/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SubmitRequest struct {
	OwnerID      uuid.UUID `json:"ownerId"`
	QuestionText string    `json:"questionText"`
}

type QuestionHandler struct {
	service *QuestionService
}

func NewQuestionHandler(service *QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

func (h *QuestionHandler) Submit(c *fiber.Ctx) error {
	submitterID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	question, err := h.service.Submit(submitterID, auth.GetUserEmail(c), req.OwnerID, req.QuestionText)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNoAccess), errors.Is(err, ErrPermissionDenied):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to submit question"})
	}

	return c.JSON(fiber.Map{"success": true, "question": question, "message": "Question submitted successfully"})
}

func (h *QuestionHandler) ListSubmitted(c *fiber.Ctx) error {
	ownerID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	questions, err := h.service.ListSubmitted(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to get questions"})
	}

	return c.JSON(fiber.Map{"questions": questions})
}

func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	questionID, err := uuid.Parse(c.Params("questionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid question id"})
	}

	if err := h.service.Delete(ownerID, questionID); err != nil {
		switch {
		case errors.Is(err, ErrQuestionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to delete question"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Question deleted successfully"})
}

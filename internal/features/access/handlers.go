package access

import (
	"errors"

	"github.com/forever-stories/backend/internal/auth"
	"github.com/forever-stories/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AccessHandler struct {
	service *AccessService
}

func NewAccessHandler(service *AccessService) *AccessHandler {
	return &AccessHandler{service: service}
}

func (h *AccessHandler) Invite(c *fiber.Ctx) error {
	ownerID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	grant, err := h.service.Invite(ownerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrEmptyPermissions), errors.Is(err, ErrAlreadyGranted):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to send invitation"})
	}

	return c.JSON(fiber.Map{"success": true, "grant": grant, "message": "Invitation sent successfully"})
}

func (h *AccessHandler) ListGrants(c *fiber.Ctx) error {
	ownerID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	grants, err := h.service.ListGrants(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to get access grants"})
	}

	return c.JSON(fiber.Map{"grants": grants})
}

func (h *AccessHandler) UpdateGrant(c *fiber.Ctx) error {
	ownerID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	grantID, err := uuid.Parse(c.Params("grantId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid grant id"})
	}

	var req UpdateGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	grant, err := h.service.UpdateGrant(ownerID, grantID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyPermissions):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrGrantNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to update permissions"})
	}

	return c.JSON(fiber.Map{"success": true, "grant": grant})
}

func (h *AccessHandler) Revoke(c *fiber.Ctx) error {
	ownerID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	grantID, err := uuid.Parse(c.Params("grantId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid grant id"})
	}

	if err := h.service.Revoke(ownerID, grantID); err != nil {
		switch {
		case errors.Is(err, ErrGrantNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to revoke access"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Access revoked successfully"})
}

func (h *AccessHandler) ListMyAccess(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	accessList, err := h.service.ListMyAccess(userID, auth.GetUserEmail(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to get access list"})
	}

	return c.JSON(fiber.Map{"accessList": accessList})
}

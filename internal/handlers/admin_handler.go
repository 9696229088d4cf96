package handlers

import (
	"github.com/forever-stories/backend/internal/dto"
	"github.com/forever-stories/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// Logs returns recent system logs, filterable by level and bounded by limit.
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 500 {
		limit = 100
	}

	query := h.db.Model(&models.SystemLog{}).Order("timestamp DESC").Limit(limit)
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}

	var logs []models.SystemLog
	if err := query.Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch logs",
		})
	}

	return c.JSON(fiber.Map{"logs": logs, "count": len(logs)})
}

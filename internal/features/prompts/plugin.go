package prompts

import (
	"github.com/forever-stories/backend/internal/config"
	"github.com/forever-stories/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PromptsPlugin struct{}

func New() *PromptsPlugin {
	return &PromptsPlugin{}
}

func (p *PromptsPlugin) ID() string { return "prompts" }

func (p *PromptsPlugin) Models() []interface{} {
	return []interface{}{
		&models.Prompt{},
		&models.PromptResponse{},
	}
}

func (p *PromptsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewPromptService(db)
	handler := NewPromptHandler(svc)

	router.Get("/prompts/today", handler.Today)
	router.Get("/prompts/next", handler.Next)
	router.Post("/prompts/respond", handler.Respond)
	router.Get("/prompts/history", handler.History)
	router.Get("/user/stats", handler.Stats)
}

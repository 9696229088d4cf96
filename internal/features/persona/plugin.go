package persona

import (
	"github.com/forever-stories/backend/internal/config"
	"github.com/forever-stories/backend/internal/llm"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PersonaPlugin struct{}

func New() *PersonaPlugin {
	return &PersonaPlugin{}
}

func (p *PersonaPlugin) ID() string { return "persona" }

// Models is empty: the persona reads prompt_responses and profiles owned
// by other features.
func (p *PersonaPlugin) Models() []interface{} {
	return nil
}

func (p *PersonaPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewPersonaService(db, llm.NewClient(cfg))
	handler := NewPersonaHandler(svc)

	router.Post("/ai/persona", handler.Chat)
	router.Post("/prompts/generate-followups", handler.GenerateFollowUps)
}

package questions

import (
	"github.com/forever-stories/backend/internal/config"
	"github.com/forever-stories/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuestionsPlugin struct{}

func New() *QuestionsPlugin {
	return &QuestionsPlugin{}
}

func (p *QuestionsPlugin) ID() string { return "questions" }

func (p *QuestionsPlugin) Models() []interface{} {
	return []interface{}{
		&models.SubmittedQuestion{},
	}
}

func (p *QuestionsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewQuestionService(db)
	handler := NewQuestionHandler(svc)

	router.Post("/questions/submit", handler.Submit)
	router.Get("/questions/submitted", handler.ListSubmitted)
	router.Delete("/questions/:questionId", handler.Delete)
}

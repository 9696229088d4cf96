package profile

import (
	"github.com/forever-stories/backend/internal/config"
	"github.com/forever-stories/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProfilePlugin struct{}

func New() *ProfilePlugin {
	return &ProfilePlugin{}
}

func (p *ProfilePlugin) ID() string { return "profile" }

func (p *ProfilePlugin) Models() []interface{} {
	// Profile lives in the shared models package because other features
	// read it (timezone, interests), but this plugin owns its migration.
	return []interface{}{
		&models.Profile{},
	}
}

func (p *ProfilePlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewProfileService(db)
	handler := NewProfileHandler(svc)

	router.Post("/profile/intake", handler.SaveIntake)
	router.Get("/profile", handler.GetProfile)

	router.Get("/user/account", handler.GetAccount)
	router.Put("/user/account/basic", handler.UpdateBasic)
	router.Put("/user/account/password", handler.UpdatePassword)
	router.Put("/user/account/profile", handler.UpdateProfileDetails)
}

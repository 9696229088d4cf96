package access

import (
	"github.com/forever-stories/backend/internal/config"
	"github.com/forever-stories/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AccessPlugin struct{}

func New() *AccessPlugin {
	return &AccessPlugin{}
}

func (p *AccessPlugin) ID() string { return "access" }

func (p *AccessPlugin) Models() []interface{} {
	return []interface{}{
		&models.AccessGrant{},
	}
}

func (p *AccessPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewAccessService(db)
	handler := NewAccessHandler(svc)

	router.Post("/access/invite", handler.Invite)
	router.Get("/access/grants", handler.ListGrants)
	router.Put("/access/grant/:grantId", handler.UpdateGrant)
	router.Delete("/access/grant/:grantId", handler.Revoke)
	router.Get("/access/my-access", handler.ListMyAccess)
}

package features

import (
	"github.com/forever-stories/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin is a self-contained feature: it declares its models for migration
// and mounts its routes on the authenticated API group.
type Plugin interface {
	ID() string
	Models() []interface{}
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

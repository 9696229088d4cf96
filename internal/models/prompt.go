package models

import (
	"time"

	"github.com/google/uuid"
)

// Prompt is a catalog question. The catalog is seeded at startup and never
// written by the API.
type Prompt struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Category  string    `gorm:"size:50;not null;index" json:"category"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

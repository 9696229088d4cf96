package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile holds the intake answers that personalize prompt selection and
// the persona context. One row per user, upserted by the intake endpoint.
type Profile struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	BirthDate      *string        `gorm:"size:10" json:"birth_date"`
	BirthLocation  *string        `gorm:"size:255" json:"birth_location"`
	LifeEvents     string         `gorm:"type:text" json:"life_events"`
	Interests      string         `gorm:"type:text" json:"interests"`
	Timezone       string         `gorm:"size:64;default:'America/Phoenix'" json:"timezone"`
	AdditionalInfo datatypes.JSON `gorm:"type:jsonb" json:"additional_info"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	User           User           `gorm:"foreignKey:UserID" json:"-"`
}

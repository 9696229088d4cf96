package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Permissions controls what a family member can do with the owner's story.
// Stored as jsonb so grants can be extended without a migration.
type Permissions struct {
	ViewStories     bool `json:"viewStories"`
	ChatWithAI      bool `json:"chatWithAI"`
	SubmitQuestions bool `json:"submitQuestions"`
}

// IsEmpty reports whether no permission is set. Grants with empty
// permissions are rejected at the service layer.
func (p Permissions) IsEmpty() bool {
	return !p.ViewStories && !p.ChatWithAI && !p.SubmitQuestions
}

func (p Permissions) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Permissions) Scan(value interface{}) error {
	if value == nil {
		*p = Permissions{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for Permissions")
	}
	return json.Unmarshal(data, p)
}

// Grant statuses.
const (
	GrantStatusActive  = "active"
	GrantStatusRevoked = "revoked"
)

// AccessGrant lets the owner share their story with a family member,
// identified by email. RecipientUserID is resolved at invite time when the
// recipient already has an account.
type AccessGrant struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerUserID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"owner_user_id"`
	RecipientEmail  string      `gorm:"size:255;not null;index" json:"recipient_email"`
	RecipientUserID *uuid.UUID  `gorm:"type:uuid;index" json:"recipient_user_id"`
	Relationship    string      `gorm:"size:50" json:"relationship"`
	Permissions     Permissions `gorm:"type:jsonb" json:"permissions"`
	Status          string      `gorm:"size:20;not null;default:'active';index" json:"status"`
	GrantedAt       time.Time   `json:"granted_at"`
	RevokedAt       *time.Time  `json:"revoked_at"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Owner           User        `gorm:"foreignKey:OwnerUserID" json:"-"`
}

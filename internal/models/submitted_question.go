package models

import (
	"time"

	"github.com/google/uuid"
)

// Submitted question statuses.
const (
	QuestionStatusPending = "pending"
	QuestionStatusUsed    = "used"
)

// SubmittedQuestion is a question a family member asks the owner. Pending
// questions take priority over catalog prompts on the daily endpoint; a
// question flips to used exactly once, even under concurrent requests.
type SubmittedQuestion struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerUserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_user_id"`
	SubmitterUserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"submitter_user_id"`
	SubmitterEmail  string     `gorm:"size:255" json:"submitter_email"`
	QuestionText    string     `gorm:"type:text;not null" json:"question_text"`
	Status          string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	UsedAt          *time.Time `json:"used_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Owner           User       `gorm:"foreignKey:OwnerUserID" json:"-"`
	Submitter       User       `gorm:"foreignKey:SubmitterUserID" json:"-"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Response types.
const (
	ResponseTypeDaily     = "daily"
	ResponseTypeBonus     = "bonus"
	ResponseTypeFreewrite = "freewrite"
	ResponseTypeSubmitted = "submitted"
)

// PromptResponse is a saved story. DailyDate is the user's local calendar
// day (YYYY-MM-DD) for daily responses and nil for every other type, so the
// composite unique index only constrains dailies. The index is what makes
// the one-daily-per-day rule hold under concurrent writes.
type PromptResponse struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_responses_user_daily" json:"user_id"`
	PromptID            *uuid.UUID `gorm:"type:uuid;index" json:"prompt_id"`
	SubmittedQuestionID *uuid.UUID `gorm:"type:uuid;index" json:"submitted_question_id"`
	QuestionText        string     `gorm:"type:text;not null" json:"question_text"`
	ResponseText        string     `gorm:"type:text;not null" json:"response_text"`
	ResponseType        string     `gorm:"size:20;not null;default:'daily'" json:"response_type"`
	DailyDate           *string    `gorm:"size:10;uniqueIndex:idx_responses_user_daily" json:"daily_date"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	User                User       `gorm:"foreignKey:UserID" json:"-"`
	Prompt              *Prompt    `gorm:"foreignKey:PromptID" json:"-"`
}

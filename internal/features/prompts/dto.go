package prompts

import (
	"time"

	"github.com/google/uuid"
)

type RespondRequest struct {
	PromptID            *uuid.UUID `json:"promptId"`
	Response            string     `json:"response"`
	IsFollowUp          bool       `json:"isFollowUp"`
	ParentResponseID    *uuid.UUID `json:"parentResponseId"`
	IsBonus             bool       `json:"isBonus"`
	IsFreeWrite         bool       `json:"isFreeWrite"`
	Title               string     `json:"title"`
	SubmittedQuestionID *uuid.UUID `json:"submittedQuestionId"`
}

type SubmitterInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PromptView is the prompt block served by the today/next endpoints. ID is
// null for submitted questions and the exhausted-catalog fallback.
type PromptView struct {
	ID                  *uuid.UUID     `json:"id"`
	Question            string         `json:"question"`
	Category            string         `json:"category"`
	Type                string         `json:"type"`
	SubmittedQuestionID *uuid.UUID     `json:"submittedQuestionId,omitempty"`
	SubmitterInfo       *SubmitterInfo `json:"submitterInfo,omitempty"`
}

// ResponseView is a ledger row joined with its catalog prompt, when any.
type ResponseView struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              uuid.UUID  `json:"user_id"`
	PromptID            *uuid.UUID `json:"prompt_id"`
	SubmittedQuestionID *uuid.UUID `json:"submitted_question_id"`
	QuestionText        string     `json:"question_text"`
	ResponseText        string     `json:"response_text"`
	ResponseType        string     `json:"response_type"`
	CreatedAt           time.Time  `json:"created_at"`
	Question            string     `json:"question,omitempty"`
	Category            string     `json:"category,omitempty"`
	PromptType          string     `json:"prompt_type,omitempty"`
}

type TodayResult struct {
	Answered bool          `json:"answered"`
	Response *ResponseView `json:"response,omitempty"`
	Prompt   *PromptView   `json:"prompt,omitempty"`
}

type NextResult struct {
	Prompt      *PromptView `json:"prompt,omitempty"`
	AllComplete bool        `json:"allComplete,omitempty"`
	Message     string      `json:"message,omitempty"`
}

type RespondResult struct {
	Success    bool          `json:"success"`
	Response   *ResponseView `json:"response,omitempty"`
	ResponseID *uuid.UUID    `json:"responseId,omitempty"`
	Streak     int           `json:"streak"`
	Message    string        `json:"message"`
}

type StatsResult struct {
	TotalResponses int64 `json:"totalResponses"`
	CurrentStreak  int   `json:"currentStreak"`
}

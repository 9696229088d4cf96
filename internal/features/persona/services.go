package persona

import (
	"context"
	"errors"
	"strings"

	"github.com/forever-stories/backend/internal/llm"
	"github.com/forever-stories/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMessageRequired  = errors.New("message is required")
	ErrQuestionRequired = errors.New("question and response are required")
)

const (
	personaMaxTokens  = 1024
	followUpMaxTokens = 500
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type PersonaResult struct {
	Message     string `json:"message"`
	StoriesUsed int    `json:"storiesUsed"`
	NeedsAPIKey bool   `json:"needsApiKey,omitempty"`
}

type PersonaService struct {
	db     *gorm.DB
	client llm.Client
}

func NewPersonaService(db *gorm.DB, client llm.Client) *PersonaService {
	return &PersonaService{db: db, client: client}
}

// loadStories returns all of the user's responses, newest first, with the
// original prompt text joined in where one exists.
func (s *PersonaService) loadStories(userID uuid.UUID) ([]story, error) {
	var rows []struct {
		QuestionText string
		ResponseText string
		PromptText   string
	}
	err := s.db.Model(&models.PromptResponse{}).
		Select("prompt_responses.question_text, prompt_responses.response_text, prompts.text AS prompt_text").
		Joins("LEFT JOIN prompts ON prompts.id = prompt_responses.prompt_id").
		Where("prompt_responses.user_id = ?", userID).
		Order("prompt_responses.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stories := make([]story, 0, len(rows))
	for _, row := range rows {
		question := row.QuestionText
		if question == "" {
			question = row.PromptText
		}
		stories = append(stories, story{Question: question, Answer: row.ResponseText})
	}
	return stories, nil
}

// Reply answers a chat message in the voice of the user's persona. When no
// provider is configured the caller gets a canned reply flagged with
// NeedsAPIKey instead of an error.
func (s *PersonaService) Reply(ctx context.Context, userID uuid.UUID, message string, history []ChatMessage) (*PersonaResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrMessageRequired
	}

	var profile models.Profile
	var profilePtr *models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		profilePtr = &profile
	}

	stories, err := s.loadStories(userID)
	if err != nil {
		return nil, err
	}

	messages := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := "user"
		if m.Role == "assistant" {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: message})

	reply, err := s.client.Complete(ctx, buildSystemPrompt(profilePtr, stories), messages, personaMaxTokens)
	if errors.Is(err, llm.ErrNotConfigured) {
		return &PersonaResult{
			Message:     cannedReply(message),
			StoriesUsed: len(stories),
			NeedsAPIKey: true,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &PersonaResult{Message: reply, StoriesUsed: len(stories)}, nil
}

func cannedReply(message string) string {
	topic := "that"
	if strings.Contains(strings.ToLower(message), "childhood") {
		topic = "my childhood"
	}
	return "I'd love to tell you about " + topic + ", but the AI persona isn't set up yet. Once an API key is configured, I'll be able to share my stories with you."
}

// GenerateFollowUps asks the model for 2-3 follow-up questions for a story.
// Every failure mode degrades to a static set so the writing flow never
// blocks on the provider.
func (s *PersonaService) GenerateFollowUps(ctx context.Context, question, response string) ([]string, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(response) == "" {
		return nil, ErrQuestionRequired
	}

	content := "Original question: \"" + question + "\"\n\nTheir response: \"" + response + "\"\n\nGenerate 2-3 follow-up questions to help them share more about this memory."

	raw, err := s.client.Complete(ctx, followUpSystemPrompt,
		[]llm.Message{{Role: "user", Content: content}}, followUpMaxTokens)
	if errors.Is(err, llm.ErrNotConfigured) {
		return followUpsNoKey, nil
	}
	if err != nil {
		return followUpsAPIError, nil
	}

	return parseFollowUps(raw), nil
}

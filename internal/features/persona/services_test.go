package persona

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/forever-stories/backend/internal/llm"
	"github.com/forever-stories/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Prompt{}, &models.PromptResponse{}))
	return db
}

// fakeClient records the last call and returns a fixed reply.
type fakeClient struct {
	system   string
	messages []llm.Message
	reply    string
	err      error
}

func (f *fakeClient) Complete(_ context.Context, system string, messages []llm.Message, _ int) (string, error) {
	f.system = system
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func strPtr(s string) *string { return &s }

func TestBuildUserContextWithProfileAndStories(t *testing.T) {
	profile := &models.Profile{
		BirthLocation: strPtr("Tucson, Arizona"),
		Interests:     `["gardening","fishing"]`,
		LifeEvents:    `["moved west in 1972"]`,
	}
	stories := []story{
		{Question: "What was your first job?", Answer: "Bagging groceries at the corner store."},
		{Question: "", Answer: "We drove to the coast every summer."},
	}

	got := buildUserContext(profile, stories)
	assert.Contains(t, got, "I was born in Tucson, Arizona.")
	assert.Contains(t, got, "Some of my interests include: gardening, fishing.")
	assert.Contains(t, got, "Important events in my life: moved west in 1972.")
	assert.Contains(t, got, "--- My Stories and Memories ---")
	assert.Contains(t, got, "Q: What was your first job?\nMy answer: Bagging groceries at the corner store.")
	assert.Contains(t, got, "Q: A memory\nMy answer: We drove to the coast every summer.")
}

func TestBuildUserContextNoStories(t *testing.T) {
	got := buildUserContext(nil, nil)
	assert.Contains(t, got, "I haven't shared many stories yet")
	assert.NotContains(t, got, "I was born in")
}

func TestBuildUserContextDefaultBirthLocation(t *testing.T) {
	got := buildUserContext(&models.Profile{}, nil)
	assert.Contains(t, got, "I was born in a place I called home.")
}

func TestReplySendsStoriesAndHistory(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&models.User{ID: userID, Email: "u@example.com", Password: "x", FullName: "U"}).Error)
	require.NoError(t, db.Create(&models.Profile{ID: uuid.New(), UserID: userID, BirthLocation: strPtr("Tucson")}).Error)

	prompt := models.Prompt{ID: uuid.New(), Text: "What was your first car?", Category: "milestones", Type: "nostalgic"}
	require.NoError(t, db.Create(&prompt).Error)
	require.NoError(t, db.Create(&models.PromptResponse{
		ID:           uuid.New(),
		UserID:       userID,
		PromptID:     &prompt.ID,
		ResponseText: "A rusty pickup I loved anyway.",
		ResponseType: models.ResponseTypeDaily,
	}).Error)

	client := &fakeClient{reply: "My first car was a rusty pickup."}
	svc := NewPersonaService(db, client)

	result, err := svc.Reply(context.Background(), userID, "Tell me about your first car", []ChatMessage{
		{Role: "assistant", Content: "Hello!"},
		{Role: "weird", Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "My first car was a rusty pickup.", result.Message)
	assert.Equal(t, 1, result.StoriesUsed)
	assert.False(t, result.NeedsAPIKey)

	// Prompt text is joined in when the response row has no question text.
	assert.Contains(t, client.system, "Q: What was your first car?\nMy answer: A rusty pickup I loved anyway.")
	assert.Contains(t, client.system, "I was born in Tucson.")

	require.Len(t, client.messages, 3)
	assert.Equal(t, "assistant", client.messages[0].Role)
	assert.Equal(t, "user", client.messages[1].Role)
	assert.Equal(t, llm.Message{Role: "user", Content: "Tell me about your first car"}, client.messages[2])
}

func TestReplyRendersStoriesNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&models.User{ID: userID, Email: "u@example.com", Password: "x", FullName: "U"}).Error)

	old := models.PromptResponse{
		ID:           uuid.New(),
		UserID:       userID,
		QuestionText: "What was your first job?",
		ResponseText: "Bagging groceries.",
		ResponseType: models.ResponseTypeDaily,
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	recent := models.PromptResponse{
		ID:           uuid.New(),
		UserID:       userID,
		QuestionText: "Tell me about your wedding day.",
		ResponseText: "It rained and we danced anyway.",
		ResponseType: models.ResponseTypeDaily,
		CreatedAt:    time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)

	client := &fakeClient{reply: "ok"}
	svc := NewPersonaService(db, client)

	result, err := svc.Reply(context.Background(), userID, "Tell me a story", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.StoriesUsed)

	recentAt := strings.Index(client.system, "Tell me about your wedding day.")
	oldAt := strings.Index(client.system, "What was your first job?")
	require.NotEqual(t, -1, recentAt)
	require.NotEqual(t, -1, oldAt)
	assert.Less(t, recentAt, oldAt, "most recent story should come first in the context")
}

func TestReplyRequiresMessage(t *testing.T) {
	svc := NewPersonaService(setupTestDB(t), &fakeClient{})
	_, err := svc.Reply(context.Background(), uuid.New(), "   ", nil)
	assert.ErrorIs(t, err, ErrMessageRequired)
}

func TestReplyWithoutProviderReturnsCannedMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonaService(db, llm.Stub{})

	result, err := svc.Reply(context.Background(), uuid.New(), "What was your childhood like?", nil)
	require.NoError(t, err)
	assert.True(t, result.NeedsAPIKey)
	assert.Contains(t, result.Message, "my childhood")

	result, err = svc.Reply(context.Background(), uuid.New(), "Tell me about your job", nil)
	require.NoError(t, err)
	assert.True(t, result.NeedsAPIKey)
	assert.Contains(t, result.Message, "about that")
}

func TestGenerateFollowUpsValidation(t *testing.T) {
	svc := NewPersonaService(setupTestDB(t), &fakeClient{})
	_, err := svc.GenerateFollowUps(context.Background(), "", "something")
	assert.ErrorIs(t, err, ErrQuestionRequired)
	_, err = svc.GenerateFollowUps(context.Background(), "something", "  ")
	assert.ErrorIs(t, err, ErrQuestionRequired)
}

func TestGenerateFollowUpsFallbacks(t *testing.T) {
	db := setupTestDB(t)

	noKey := NewPersonaService(db, llm.Stub{})
	questions, err := noKey.GenerateFollowUps(context.Background(), "Q?", "A.")
	require.NoError(t, err)
	assert.Equal(t, followUpsNoKey, questions)

	broken := NewPersonaService(db, &fakeClient{err: assert.AnError})
	questions, err = broken.GenerateFollowUps(context.Background(), "Q?", "A.")
	require.NoError(t, err)
	assert.Equal(t, followUpsAPIError, questions)
}

func TestGenerateFollowUpsParsesModelOutput(t *testing.T) {
	client := &fakeClient{reply: "```json\n[\"What happened next?\", \"Who was with you?\"]\n```"}
	svc := NewPersonaService(setupTestDB(t), client)

	questions, err := svc.GenerateFollowUps(context.Background(), "Q?", "A.")
	require.NoError(t, err)
	assert.Equal(t, []string{"What happened next?", "Who was with you?"}, questions)
	assert.Contains(t, client.messages[0].Content, `Original question: "Q?"`)
	assert.Contains(t, client.messages[0].Content, `Their response: "A."`)
}

func TestParseFollowUps(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "json array",
			raw:  `["One?", "Two?"]`,
			want: []string{"One?", "Two?"},
		},
		{
			name: "json array capped at three",
			raw:  `["One?", "Two?", "Three?", "Four?"]`,
			want: []string{"One?", "Two?", "Three?"},
		},
		{
			name: "empty json array",
			raw:  `[]`,
			want: followUpsParseFail,
		},
		{
			name: "fenced json",
			raw:  "```json\n[\"One?\"]\n```",
			want: []string{"One?"},
		},
		{
			name: "numbered lines",
			raw:  "1. What happened next?\n2. Who was there?\n3. How did it end?\n4. Extra question?",
			want: []string{"What happened next?", "Who was there?", "How did it end?"},
		},
		{
			name: "bulleted lines with chatter",
			raw:  "Here are some questions:\n- What happened next?\n- Who was there?",
			want: []string{"What happened next?", "Who was there?"},
		},
		{
			name: "no questions at all",
			raw:  "I cannot help with that.",
			want: followUpsParseFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFollowUps(tt.raw))
		})
	}
}

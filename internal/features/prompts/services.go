package prompts

import (
	"errors"
	"strings"
	"time"

	"github.com/forever-stories/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmptyResponse        = errors.New("response cannot be empty")
	ErrAlreadyAnsweredToday = errors.New("daily prompt already answered today")
)

const exhaustedCatalogQuestion = "You've answered all available prompts! Tell me about a memory that made you smile recently."

type PromptService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPromptService(db *gorm.DB) *PromptService {
	return &PromptService{db: db, now: time.Now}
}

// userLocation resolves the caller's timezone from their profile.
func (s *PromptService) userLocation(userID uuid.UUID) *time.Location {
	var tzs []string
	s.db.Model(&models.Profile{}).Where("user_id = ?", userID).Limit(1).Pluck("timezone", &tzs)
	if len(tzs) > 0 {
		return loadLocation(tzs[0])
	}
	return loadLocation("")
}

// TodayPrompt decides what the user sees for today: their already-saved
// daily response, the oldest pending family question, or a personalized
// catalog prompt.
func (s *PromptService) TodayPrompt(userID uuid.UUID) (*TodayResult, error) {
	loc := s.userLocation(userID)
	today := localDate(s.now(), loc)

	var existing models.PromptResponse
	err := s.db.Where("user_id = ? AND response_type = ? AND daily_date = ?",
		userID, models.ResponseTypeDaily, today).First(&existing).Error
	if err == nil {
		return &TodayResult{Answered: true, Response: s.toResponseView(&existing)}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if prompt, err := s.claimSubmittedQuestion(userID); err != nil {
		return nil, err
	} else if prompt != nil {
		return &TodayResult{Answered: false, Prompt: prompt}, nil
	}

	var interests, lifeEvents []string
	var birthLocation *string
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		interests = models.ParseStringList(profile.Interests)
		lifeEvents = models.ParseStringList(profile.LifeEvents)
		birthLocation = profile.BirthLocation
	}

	candidates, err := s.unansweredPrompts(userID, 10)
	if err != nil {
		return nil, err
	}

	selected := pickPrompt(candidates, interests, lifeEvents)
	if selected == nil {
		return &TodayResult{
			Answered: false,
			Prompt: &PromptView{
				Question: exhaustedCatalogQuestion,
				Category: "general",
				Type:     "nostalgic",
			},
		}, nil
	}

	id := selected.ID
	return &TodayResult{
		Answered: false,
		Prompt: &PromptView{
			ID:       &id,
			Question: personalize(selected.Text, birthLocation),
			Category: selected.Category,
			Type:     selected.Type,
		},
	}, nil
}

// NextPrompt serves one more catalog prompt for bonus answering, with no
// daily-answered check.
func (s *PromptService) NextPrompt(userID uuid.UUID) (*NextResult, error) {
	candidates, err := s.unansweredPrompts(userID, 1)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &NextResult{
			AllComplete: true,
			Message:     "You've answered all available prompts! Amazing work!",
		}, nil
	}

	p := candidates[0]
	id := p.ID
	return &NextResult{
		Prompt: &PromptView{
			ID:       &id,
			Question: p.Text,
			Category: p.Category,
			Type:     p.Type,
		},
	}, nil
}

// Respond saves a story. Follow-ups append to the parent entry instead of
// creating a new row; everything else inserts a classified ledger entry.
func (s *PromptService) Respond(userID uuid.UUID, req RespondRequest) (*RespondResult, error) {
	text := strings.TrimSpace(req.Response)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	if req.IsFollowUp && req.ParentResponseID != nil {
		var parent models.PromptResponse
		err := s.db.Where("id = ? AND user_id = ?", *req.ParentResponseID, userID).First(&parent).Error
		if err == nil {
			updated := parent.ResponseText + "\n\n" + req.Response
			if err := s.db.Model(&parent).Update("response_text", updated).Error; err != nil {
				return nil, err
			}
			return &RespondResult{Success: true, Message: "Follow-up response added!"}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// Unknown parent falls through and saves as a fresh entry.
	}

	loc := s.userLocation(userID)
	today := localDate(s.now(), loc)

	entry := models.PromptResponse{
		ID:           uuid.New(),
		UserID:       userID,
		PromptID:     req.PromptID,
		ResponseText: req.Response,
		ResponseType: models.ResponseTypeDaily,
	}

	switch {
	case req.SubmittedQuestionID != nil:
		entry.ResponseType = models.ResponseTypeSubmitted
		entry.SubmittedQuestionID = req.SubmittedQuestionID
		entry.QuestionText = "Family Question"
		var question models.SubmittedQuestion
		if err := s.db.First(&question, "id = ?", *req.SubmittedQuestionID).Error; err == nil {
			entry.QuestionText = question.QuestionText
		}
	case req.IsFreeWrite:
		entry.ResponseType = models.ResponseTypeFreewrite
		entry.QuestionText = req.Title
		if entry.QuestionText == "" {
			entry.QuestionText = "My Story"
		}
	case req.IsBonus:
		entry.ResponseType = models.ResponseTypeBonus
	}

	// Daily and bonus entries denormalize the catalog question so the
	// ledger stays readable if the catalog ever changes.
	if entry.QuestionText == "" && req.PromptID != nil {
		var prompt models.Prompt
		if err := s.db.First(&prompt, "id = ?", *req.PromptID).Error; err == nil {
			entry.QuestionText = prompt.Text
		}
	}

	if entry.ResponseType == models.ResponseTypeDaily {
		var count int64
		s.db.Model(&models.PromptResponse{}).
			Where("user_id = ? AND response_type = ? AND daily_date = ?", userID, models.ResponseTypeDaily, today).
			Count(&count)
		if count > 0 {
			return nil, ErrAlreadyAnsweredToday
		}
		entry.DailyDate = &today
	}

	if err := s.db.Create(&entry).Error; err != nil {
		// The unique index backstops the pre-check when two daily
		// submissions race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyAnsweredToday
		}
		return nil, err
	}

	streak, err := s.currentStreak(userID, loc)
	if err != nil {
		return nil, err
	}

	id := entry.ID
	return &RespondResult{
		Success:    true,
		Response:   s.toResponseView(&entry),
		ResponseID: &id,
		Streak:     streak,
		Message:    "Response saved successfully!",
	}, nil
}

// History returns the 50 most recent ledger entries with catalog context.
func (s *PromptService) History(userID uuid.UUID) ([]ResponseView, error) {
	var entries []models.PromptResponse
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	views := make([]ResponseView, 0, len(entries))
	for i := range entries {
		views = append(views, *s.toResponseView(&entries[i]))
	}
	return views, nil
}

// Stats returns the total response count and the consecutive-day streak
// anchored at today in the user's timezone. A user who answered yesterday
// but not yet today shows a streak of 0.
func (s *PromptService) Stats(userID uuid.UUID) (*StatsResult, error) {
	var total int64
	if err := s.db.Model(&models.PromptResponse{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	loc := s.userLocation(userID)
	streak, err := s.currentStreak(userID, loc)
	if err != nil {
		return nil, err
	}

	return &StatsResult{TotalResponses: total, CurrentStreak: streak}, nil
}

// claimSubmittedQuestion atomically flips the oldest pending family
// question to used. The conditional update means concurrent requests can
// never serve the same question twice; the loser retries on the next
// oldest.
func (s *PromptService) claimSubmittedQuestion(userID uuid.UUID) (*PromptView, error) {
	for attempt := 0; attempt < 3; attempt++ {
		var question models.SubmittedQuestion
		err := s.db.Where("owner_user_id = ? AND status = ?", userID, models.QuestionStatusPending).
			Order("created_at ASC").
			First(&question).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		now := s.now()
		res := s.db.Model(&models.SubmittedQuestion{}).
			Where("id = ? AND status = ?", question.ID, models.QuestionStatusPending).
			Updates(map[string]interface{}{"status": models.QuestionStatusUsed, "used_at": now})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			continue // lost the race, try the next pending question
		}

		var submitterName string
		var submitter models.User
		if err := s.db.First(&submitter, "id = ?", question.SubmitterUserID).Error; err == nil {
			submitterName = submitter.FullName
		}

		qid := question.ID
		return &PromptView{
			Question:            question.QuestionText,
			Category:            "family_question",
			Type:                "submitted",
			SubmittedQuestionID: &qid,
			SubmitterInfo: &SubmitterInfo{
				Name:  submitterName,
				Email: question.SubmitterEmail,
			},
		}, nil
	}
	return nil, nil
}

// unansweredPrompts fetches up to limit random catalog prompts the user has
// not responded to yet.
func (s *PromptService) unansweredPrompts(userID uuid.UUID, limit int) ([]models.Prompt, error) {
	answered := s.db.Model(&models.PromptResponse{}).
		Select("prompt_id").
		Where("user_id = ? AND prompt_id IS NOT NULL", userID)

	var candidates []models.Prompt
	err := s.db.Where("id NOT IN (?)", answered).
		Order("RANDOM()").
		Limit(limit).
		Find(&candidates).Error
	return candidates, err
}

// currentStreak walks consecutive local days backward from today.
func (s *PromptService) currentStreak(userID uuid.UUID, loc *time.Location) (int, error) {
	var stamps []time.Time
	err := s.db.Model(&models.PromptResponse{}).
		Where("user_id = ?", userID).
		Pluck("created_at", &stamps).Error
	if err != nil {
		return 0, err
	}

	days := make(map[string]struct{}, len(stamps))
	for _, t := range stamps {
		days[localDate(t, loc)] = struct{}{}
	}
	return consecutiveStreak(days, s.now(), loc), nil
}

// consecutiveStreak counts the run of consecutive days ending today. Today
// itself must be present or the streak is 0.
func consecutiveStreak(days map[string]struct{}, now time.Time, loc *time.Location) int {
	day := now.In(loc)
	streak := 0
	for {
		if _, ok := days[day.Format("2006-01-02")]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// pickPrompt scans the candidates for the first whose category mentions one
// of the user's interests, then one of their life events, falling back to
// the first candidate.
func pickPrompt(candidates []models.Prompt, interests, lifeEvents []string) *models.Prompt {
	for i := range candidates {
		category := strings.ToLower(candidates[i].Category)
		for _, interest := range interests {
			if interest != "" && strings.Contains(category, strings.ToLower(interest)) {
				return &candidates[i]
			}
		}
		for _, event := range lifeEvents {
			if event != "" && strings.Contains(category, strings.ToLower(event)) {
				return &candidates[i]
			}
		}
	}
	if len(candidates) > 0 {
		return &candidates[0]
	}
	return nil
}

// personalize substitutes the {location} placeholder with the user's birth
// location when both are present.
func personalize(question string, birthLocation *string) string {
	if birthLocation != nil && *birthLocation != "" {
		return strings.Replace(question, "{location}", *birthLocation, 1)
	}
	return question
}

func (s *PromptService) toResponseView(entry *models.PromptResponse) *ResponseView {
	view := &ResponseView{
		ID:                  entry.ID,
		UserID:              entry.UserID,
		PromptID:            entry.PromptID,
		SubmittedQuestionID: entry.SubmittedQuestionID,
		QuestionText:        entry.QuestionText,
		ResponseText:        entry.ResponseText,
		ResponseType:        entry.ResponseType,
		CreatedAt:           entry.CreatedAt,
	}

	if entry.PromptID != nil {
		var prompt models.Prompt
		if err := s.db.First(&prompt, "id = ?", *entry.PromptID).Error; err == nil {
			view.Question = prompt.Text
			view.Category = prompt.Category
			view.PromptType = prompt.Type
		}
	}
	return view
}

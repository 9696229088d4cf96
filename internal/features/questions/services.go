package questions

import (
	"errors"
	"strings"
	"time"

	"github.com/forever-stories/backend/internal/features/access"
	"github.com/forever-stories/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMissingFields    = errors.New("owner ID and question text required")
	ErrNoAccess         = errors.New("no access to submit questions")
	ErrPermissionDenied = errors.New("permission to submit questions not granted")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNotOwner         = errors.New("permission denied")
)

// QuestionView is a submitted question with the submitter's name joined in.
type QuestionView struct {
	ID             uuid.UUID  `json:"id"`
	QuestionText   string     `json:"question_text"`
	Status         string     `json:"status"`
	SubmitterEmail string     `json:"submitter_email"`
	SubmitterName  string     `json:"submitter_name,omitempty"`
	UsedAt         *time.Time `json:"used_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

type QuestionService struct {
	db     *gorm.DB
	access *access.AccessService
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db, access: access.NewAccessService(db)}
}

// Submit queues a question for the story owner. The submitter needs an
// active grant carrying submitQuestions.
func (s *QuestionService) Submit(submitterID uuid.UUID, submitterEmail string, ownerID uuid.UUID, questionText string) (*models.SubmittedQuestion, error) {
	questionText = strings.TrimSpace(questionText)
	if ownerID == uuid.Nil || questionText == "" {
		return nil, ErrMissingFields
	}

	hasGrant, err := s.access.HasPermission(ownerID, submitterID, submitterEmail,
		func(p models.Permissions) bool { return true })
	if err != nil {
		return nil, err
	}
	if !hasGrant {
		return nil, ErrNoAccess
	}

	allowed, err := s.access.HasPermission(ownerID, submitterID, submitterEmail,
		func(p models.Permissions) bool { return p.SubmitQuestions })
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrPermissionDenied
	}

	question := models.SubmittedQuestion{
		ID:              uuid.New(),
		OwnerUserID:     ownerID,
		SubmitterUserID: submitterID,
		SubmitterEmail:  submitterEmail,
		QuestionText:    questionText,
		Status:          models.QuestionStatusPending,
	}

	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// ListSubmitted returns every question queued for the owner, newest first.
func (s *QuestionService) ListSubmitted(ownerID uuid.UUID) ([]QuestionView, error) {
	var questions []models.SubmittedQuestion
	err := s.db.Where("owner_user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		view := QuestionView{
			ID:             q.ID,
			QuestionText:   q.QuestionText,
			Status:         q.Status,
			SubmitterEmail: q.SubmitterEmail,
			UsedAt:         q.UsedAt,
			CreatedAt:      q.CreatedAt,
		}
		var submitter models.User
		if err := s.db.First(&submitter, "id = ?", q.SubmitterUserID).Error; err == nil {
			view.SubmitterName = submitter.FullName
		}
		views = append(views, view)
	}
	return views, nil
}

// Delete removes a question outright. Only the story owner may do this,
// regardless of question status.
func (s *QuestionService) Delete(ownerID, questionID uuid.UUID) error {
	var question models.SubmittedQuestion
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		return ErrQuestionNotFound
	}
	if question.OwnerUserID != ownerID {
		return ErrNotOwner
	}

	return s.db.Delete(&question).Error
}

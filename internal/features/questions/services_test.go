package questions

import (
	"testing"

	"github.com/forever-stories/backend/internal/features/access"
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

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AccessGrant{}, &models.SubmittedQuestion{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()
	user := &models.User{ID: uuid.New(), Email: email, Password: "x", FullName: name}
	require.NoError(t, db.Create(user).Error)
	return user
}

func grantAccess(t *testing.T, db *gorm.DB, ownerID uuid.UUID, email string, perms models.Permissions) *access.GrantView {
	t.Helper()
	grant, err := access.NewAccessService(db).Invite(ownerID, access.InviteRequest{
		RecipientEmail: email,
		Permissions:    &perms,
	})
	require.NoError(t, err)
	return grant
}

func TestSubmitRequiresGrantWithPermission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuestionService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")
	kid := createUser(t, db, "kid@example.com", "Kid")

	// No grant at all.
	_, err := svc.Submit(kid.ID, kid.Email, owner.ID, "How did you meet grandma?")
	assert.ErrorIs(t, err, ErrNoAccess)

	// Grant without submitQuestions.
	grantAccess(t, db, owner.ID, kid.Email, models.Permissions{ViewStories: true})
	_, err = svc.Submit(kid.ID, kid.Email, owner.ID, "How did you meet grandma?")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSubmitAndList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuestionService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")
	kid := createUser(t, db, "kid@example.com", "Kid")
	grantAccess(t, db, owner.ID, kid.Email, models.Permissions{SubmitQuestions: true})

	_, err := svc.Submit(kid.ID, kid.Email, owner.ID, "   ")
	assert.ErrorIs(t, err, ErrMissingFields)

	question, err := svc.Submit(kid.ID, kid.Email, owner.ID, "  How did you meet grandma?  ")
	require.NoError(t, err)
	assert.Equal(t, models.QuestionStatusPending, question.Status)
	assert.Equal(t, "How did you meet grandma?", question.QuestionText)

	views, err := svc.ListSubmitted(owner.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Kid", views[0].SubmitterName)
	assert.Equal(t, "kid@example.com", views[0].SubmitterEmail)
	assert.Equal(t, models.QuestionStatusPending, views[0].Status)
}

func TestSubmitMatchesGrantByEmailOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuestionService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")

	// Grant issued before the kid had an account, so recipient_user_id is
	// nil and matching falls back to email.
	grantAccess(t, db, owner.ID, "kid@example.com", models.Permissions{SubmitQuestions: true})
	kid := createUser(t, db, "kid@example.com", "Kid")

	_, err := svc.Submit(kid.ID, kid.Email, owner.ID, "What was your first car?")
	require.NoError(t, err)
}

func TestDeleteOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuestionService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")
	kid := createUser(t, db, "kid@example.com", "Kid")
	grantAccess(t, db, owner.ID, kid.Email, models.Permissions{SubmitQuestions: true})

	question, err := svc.Submit(kid.ID, kid.Email, owner.ID, "How did you meet grandma?")
	require.NoError(t, err)

	err = svc.Delete(kid.ID, question.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.Delete(owner.ID, uuid.New())
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	require.NoError(t, svc.Delete(owner.ID, question.ID))

	var count int64
	db.Model(&models.SubmittedQuestion{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

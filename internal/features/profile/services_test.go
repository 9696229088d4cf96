package profile

import (
	"testing"

	"github.com/forever-stories/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Profile{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		FullName: "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func strptr(s string) *string { return &s }

func TestSaveIntakeCreatesAndUpdates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "owner@example.com", "password1")

	view, err := svc.SaveIntake(user.ID, IntakeRequest{
		BirthDate:     strptr("1950-03-14"),
		BirthLocation: strptr("Tucson, Arizona"),
		LifeEvents:    []string{"Moved to Phoenix", "Raised three kids"},
		Interests:     []string{"fishing", "woodworking"},
	})
	require.NoError(t, err)
	assert.Equal(t, "America/Phoenix", view.Timezone)
	assert.Equal(t, []string{"fishing", "woodworking"}, view.Interests)

	// Second intake updates in place rather than creating a second row.
	view2, err := svc.SaveIntake(user.ID, IntakeRequest{
		Interests: []string{"gardening"},
		Timezone:  "America/New_York",
	})
	require.NoError(t, err)
	assert.Equal(t, view.ID, view2.ID)
	assert.Equal(t, "America/New_York", view2.Timezone)
	assert.Equal(t, []string{"gardening"}, view2.Interests)

	var count int64
	db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGetProfileBeforeIntake(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "owner@example.com", "password1")

	view, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestGetProfileParsesLegacyCommaLists(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "owner@example.com", "password1")

	require.NoError(t, db.Create(&models.Profile{
		ID:        uuid.New(),
		UserID:    user.ID,
		Interests: "Music, Travel",
		Timezone:  "America/Phoenix",
	}).Error)

	view, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Music", "Travel"}, view.Interests)
}

func TestGetAccountJoinsProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "owner@example.com", "password1")

	account, err := svc.GetAccount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", account.Email)
	assert.Nil(t, account.Interests)

	_, err = svc.SaveIntake(user.ID, IntakeRequest{Interests: []string{"fishing"}})
	require.NoError(t, err)

	account, err = svc.GetAccount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fishing"}, account.Interests)
	assert.Equal(t, "America/Phoenix", account.Timezone)

	_, err = svc.GetAccount(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateBasic(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "owner@example.com", "password1")
	createUser(t, db, "taken@example.com", "password1")

	_, err := svc.UpdateBasic(user.ID, UpdateBasicRequest{})
	assert.ErrorIs(t, err, ErrNoFields)

	_, err = svc.UpdateBasic(user.ID, UpdateBasicRequest{Email: strptr("taken@example.com")})
	assert.ErrorIs(t, err, ErrEmailInUse)

	updated, err := svc.UpdateBasic(user.ID, UpdateBasicRequest{FullName: strptr("New Name")})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "owner@example.com", updated.Email)
}

func TestUpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "owner@example.com", "password1")

	err := svc.UpdatePassword(user.ID, UpdatePasswordRequest{})
	assert.ErrorIs(t, err, ErrPasswordRequired)

	err = svc.UpdatePassword(user.ID, UpdatePasswordRequest{CurrentPassword: "password1", NewPassword: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	err = svc.UpdatePassword(user.ID, UpdatePasswordRequest{CurrentPassword: "wrong", NewPassword: "password2"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.UpdatePassword(user.ID, UpdatePasswordRequest{CurrentPassword: "password1", NewPassword: "password2"})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password2")))
}

func TestUpdateProfileDetailsCreatesWhenMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "owner@example.com", "password1")

	view, err := svc.UpdateProfileDetails(user.ID, UpdateProfileRequest{
		BirthLocation: strptr("Tucson"),
		LifeEvents:    []string{"Retired"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tucson", *view.BirthLocation)
	assert.Equal(t, []string{"Retired"}, view.LifeEvents)
	assert.Equal(t, "America/Phoenix", view.Timezone)

	// Partial update leaves other fields alone.
	view, err = svc.UpdateProfileDetails(user.ID, UpdateProfileRequest{Timezone: strptr("UTC")})
	require.NoError(t, err)
	assert.Equal(t, "UTC", view.Timezone)
	assert.Equal(t, "Tucson", *view.BirthLocation)

	_, err = svc.UpdateProfileDetails(user.ID, UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrNoFields)
}

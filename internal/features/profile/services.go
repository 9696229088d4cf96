package profile

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/forever-stories/backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailInUse       = errors.New("email already in use")
	ErrNoFields         = errors.New("no fields to update")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrPasswordTooShort = errors.New("new password must be at least 6 characters")
	ErrPasswordRequired = errors.New("current and new password required")
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// SaveIntake upserts the caller's profile from the intake flow.
func (s *ProfileService) SaveIntake(userID uuid.UUID, req IntakeRequest) (*ProfileView, error) {
	tz := req.Timezone
	if tz == "" {
		tz = "America/Phoenix"
	}

	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		profile = models.Profile{
			ID:            uuid.New(),
			UserID:        userID,
			BirthDate:     req.BirthDate,
			BirthLocation: req.BirthLocation,
			LifeEvents:    models.EncodeStringList(req.LifeEvents),
			Interests:     models.EncodeStringList(req.Interests),
			Timezone:      tz,
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, err
		}
		return toView(&profile), nil
	}

	profile.BirthDate = req.BirthDate
	profile.BirthLocation = req.BirthLocation
	profile.LifeEvents = models.EncodeStringList(req.LifeEvents)
	profile.Interests = models.EncodeStringList(req.Interests)
	profile.Timezone = tz
	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return toView(&profile), nil
}

// GetProfile returns the caller's profile or nil when intake has not run yet.
func (s *ProfileService) GetProfile(userID uuid.UUID) (*ProfileView, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toView(&profile), nil
}

// GetAccount joins the user row with its profile. Profile fields stay zero
// when intake has not run.
func (s *ProfileService) GetAccount(userID uuid.UUID) (*AccountView, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	account := &AccountView{
		ID:        user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}

	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		account.BirthDate = profile.BirthDate
		account.BirthLocation = profile.BirthLocation
		account.LifeEvents = models.ParseStringList(profile.LifeEvents)
		account.Interests = models.ParseStringList(profile.Interests)
		account.Timezone = profile.Timezone
		account.AdditionalInfo = decodeJSONMap(profile.AdditionalInfo)
	}

	return account, nil
}

// UpdateBasic applies partial name/email changes.
func (s *ProfileService) UpdateBasic(userID uuid.UUID, req UpdateBasicRequest) (*models.User, error) {
	if req.FullName == nil && req.Email == nil {
		return nil, ErrNoFields
	}

	if req.Email != nil {
		var count int64
		s.db.Model(&models.User{}).Where("email = ? AND id != ?", *req.Email, userID).Count(&count)
		if count > 0 {
			return nil, ErrEmailInUse
		}
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// UpdatePassword verifies the current password before setting a new one.
func (s *ProfileService) UpdatePassword(userID uuid.UUID, req UpdatePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return ErrPasswordRequired
	}
	if len(req.NewPassword) < 6 {
		return ErrPasswordTooShort
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Model(&user).Update("password", string(hash)).Error
}

// UpdateProfileDetails applies partial profile changes, creating the profile
// row when the account-edit flow runs before intake.
func (s *ProfileService) UpdateProfileDetails(userID uuid.UUID, req UpdateProfileRequest) (*ProfileView, error) {
	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	exists := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !exists {
		profile = models.Profile{
			ID:       uuid.New(),
			UserID:   userID,
			Timezone: "America/Phoenix",
		}
	}

	changed := false
	if req.BirthDate != nil {
		profile.BirthDate = req.BirthDate
		changed = true
	}
	if req.BirthLocation != nil {
		profile.BirthLocation = req.BirthLocation
		changed = true
	}
	if req.Timezone != nil {
		profile.Timezone = *req.Timezone
		changed = true
	}
	if req.LifeEvents != nil {
		profile.LifeEvents = models.EncodeStringList(req.LifeEvents)
		changed = true
	}
	if req.Interests != nil {
		profile.Interests = models.EncodeStringList(req.Interests)
		changed = true
	}
	if req.AdditionalInfo != nil {
		data, err := json.Marshal(*req.AdditionalInfo)
		if err != nil {
			return nil, err
		}
		profile.AdditionalInfo = datatypes.JSON(data)
		changed = true
	}

	if exists && !changed {
		return nil, ErrNoFields
	}

	profile.UpdatedAt = time.Now()
	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return toView(&profile), nil
}

func toView(p *models.Profile) *ProfileView {
	return &ProfileView{
		ID:             p.ID.String(),
		UserID:         p.UserID.String(),
		BirthDate:      p.BirthDate,
		BirthLocation:  p.BirthLocation,
		LifeEvents:     models.ParseStringList(p.LifeEvents),
		Interests:      models.ParseStringList(p.Interests),
		Timezone:       p.Timezone,
		AdditionalInfo: decodeJSONMap(p.AdditionalInfo),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func decodeJSONMap(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

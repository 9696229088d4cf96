package profile

import "time"

type IntakeRequest struct {
	BirthDate     *string  `json:"birthDate"`
	BirthLocation *string  `json:"birthLocation"`
	LifeEvents    []string `json:"lifeEvents"`
	Interests     []string `json:"interests"`
	Timezone      string   `json:"timezone"`
}

type UpdateBasicRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type UpdateProfileRequest struct {
	BirthDate      *string                 `json:"birthDate"`
	BirthLocation  *string                 `json:"birthLocation"`
	Timezone       *string                 `json:"timezone"`
	LifeEvents     []string                `json:"lifeEvents"`
	Interests      []string                `json:"interests"`
	AdditionalInfo *map[string]interface{} `json:"additionalInfo"`
}

// ProfileView is the wire shape of a profile with the list fields decoded.
type ProfileView struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"user_id"`
	BirthDate      *string                `json:"birth_date"`
	BirthLocation  *string                `json:"birth_location"`
	LifeEvents     []string               `json:"life_events"`
	Interests      []string               `json:"interests"`
	Timezone       string                 `json:"timezone"`
	AdditionalInfo map[string]interface{} `json:"additional_info,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// AccountView joins the user row with its profile.
type AccountView struct {
	ID             string                 `json:"id"`
	Email          string                 `json:"email"`
	FullName       string                 `json:"full_name"`
	CreatedAt      time.Time              `json:"created_at"`
	BirthDate      *string                `json:"birth_date"`
	BirthLocation  *string                `json:"birth_location"`
	LifeEvents     []string               `json:"life_events"`
	Interests      []string               `json:"interests"`
	Timezone       string                 `json:"timezone"`
	AdditionalInfo map[string]interface{} `json:"additional_info,omitempty"`
}

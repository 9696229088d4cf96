package access

import (
	"time"

	"github.com/forever-stories/backend/internal/models"
	"github.com/google/uuid"
)

type InviteRequest struct {
	RecipientEmail string              `json:"recipientEmail"`
	Relationship   string              `json:"relationship"`
	Permissions    *models.Permissions `json:"permissions"`
}

type UpdateGrantRequest struct {
	Permissions *models.Permissions `json:"permissions"`
}

// GrantView is a grant as the owner sees it.
type GrantView struct {
	ID             uuid.UUID          `json:"id"`
	RecipientEmail string             `json:"recipient_email"`
	RecipientName  string             `json:"recipient_name,omitempty"`
	Relationship   string             `json:"relationship,omitempty"`
	Permissions    models.Permissions `json:"permissions"`
	Status         string             `json:"status"`
	GrantedAt      time.Time          `json:"granted_at"`
	RevokedAt      *time.Time         `json:"revoked_at"`
}

// AccessView is a grant as the recipient sees it.
type AccessView struct {
	ID          uuid.UUID          `json:"id"`
	OwnerUserID uuid.UUID          `json:"owner_user_id"`
	OwnerName   string             `json:"owner_name"`
	OwnerEmail  string             `json:"owner_email"`
	Permissions models.Permissions `json:"permissions"`
	GrantedAt   time.Time          `json:"granted_at"`
}

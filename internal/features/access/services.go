package access

import (
	"errors"
	"strings"
	"time"

	"github.com/forever-stories/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidEmail     = errors.New("valid email required")
	ErrEmptyPermissions = errors.New("at least one permission required")
	ErrAlreadyGranted   = errors.New("access already granted to this email")
	ErrGrantNotFound    = errors.New("access grant not found")
	ErrNotOwner         = errors.New("permission denied")
)

type AccessService struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// Invite grants a family member access, reactivating a previously revoked
// grant for the same email instead of inserting a duplicate row.
func (s *AccessService) Invite(ownerID uuid.UUID, req InviteRequest) (*GrantView, error) {
	email := strings.TrimSpace(req.RecipientEmail)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if req.Permissions == nil || req.Permissions.IsEmpty() {
		return nil, ErrEmptyPermissions
	}

	var existing models.AccessGrant
	err := s.db.Where("owner_user_id = ? AND recipient_email = ?", ownerID, email).First(&existing).Error
	if err == nil {
		if existing.Status == models.GrantStatusActive {
			return nil, ErrAlreadyGranted
		}
		existing.Permissions = *req.Permissions
		existing.Status = models.GrantStatusActive
		existing.GrantedAt = time.Now()
		existing.RevokedAt = nil
		if req.Relationship != "" {
			existing.Relationship = req.Relationship
		}
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return s.toGrantView(&existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Resolved once at invite time; not backfilled if the recipient signs
	// up later.
	var recipientUserID *uuid.UUID
	var recipient models.User
	if err := s.db.Where("email = ?", email).First(&recipient).Error; err == nil {
		id := recipient.ID
		recipientUserID = &id
	}

	grant := models.AccessGrant{
		ID:              uuid.New(),
		OwnerUserID:     ownerID,
		RecipientEmail:  email,
		RecipientUserID: recipientUserID,
		Relationship:    req.Relationship,
		Permissions:     *req.Permissions,
		Status:          models.GrantStatusActive,
		GrantedAt:       time.Now(),
	}

	if err := s.db.Create(&grant).Error; err != nil {
		return nil, err
	}
	return s.toGrantView(&grant), nil
}

// ListGrants returns the owner's active grants, newest first.
func (s *AccessService) ListGrants(ownerID uuid.UUID) ([]GrantView, error) {
	var grants []models.AccessGrant
	err := s.db.Where("owner_user_id = ? AND status = ?", ownerID, models.GrantStatusActive).
		Order("granted_at DESC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}

	views := make([]GrantView, 0, len(grants))
	for i := range grants {
		views = append(views, *s.toGrantView(&grants[i]))
	}
	return views, nil
}

// UpdateGrant replaces a grant's permissions. Only the owner may do this.
func (s *AccessService) UpdateGrant(ownerID, grantID uuid.UUID, req UpdateGrantRequest) (*GrantView, error) {
	if req.Permissions == nil || req.Permissions.IsEmpty() {
		return nil, ErrEmptyPermissions
	}

	var grant models.AccessGrant
	if err := s.db.First(&grant, "id = ?", grantID).Error; err != nil {
		return nil, ErrGrantNotFound
	}
	if grant.OwnerUserID != ownerID {
		return nil, ErrNotOwner
	}

	grant.Permissions = *req.Permissions
	if err := s.db.Save(&grant).Error; err != nil {
		return nil, err
	}
	return s.toGrantView(&grant), nil
}

// Revoke soft-deletes a grant.
func (s *AccessService) Revoke(ownerID, grantID uuid.UUID) error {
	var grant models.AccessGrant
	if err := s.db.First(&grant, "id = ?", grantID).Error; err != nil {
		return ErrGrantNotFound
	}
	if grant.OwnerUserID != ownerID {
		return ErrNotOwner
	}

	now := time.Now()
	return s.db.Model(&grant).Updates(map[string]interface{}{
		"status":     models.GrantStatusRevoked,
		"revoked_at": now,
	}).Error
}

// ListMyAccess returns grants where the caller is the recipient, matched by
// user id or email since recipient_user_id is not backfilled after signup.
func (s *AccessService) ListMyAccess(userID uuid.UUID, email string) ([]AccessView, error) {
	var grants []models.AccessGrant
	err := s.db.Where("(recipient_user_id = ? OR recipient_email = ?) AND status = ?",
		userID, email, models.GrantStatusActive).
		Order("granted_at DESC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}

	views := make([]AccessView, 0, len(grants))
	for i := range grants {
		g := grants[i]
		view := AccessView{
			ID:          g.ID,
			OwnerUserID: g.OwnerUserID,
			Permissions: g.Permissions,
			GrantedAt:   g.GrantedAt,
		}
		var owner models.User
		if err := s.db.First(&owner, "id = ?", g.OwnerUserID).Error; err == nil {
			view.OwnerName = owner.FullName
			view.OwnerEmail = owner.Email
		}
		views = append(views, view)
	}
	return views, nil
}

// HasPermission reports whether requester holds an active grant from owner
// with the permission selected by pick. Matching covers both the resolved
// user id and the invite email.
func (s *AccessService) HasPermission(ownerID, requesterID uuid.UUID, requesterEmail string, pick func(models.Permissions) bool) (bool, error) {
	var grants []models.AccessGrant
	err := s.db.Where("owner_user_id = ? AND (recipient_user_id = ? OR recipient_email = ?) AND status = ?",
		ownerID, requesterID, requesterEmail, models.GrantStatusActive).
		Find(&grants).Error
	if err != nil {
		return false, err
	}

	for _, g := range grants {
		if pick(g.Permissions) {
			return true, nil
		}
	}
	return false, nil
}

func (s *AccessService) toGrantView(g *models.AccessGrant) *GrantView {
	view := &GrantView{
		ID:             g.ID,
		RecipientEmail: g.RecipientEmail,
		Relationship:   g.Relationship,
		Permissions:    g.Permissions,
		Status:         g.Status,
		GrantedAt:      g.GrantedAt,
		RevokedAt:      g.RevokedAt,
	}
	if g.RecipientUserID != nil {
		var recipient models.User
		if err := s.db.First(&recipient, "id = ?", *g.RecipientUserID).Error; err == nil {
			view.RecipientName = recipient.FullName
		}
	}
	return view
}

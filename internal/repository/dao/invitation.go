package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvitationNotFound    = errors.New("invitation not found")
	ErrInvitationNotPending  = errors.New("invitation is not pending")
	ErrApplicationNotFound   = errors.New("application not found")
	ErrApplicationNotPending = errors.New("application is not pending")
)

type Invitation struct {
	ID             uint   `gorm:"primaryKey"`
	Code           string `gorm:"unique;not null"`
	OrganizationID uint   `gorm:"not null;index"`
	InviterID      uint   `gorm:"not null"`
	Mode           string `gorm:"not null"` // "direct" or "referral"
	Email          string
	TargetUserID   *uint
	Role           string `gorm:"not null;default:'member'"`
	Status         string `gorm:"not null;default:'pending'"`

	InviteeName        string
	InvitationReason   string
	EligibilityDetails string

	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Application struct {
	ID             uint   `gorm:"primaryKey"`
	OrganizationID uint   `gorm:"not null;index"`
	InvitationID   uint   `gorm:"not null"`
	ApplicantID    uint   `gorm:"not null"`
	Status         string `gorm:"not null;default:'pending'"`
	ReviewedBy     *uint
	ReviewedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type InvitationDAO struct {
	db *gorm.DB
}

func NewInvitationDAO(db *gorm.DB) *InvitationDAO {
	return &InvitationDAO{
		db: db,
	}
}

func (d *InvitationDAO) Insert(ctx context.Context, invitation Invitation) (Invitation, error) {
	result := d.db.WithContext(ctx).Create(&invitation)
	if result.Error != nil {
		return Invitation{}, result.Error
	}

	return invitation, nil
}

func (d *InvitationDAO) FindByCode(ctx context.Context, code string) (Invitation, error) {
	var invitation Invitation

	result := d.db.WithContext(ctx).First(&invitation, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invitation{}, ErrInvitationNotFound
		}

		return Invitation{}, result.Error
	}

	return invitation, nil
}

func (d *InvitationDAO) FindByID(ctx context.Context, id uint) (Invitation, error) {
	var invitation Invitation

	result := d.db.WithContext(ctx).First(&invitation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invitation{}, ErrInvitationNotFound
		}

		return Invitation{}, result.Error
	}

	return invitation, nil
}

// TransitionStatus moves a pending invitation to a terminal status. The
// WHERE clause on the current status makes concurrent transitions lose
// cleanly instead of overwriting each other.
func (d *InvitationDAO) TransitionStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Invitation{}).
		Where("id = ? AND status = ?", id, "pending").
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvitationNotPending
	}

	return nil
}

// Accept flips a pending invitation to accepted and applies the
// acceptance side effect in the same transaction. Direct mode inserts
// the organization member, referral mode inserts a pending application.
// A failed side effect rolls the status back, so the code stays usable.
func (d *InvitationDAO) Accept(ctx context.Context, id, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invitation Invitation
		if err := tx.First(&invitation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvitationNotFound
			}

			return err
		}

		result := tx.Model(&Invitation{}).
			Where("id = ? AND status = ?", id, "pending").
			Update("status", "accepted")
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvitationNotPending
		}

		if invitation.Mode == "direct" {
			member := OrgMember{
				OrganizationID: invitation.OrganizationID,
				UserID:         userID,
				Role:           invitation.Role,
			}
			if err := tx.Create(&member).Error; err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) &&
					pgErr.Code == pgerrcode.UniqueViolation &&
					strings.Contains(pgErr.Message, "idx_org_members_pair") {
					return ErrOrgMemberExists
				}

				return err
			}

			return nil
		}

		application := Application{
			OrganizationID: invitation.OrganizationID,
			InvitationID:   id,
			ApplicantID:    userID,
			Status:         "pending",
		}

		return tx.Create(&application).Error
	})
}

func (d *InvitationDAO) InsertApplication(ctx context.Context, application Application) (Application, error) {
	result := d.db.WithContext(ctx).Create(&application)
	if result.Error != nil {
		return Application{}, result.Error
	}

	return application, nil
}

func (d *InvitationDAO) FindApplicationByID(ctx context.Context, id uint) (Application, error) {
	var application Application

	result := d.db.WithContext(ctx).First(&application, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Application{}, ErrApplicationNotFound
		}

		return Application{}, result.Error
	}

	return application, nil
}

func (d *InvitationDAO) ListApplicationsByOrg(ctx context.Context, orgID uint) ([]Application, error) {
	var applications []Application

	result := d.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at asc").
		Find(&applications)
	if result.Error != nil {
		return nil, result.Error
	}

	return applications, nil
}

// ReviewApplication closes a pending application and, on approval, adds
// the applicant to the organization in the same transaction.
func (d *InvitationDAO) ReviewApplication(ctx context.Context, id uint, reviewerID uint, status, role string) error {
	now := time.Now()

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var application Application
		if err := tx.First(&application, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}

			return err
		}

		result := tx.Model(&Application{}).
			Where("id = ? AND status = ?", id, "pending").
			Updates(map[string]interface{}{
				"status":      status,
				"reviewed_by": reviewerID,
				"reviewed_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrApplicationNotPending
		}

		if status != "approved" {
			return nil
		}

		member := OrgMember{
			OrganizationID: application.OrganizationID,
			UserID:         application.ApplicantID,
			Role:           role,
		}

		return tx.Create(&member).Error
	})
}

package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrgMemberNotFound    = errors.New("organization member not found")
	ErrOrgMemberExists      = errors.New("user is already an organization member")
)

type Organization struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Slug        string `gorm:"unique;not null"`
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrgMember struct {
	ID             uint   `gorm:"primaryKey"`
	OrganizationID uint   `gorm:"not null;uniqueIndex:idx_org_members_pair"`
	UserID         uint   `gorm:"not null;uniqueIndex:idx_org_members_pair"`
	Role           string `gorm:"not null;default:'member'"` // "admin" or "member"

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrganizationDAO struct {
	db *gorm.DB
}

func NewOrganizationDAO(db *gorm.DB) *OrganizationDAO {
	return &OrganizationDAO{
		db: db,
	}
}

// Insert stores the organization and makes the creator its first admin
// in one transaction.
func (d *OrganizationDAO) Insert(ctx context.Context, org Organization, creatorID uint) (Organization, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		member := OrgMember{
			OrganizationID: org.ID,
			UserID:         creatorID,
			Role:           "admin",
		}

		return tx.Create(&member).Error
	})
	if err != nil {
		return Organization{}, err
	}

	return org, nil
}

func (d *OrganizationDAO) FindByID(ctx context.Context, id uint) (Organization, error) {
	var org Organization

	result := d.db.WithContext(ctx).First(&org, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Organization{}, ErrOrganizationNotFound
		}

		return Organization{}, result.Error
	}

	return org, nil
}

func (d *OrganizationDAO) FindMember(ctx context.Context, orgID, userID uint) (OrgMember, error) {
	var member OrgMember

	result := d.db.WithContext(ctx).
		First(&member, "organization_id = ? AND user_id = ?", orgID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return OrgMember{}, ErrOrgMemberNotFound
		}

		return OrgMember{}, result.Error
	}

	return member, nil
}

func (d *OrganizationDAO) ListMembers(ctx context.Context, orgID uint) ([]OrgMember, error) {
	var members []OrgMember

	result := d.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at asc").
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}


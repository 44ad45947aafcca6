package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type Submission struct {
	ID          uint   `gorm:"primaryKey"`
	EventID     uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string
	LeaderID    uint   `gorm:"not null"`
	Status      string `gorm:"not null;default:'submitted'"`

	BaseVotes   int `gorm:"not null;default:0"`
	ManualVotes int `gorm:"not null;default:0"`

	Members []SubmissionMember `gorm:"foreignKey:SubmissionID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SubmissionMember struct {
	ID           uint `gorm:"primaryKey"`
	SubmissionID uint `gorm:"not null;uniqueIndex:idx_submission_members_pair"`
	UserID       uint `gorm:"not null;uniqueIndex:idx_submission_members_pair"`
}

type SubmissionDAO struct {
	db *gorm.DB
}

func NewSubmissionDAO(db *gorm.DB) *SubmissionDAO {
	return &SubmissionDAO{
		db: db,
	}
}

// Insert stores the submission and its team member rows in one transaction.
func (d *SubmissionDAO) Insert(ctx context.Context, submission Submission, memberIDs []uint) (Submission, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}

		for _, userID := range memberIDs {
			member := SubmissionMember{
				SubmissionID: submission.ID,
				UserID:       userID,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
			submission.Members = append(submission.Members, member)
		}

		return nil
	})
	if err != nil {
		return Submission{}, err
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByID(ctx context.Context, id uint) (Submission, error) {
	var submission Submission

	result := d.db.WithContext(ctx).Preload("Members").First(&submission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}

		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *SubmissionDAO) ListByEvent(ctx context.Context, eventID uint) ([]Submission, error) {
	var submissions []Submission

	result := d.db.WithContext(ctx).
		Preload("Members").
		Where("event_id = ?", eventID).
		Order("created_at asc").
		Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}

func (d *SubmissionDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Submission{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}

func (d *SubmissionDAO) UpdateManualVotes(ctx context.Context, id uint, manualVotes int) error {
	result := d.db.WithContext(ctx).
		Model(&Submission{}).
		Where("id = ?", id).
		Update("manual_votes", manualVotes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}

// Delete removes the submission together with its member and vote rows.
func (d *SubmissionDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", id).Delete(&Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_id = ?", id).Delete(&SubmissionMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Submission{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSubmissionNotFound
		}

		return nil
	})
}

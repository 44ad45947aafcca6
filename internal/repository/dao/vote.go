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
	// ErrVoteExists is returned when the (user, submission) pair already
	// holds a vote. The unique index is the authoritative guard; callers
	// treat their own pre-checks as a fast path only.
	ErrVoteExists   = errors.New("vote already exists")
	ErrVoteNotFound = errors.New("vote not found")
)

type Vote struct {
	ID           uint `gorm:"primaryKey"`
	EventID      uint `gorm:"not null;index"`
	SubmissionID uint `gorm:"not null;uniqueIndex:idx_votes_user_submission"`
	UserID       uint `gorm:"not null;uniqueIndex:idx_votes_user_submission"`

	CreatedAt time.Time
}

type VoteDAO struct {
	db *gorm.DB
}

func NewVoteDAO(db *gorm.DB) *VoteDAO {
	return &VoteDAO{
		db: db,
	}
}

func (d *VoteDAO) Insert(ctx context.Context, vote Vote) (Vote, error) {
	result := d.db.WithContext(ctx).Create(&vote)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "idx_votes_user_submission") {
			return Vote{}, ErrVoteExists
		}

		return Vote{}, result.Error
	}

	return vote, nil
}

func (d *VoteDAO) Delete(ctx context.Context, userID, submissionID uint) error {
	result := d.db.WithContext(ctx).
		Where("user_id = ? AND submission_id = ?", userID, submissionID).
		Delete(&Vote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVoteNotFound
	}

	return nil
}

func (d *VoteDAO) Exists(ctx context.Context, userID, submissionID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Vote{}).
		Where("user_id = ? AND submission_id = ?", userID, submissionID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *VoteDAO) CountByUserAndEvent(ctx context.Context, userID, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Vote{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *VoteDAO) CountBySubmission(ctx context.Context, submissionID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Vote{}).
		Where("submission_id = ?", submissionID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

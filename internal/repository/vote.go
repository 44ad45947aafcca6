package repository

import (
	"context"
	"fmt"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository/dao"
)

var (
	ErrVoteExists   = dao.ErrVoteExists
	ErrVoteNotFound = dao.ErrVoteNotFound
)

type VoteDAO interface {
	Insert(ctx context.Context, vote dao.Vote) (dao.Vote, error)
	Delete(ctx context.Context, userID, submissionID uint) error
	Exists(ctx context.Context, userID, submissionID uint) (bool, error)
	CountByUserAndEvent(ctx context.Context, userID, eventID uint) (int64, error)
	CountBySubmission(ctx context.Context, submissionID uint) (int64, error)
}

type VoteRepository struct {
	dao VoteDAO
}

func NewVoteRepository(dao VoteDAO) *VoteRepository {
	return &VoteRepository{
		dao: dao,
	}
}

func (r *VoteRepository) Create(ctx context.Context, vote domain.Vote) (domain.Vote, error) {
	created, err := r.dao.Insert(ctx, dao.Vote{
		EventID:      vote.EventID,
		SubmissionID: vote.SubmissionID,
		UserID:       vote.UserID,
	})
	if err != nil {
		return domain.Vote{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return domain.Vote{
		ID:           created.ID,
		EventID:      created.EventID,
		SubmissionID: created.SubmissionID,
		UserID:       created.UserID,
		CreatedAt:    created.CreatedAt,
	}, nil
}

func (r *VoteRepository) Delete(ctx context.Context, userID, submissionID uint) error {
	if err := r.dao.Delete(ctx, userID, submissionID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *VoteRepository) Exists(ctx context.Context, userID, submissionID uint) (bool, error) {
	exists, err := r.dao.Exists(ctx, userID, submissionID)
	if err != nil {
		return false, fmt.Errorf("r.dao.Exists -> %w", err)
	}

	return exists, nil
}

func (r *VoteRepository) CountByUserAndEvent(ctx context.Context, userID, eventID uint) (int, error) {
	count, err := r.dao.CountByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByUserAndEvent -> %w", err)
	}

	return int(count), nil
}

func (r *VoteRepository) CountBySubmission(ctx context.Context, submissionID uint) (int, error) {
	count, err := r.dao.CountBySubmission(ctx, submissionID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountBySubmission -> %w", err)
	}

	return int(count), nil
}

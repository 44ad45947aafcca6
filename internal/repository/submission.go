package repository

import (
	"context"
	"fmt"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository/dao"
)

var ErrSubmissionNotFound = dao.ErrSubmissionNotFound

type SubmissionDAO interface {
	Insert(ctx context.Context, submission dao.Submission, memberIDs []uint) (dao.Submission, error)
	FindByID(ctx context.Context, id uint) (dao.Submission, error)
	ListByEvent(ctx context.Context, eventID uint) ([]dao.Submission, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpdateManualVotes(ctx context.Context, id uint, manualVotes int) error
	Delete(ctx context.Context, id uint) error
}

type SubmissionRepository struct {
	dao SubmissionDAO
}

func NewSubmissionRepository(dao SubmissionDAO) *SubmissionRepository {
	return &SubmissionRepository{
		dao: dao,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	created, err := r.dao.Insert(ctx, dao.Submission{
		EventID:     submission.EventID,
		Name:        submission.Name,
		Description: submission.Description,
		LeaderID:    submission.LeaderID,
		Status:      string(domain.SubmissionStatusSubmitted),
		BaseVotes:   submission.BaseVotes,
	}, submission.MemberIDs)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (domain.Submission, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SubmissionRepository) ListByEvent(ctx context.Context, eventID uint) ([]domain.Submission, error) {
	found, err := r.dao.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByEvent -> %w", err)
	}

	submissions := make([]domain.Submission, 0, len(found))
	for _, s := range found {
		submissions = append(submissions, r.daoToDomain(s))
	}

	return submissions, nil
}

func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id uint, status domain.SubmissionStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *SubmissionRepository) UpdateManualVotes(ctx context.Context, id uint, manualVotes int) error {
	if err := r.dao.UpdateManualVotes(ctx, id, manualVotes); err != nil {
		return fmt.Errorf("r.dao.UpdateManualVotes -> %w", err)
	}

	return nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SubmissionRepository) daoToDomain(s dao.Submission) domain.Submission {
	memberIDs := make([]uint, 0, len(s.Members))
	for _, m := range s.Members {
		memberIDs = append(memberIDs, m.UserID)
	}

	return domain.Submission{
		ID:          s.ID,
		EventID:     s.EventID,
		Name:        s.Name,
		Description: s.Description,
		LeaderID:    s.LeaderID,
		MemberIDs:   memberIDs,
		Status:      domain.SubmissionStatus(s.Status),
		BaseVotes:   s.BaseVotes,
		ManualVotes: s.ManualVotes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

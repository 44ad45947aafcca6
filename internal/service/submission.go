package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository"
)

var (
	ErrSubmissionNotFound = repository.ErrSubmissionNotFound
	ErrNotEventOrganizer  = errors.New("user is not the event organizer")
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission domain.Submission) (domain.Submission, error)
	FindByID(ctx context.Context, id uint) (domain.Submission, error)
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Submission, error)
	UpdateStatus(ctx context.Context, id uint, status domain.SubmissionStatus) error
	UpdateManualVotes(ctx context.Context, id uint, manualVotes int) error
	Delete(ctx context.Context, id uint) error
}

type SubmissionEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type SubmissionVoteCounter interface {
	CountBySubmission(ctx context.Context, submissionID uint) (int, error)
}

type SubmissionService struct {
	repo      SubmissionRepository
	eventRepo SubmissionEventRepository
	votes     SubmissionVoteCounter
}

func NewSubmissionService(repo SubmissionRepository, eventRepo SubmissionEventRepository, votes SubmissionVoteCounter) *SubmissionService {
	return &SubmissionService{
		repo:      repo,
		eventRepo: eventRepo,
		votes:     votes,
	}
}

func (s *SubmissionService) CreateSubmission(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	if _, err := s.eventRepo.FindByID(ctx, submission.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Submission{}, ErrEventNotFound
		}

		return domain.Submission{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, submission)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id uint) (domain.Submission, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return domain.Submission{}, ErrSubmissionNotFound
		}

		return domain.Submission{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return s.withTotalVotes(ctx, submission)
}

func (s *SubmissionService) GetSubmissionsByEvent(ctx context.Context, eventID uint) ([]domain.Submission, error) {
	submissions, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByEvent -> %w", err)
	}

	for i, submission := range submissions {
		submissions[i], err = s.withTotalVotes(ctx, submission)
		if err != nil {
			return nil, err
		}
	}

	return submissions, nil
}

// ReviewSubmission lets the event organizer change a submission's review
// status and/or its manual vote adjustment.
func (s *SubmissionService) ReviewSubmission(ctx context.Context, submissionID, actorID uint, status *domain.SubmissionStatus, manualVotes *int) (domain.Submission, error) {
	submission, err := s.requireOrganizer(ctx, submissionID, actorID)
	if err != nil {
		return domain.Submission{}, err
	}

	if status != nil {
		if err = s.repo.UpdateStatus(ctx, submissionID, *status); err != nil {
			return domain.Submission{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
		}
		submission.Status = *status
	}

	if manualVotes != nil {
		if err = s.repo.UpdateManualVotes(ctx, submissionID, *manualVotes); err != nil {
			return domain.Submission{}, fmt.Errorf("s.repo.UpdateManualVotes -> %w", err)
		}
		submission.ManualVotes = *manualVotes
	}

	return s.withTotalVotes(ctx, submission)
}

// DeleteSubmission removes the submission and its vote records. Only
// the event organizer may delete.
func (s *SubmissionService) DeleteSubmission(ctx context.Context, submissionID, actorID uint) error {
	if _, err := s.requireOrganizer(ctx, submissionID, actorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, submissionID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *SubmissionService) requireOrganizer(ctx context.Context, submissionID, actorID uint) (domain.Submission, error) {
	submission, err := s.repo.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return domain.Submission{}, ErrSubmissionNotFound
		}

		return domain.Submission{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, submission.EventID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if event.OrganizerID != actorID {
		return domain.Submission{}, ErrNotEventOrganizer
	}

	return submission, nil
}

func (s *SubmissionService) withTotalVotes(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	count, err := s.votes.CountBySubmission(ctx, submission.ID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.votes.CountBySubmission -> %w", err)
	}

	submission.TotalVotes = submission.BaseVotes + submission.ManualVotes + count

	return submission, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository"
)

var (
	ErrVotingClosed         = errors.New("voting window is closed")
	ErrVotingNotEnabled     = errors.New("voting is not enabled for this event")
	ErrRegistrationRequired = errors.New("voting requires an active event registration")
	ErrSelfVoteForbidden    = errors.New("cannot vote for your own submission")
	ErrQuotaExhausted       = errors.New("no votes remaining")
	ErrAlreadyVoted         = errors.New("already voted for this submission")
	ErrNotVoted             = errors.New("no vote to remove")
)

type VoteEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	IsRegistered(ctx context.Context, eventID, userID uint) (bool, error)
}

type VoteSubmissionRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Submission, error)
}

type VoteRepository interface {
	Create(ctx context.Context, vote domain.Vote) (domain.Vote, error)
	Delete(ctx context.Context, userID, submissionID uint) error
	Exists(ctx context.Context, userID, submissionID uint) (bool, error)
	CountByUserAndEvent(ctx context.Context, userID, eventID uint) (int, error)
}

// VoteService is the vote ledger: it decides whether a vote is allowed,
// records it, and reports the caller's remaining budget.
type VoteService struct {
	repo           VoteRepository
	eventRepo      VoteEventRepository
	submissionRepo VoteSubmissionRepository
}

func NewVoteService(repo VoteRepository, eventRepo VoteEventRepository, submissionRepo VoteSubmissionRepository) *VoteService {
	return &VoteService{
		repo:           repo,
		eventRepo:      eventRepo,
		submissionRepo: submissionRepo,
	}
}

// Vote records one vote by userID for submissionID and returns the
// updated remaining-vote count (nil under per-project like mode).
//
// The quota and duplicate checks here are a fast path; the database
// unique index on (user_id, submission_id) is the invariant, and a
// unique violation on insert surfaces as ErrAlreadyVoted.
func (s *VoteService) Vote(ctx context.Context, userID, submissionID, eventID uint) (*int, error) {
	event, err := s.checkVotingOpen(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.VotingScope == domain.VotingScopeRegistered {
		registered, err := s.eventRepo.IsRegistered(ctx, eventID, userID)
		if err != nil {
			return nil, fmt.Errorf("s.eventRepo.IsRegistered -> %w", err)
		}
		if !registered {
			return nil, ErrRegistrationRequired
		}
	}

	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return nil, ErrSubmissionNotFound
		}

		return nil, fmt.Errorf("s.submissionRepo.FindByID -> %w", err)
	}
	if submission.EventID != eventID {
		return nil, ErrSubmissionNotFound
	}

	if submission.HasTeamMember(userID) {
		return nil, ErrSelfVoteForbidden
	}

	switch event.VoteMode {
	case domain.VoteModeFixedQuota:
		used, err := s.repo.CountByUserAndEvent(ctx, userID, eventID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.CountByUserAndEvent -> %w", err)
		}
		if used >= event.VoteQuota {
			return nil, ErrQuotaExhausted
		}

	case domain.VoteModePerProjectLike:
		exists, err := s.repo.Exists(ctx, userID, submissionID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.Exists -> %w", err)
		}
		if exists {
			return nil, ErrAlreadyVoted
		}
	}

	_, err = s.repo.Create(ctx, domain.Vote{
		EventID:      eventID,
		SubmissionID: submissionID,
		UserID:       userID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrVoteExists) {
			return nil, ErrAlreadyVoted
		}

		return nil, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return s.remainingVotes(ctx, event, userID)
}

// Unvote removes the user's vote for the submission. Removing a vote
// that does not exist is ErrNotVoted rather than a silent no-op. Unlike
// Vote, no window or enabled check applies: retracting support is
// always allowed while the vote row exists.
func (s *VoteService) Unvote(ctx context.Context, userID, submissionID, eventID uint) (*int, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, userID, submissionID); err != nil {
		if errors.Is(err, repository.ErrVoteNotFound) {
			return nil, ErrNotVoted
		}

		return nil, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return s.remainingVotes(ctx, event, userID)
}

// RemainingVotes reports the user's remaining vote budget for the
// event, nil when the event runs in per-project like mode.
func (s *VoteService) RemainingVotes(ctx context.Context, userID, eventID uint) (*int, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	return s.remainingVotes(ctx, event, userID)
}

func (s *VoteService) checkVotingOpen(ctx context.Context, eventID uint) (domain.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if !event.VotingOpenAt(time.Now()) {
		return domain.Event{}, ErrVotingClosed
	}
	if !event.VotingEnabled {
		return domain.Event{}, ErrVotingNotEnabled
	}

	return event, nil
}

func (s *VoteService) remainingVotes(ctx context.Context, event domain.Event, userID uint) (*int, error) {
	if event.VoteMode != domain.VoteModeFixedQuota {
		return nil, nil
	}

	used, err := s.repo.CountByUserAndEvent(ctx, userID, event.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.CountByUserAndEvent -> %w", err)
	}

	remaining := event.VoteQuota - used
	if remaining < 0 {
		remaining = 0
	}

	return &remaining, nil
}

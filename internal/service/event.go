package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository"
)

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrAlreadyRegistered = repository.ErrAlreadyRegistered
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Register(ctx context.Context, eventID, userID uint) (domain.Registration, error)
	IsRegistered(ctx context.Context, eventID, userID uint) (bool, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.VotingScope == "" {
		event.VotingScope = domain.VotingScopeRegistered
	}
	if event.VoteMode == "" {
		event.VoteMode = domain.VoteModeFixedQuota
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) GetEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, nil
}

func (s *EventService) Register(ctx context.Context, eventID, userID uint) (domain.Registration, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return domain.Registration{}, err
	}

	registration, err := s.repo.Register(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			return domain.Registration{}, ErrAlreadyRegistered
		}

		return domain.Registration{}, fmt.Errorf("s.repo.Register -> %w", err)
	}

	return registration, nil
}

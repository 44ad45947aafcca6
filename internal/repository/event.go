package repository

import (
	"context"
	"fmt"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository/dao"
)

var (
	ErrEventNotFound     = dao.ErrEventNotFound
	ErrAlreadyRegistered = dao.ErrAlreadyRegistered
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	List(ctx context.Context) ([]dao.Event, error)
	InsertRegistration(ctx context.Context, reg dao.Registration) (dao.Registration, error)
	HasActiveRegistration(ctx context.Context, eventID, userID uint) (bool, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, r.daoToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) Register(ctx context.Context, eventID, userID uint) (domain.Registration, error) {
	created, err := r.dao.InsertRegistration(ctx, dao.Registration{
		EventID: eventID,
		UserID:  userID,
		Status:  "active",
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.InsertRegistration -> %w", err)
	}

	return domain.Registration{
		ID:        created.ID,
		EventID:   created.EventID,
		UserID:    created.UserID,
		Status:    created.Status,
		CreatedAt: created.CreatedAt,
	}, nil
}

func (r *EventRepository) IsRegistered(ctx context.Context, eventID, userID uint) (bool, error) {
	registered, err := r.dao.HasActiveRegistration(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.HasActiveRegistration -> %w", err)
	}

	return registered, nil
}

func (r *EventRepository) domainToDAO(e domain.Event) dao.Event {
	return dao.Event{
		ID:             e.ID,
		Name:           e.Name,
		Description:    e.Description,
		Location:       e.Location,
		OrganizerID:    e.OrganizerID,
		VotingEnabled:  e.VotingEnabled,
		VotingStartsAt: e.VotingStartsAt,
		VotingEndsAt:   e.VotingEndsAt,
		VotingScope:    string(e.VotingScope),
		VoteMode:       string(e.VoteMode),
		VoteQuota:      e.VoteQuota,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:             e.ID,
		Name:           e.Name,
		Description:    e.Description,
		Location:       e.Location,
		OrganizerID:    e.OrganizerID,
		VotingEnabled:  e.VotingEnabled,
		VotingStartsAt: e.VotingStartsAt,
		VotingEndsAt:   e.VotingEndsAt,
		VotingScope:    domain.VotingScope(e.VotingScope),
		VoteMode:       domain.VoteMode(e.VoteMode),
		VoteQuota:      e.VoteQuota,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

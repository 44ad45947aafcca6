package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository"
)

type regKey struct {
	eventID uint
	userID  uint
}

type fakeEventRepo struct {
	events        map[uint]domain.Event
	registrations map[regKey]domain.Registration
	nextID        uint
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:        make(map[uint]domain.Event),
		registrations: make(map[regKey]domain.Registration),
	}
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	f.nextID++
	event.ID = f.nextID
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeEventRepo) List(_ context.Context) ([]domain.Event, error) {
	var out []domain.Event
	for _, event := range f.events {
		out = append(out, event)
	}

	return out, nil
}

func (f *fakeEventRepo) Register(_ context.Context, eventID, userID uint) (domain.Registration, error) {
	key := regKey{eventID: eventID, userID: userID}
	if _, ok := f.registrations[key]; ok {
		return domain.Registration{}, repository.ErrAlreadyRegistered
	}

	f.nextID++
	registration := domain.Registration{ID: f.nextID, EventID: eventID, UserID: userID, Status: "active"}
	f.registrations[key] = registration

	return registration, nil
}

func (f *fakeEventRepo) IsRegistered(_ context.Context, eventID, userID uint) (bool, error) {
	_, ok := f.registrations[regKey{eventID: eventID, userID: userID}]

	return ok, nil
}

func TestEventService_CreateEvent_Defaults(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, domain.Event{Name: "Hardware Hackathon", OrganizerID: 100})
	require.NoError(t, err)
	assert.Equal(t, domain.VotingScopeRegistered, created.VotingScope)
	assert.Equal(t, domain.VoteModeFixedQuota, created.VoteMode)

	created, err = svc.CreateEvent(ctx, domain.Event{
		Name:        "Demo Day",
		OrganizerID: 100,
		VotingScope: domain.VotingScopePublic,
		VoteMode:    domain.VoteModePerProjectLike,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VotingScopePublic, created.VotingScope)
	assert.Equal(t, domain.VoteModePerProjectLike, created.VoteMode)
}

func TestEventService_Register(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, domain.Event{Name: "Hardware Hackathon", OrganizerID: 100})
	require.NoError(t, err)

	registration, err := svc.Register(ctx, created.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), registration.UserID)

	_, err = svc.Register(ctx, created.ID, 42)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	_, err = svc.Register(ctx, 404, 42)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

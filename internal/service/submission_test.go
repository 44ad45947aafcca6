package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository"
)

type fakeSubmissionRepo struct {
	submissions map[uint]domain.Submission
	nextID      uint
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[uint]domain.Submission)}
}

func (f *fakeSubmissionRepo) Create(_ context.Context, submission domain.Submission) (domain.Submission, error) {
	f.nextID++
	submission.ID = f.nextID
	if submission.Status == "" {
		submission.Status = domain.SubmissionStatusSubmitted
	}
	f.submissions[submission.ID] = submission

	return submission, nil
}

func (f *fakeSubmissionRepo) FindByID(_ context.Context, id uint) (domain.Submission, error) {
	submission, ok := f.submissions[id]
	if !ok {
		return domain.Submission{}, repository.ErrSubmissionNotFound
	}

	return submission, nil
}

func (f *fakeSubmissionRepo) ListByEvent(_ context.Context, eventID uint) ([]domain.Submission, error) {
	var out []domain.Submission
	for _, submission := range f.submissions {
		if submission.EventID == eventID {
			out = append(out, submission)
		}
	}

	return out, nil
}

func (f *fakeSubmissionRepo) UpdateStatus(_ context.Context, id uint, status domain.SubmissionStatus) error {
	submission, ok := f.submissions[id]
	if !ok {
		return repository.ErrSubmissionNotFound
	}

	submission.Status = status
	f.submissions[id] = submission

	return nil
}

func (f *fakeSubmissionRepo) UpdateManualVotes(_ context.Context, id uint, manualVotes int) error {
	submission, ok := f.submissions[id]
	if !ok {
		return repository.ErrSubmissionNotFound
	}

	submission.ManualVotes = manualVotes
	f.submissions[id] = submission

	return nil
}

func (f *fakeSubmissionRepo) Delete(_ context.Context, id uint) error {
	delete(f.submissions, id)

	return nil
}

type fakeSubmissionEventRepo struct {
	events map[uint]domain.Event
}

func (f *fakeSubmissionEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

type fakeVoteCounter struct {
	counts map[uint]int
}

func (f *fakeVoteCounter) CountBySubmission(_ context.Context, submissionID uint) (int, error) {
	return f.counts[submissionID], nil
}

func newSubmissionFixture(event domain.Event) (*SubmissionService, *fakeSubmissionRepo, *fakeVoteCounter) {
	repo := newFakeSubmissionRepo()
	eventRepo := &fakeSubmissionEventRepo{events: map[uint]domain.Event{event.ID: event}}
	votes := &fakeVoteCounter{counts: make(map[uint]int)}

	return NewSubmissionService(repo, eventRepo, votes), repo, votes
}

func TestSubmissionService_CreateSubmission(t *testing.T) {
	svc, _, _ := newSubmissionFixture(domain.Event{ID: 1, OrganizerID: 100})
	ctx := context.Background()

	created, err := svc.CreateSubmission(ctx, domain.Submission{
		EventID:  1,
		Name:     "Line Follower",
		LeaderID: 2,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = svc.CreateSubmission(ctx, domain.Submission{EventID: 404, Name: "Orphan"})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestSubmissionService_TotalVotes(t *testing.T) {
	svc, repo, votes := newSubmissionFixture(domain.Event{ID: 1, OrganizerID: 100})
	ctx := context.Background()

	created, err := svc.CreateSubmission(ctx, domain.Submission{
		EventID:   1,
		Name:      "Line Follower",
		LeaderID:  2,
		BaseVotes: 5,
	})
	require.NoError(t, err)

	stored := repo.submissions[created.ID]
	stored.ManualVotes = 3
	repo.submissions[created.ID] = stored
	votes.counts[created.ID] = 7

	submission, err := svc.GetSubmission(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, submission.TotalVotes, "total is base + manual + ledger count")
}

func TestSubmissionService_ReviewSubmission(t *testing.T) {
	svc, _, _ := newSubmissionFixture(domain.Event{ID: 1, OrganizerID: 100})
	ctx := context.Background()

	created, err := svc.CreateSubmission(ctx, domain.Submission{EventID: 1, Name: "Line Follower", LeaderID: 2})
	require.NoError(t, err)

	approved := domain.SubmissionStatusApproved
	manual := 4

	_, err = svc.ReviewSubmission(ctx, created.ID, 2, &approved, nil)
	assert.ErrorIs(t, err, ErrNotEventOrganizer, "only the organizer reviews")

	reviewed, err := svc.ReviewSubmission(ctx, created.ID, 100, &approved, &manual)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionStatusApproved, reviewed.Status)
	assert.Equal(t, 4, reviewed.ManualVotes)
	assert.Equal(t, 4, reviewed.TotalVotes)
}

func TestSubmissionService_DeleteSubmission(t *testing.T) {
	svc, repo, _ := newSubmissionFixture(domain.Event{ID: 1, OrganizerID: 100})
	ctx := context.Background()

	created, err := svc.CreateSubmission(ctx, domain.Submission{EventID: 1, Name: "Line Follower", LeaderID: 2})
	require.NoError(t, err)

	err = svc.DeleteSubmission(ctx, created.ID, 2)
	assert.ErrorIs(t, err, ErrNotEventOrganizer)

	require.NoError(t, svc.DeleteSubmission(ctx, created.ID, 100))
	assert.Empty(t, repo.submissions)

	err = svc.DeleteSubmission(ctx, created.ID, 100)
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

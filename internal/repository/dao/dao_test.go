package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=community_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=localhost port=%v user=test password=test dbname=community_test sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	if err = pool.Retry(func() error {
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := testDB.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func TestVoteDAO_UniqueIndex(t *testing.T) {
	d := NewVoteDAO(testDB)
	ctx := context.Background()

	vote := Vote{EventID: 1, SubmissionID: 500, UserID: 900}

	inserted, err := d.Insert(ctx, vote)
	require.NoError(t, err)
	assert.NotZero(t, inserted.ID)

	_, err = d.Insert(ctx, vote)
	assert.ErrorIs(t, err, ErrVoteExists)

	// Same user, different submission is fine.
	_, err = d.Insert(ctx, Vote{EventID: 1, SubmissionID: 501, UserID: 900})
	assert.NoError(t, err)

	count, err := d.CountByUserAndEvent(ctx, 900, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestVoteDAO_Delete(t *testing.T) {
	d := NewVoteDAO(testDB)
	ctx := context.Background()

	_, err := d.Insert(ctx, Vote{EventID: 2, SubmissionID: 510, UserID: 901})
	require.NoError(t, err)

	require.NoError(t, d.Delete(ctx, 901, 510))

	err = d.Delete(ctx, 901, 510)
	assert.ErrorIs(t, err, ErrVoteNotFound)

	exists, err := d.Exists(ctx, 901, 510)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInvitationDAO_TransitionStatus(t *testing.T) {
	d := NewInvitationDAO(testDB)
	ctx := context.Background()

	invitation, err := d.Insert(ctx, Invitation{
		Code:           "transition-test",
		OrganizationID: 1,
		InviterID:      900,
		Mode:           "direct",
		Role:           "member",
		Status:         "pending",
		ExpiresAt:      time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, d.TransitionStatus(ctx, invitation.ID, "accepted"))

	// A second transition loses on the status guard.
	err = d.TransitionStatus(ctx, invitation.ID, "canceled")
	assert.ErrorIs(t, err, ErrInvitationNotPending)

	stored, err := d.FindByID(ctx, invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, "accepted", stored.Status)
}

func TestInvitationDAO_Accept(t *testing.T) {
	d := NewInvitationDAO(testDB)
	orgDAO := NewOrganizationDAO(testDB)
	ctx := context.Background()

	invitation, err := d.Insert(ctx, Invitation{
		Code:           "accept-test",
		OrganizationID: 3,
		InviterID:      900,
		Mode:           "direct",
		Role:           "member",
		Status:         "pending",
		ExpiresAt:      time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, d.Accept(ctx, invitation.ID, 960))

	member, err := orgDAO.FindMember(ctx, 3, 960)
	require.NoError(t, err)
	assert.Equal(t, "member", member.Role)

	stored, err := d.FindByID(ctx, invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, "accepted", stored.Status)

	err = d.Accept(ctx, invitation.ID, 961)
	assert.ErrorIs(t, err, ErrInvitationNotPending)
}

func TestInvitationDAO_Accept_RollsBackOnMemberConflict(t *testing.T) {
	d := NewInvitationDAO(testDB)
	ctx := context.Background()

	invitation, err := d.Insert(ctx, Invitation{
		Code:           "accept-conflict-test",
		OrganizationID: 4,
		InviterID:      900,
		Mode:           "direct",
		Role:           "member",
		Status:         "pending",
		ExpiresAt:      time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)

	// 970 joins org 4 first, so accepting on their behalf conflicts.
	require.NoError(t, d.Accept(ctx, invitation.ID, 970))
	second, err := d.Insert(ctx, Invitation{
		Code:           "accept-conflict-test-2",
		OrganizationID: 4,
		InviterID:      900,
		Mode:           "direct",
		Role:           "member",
		Status:         "pending",
		ExpiresAt:      time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)

	err = d.Accept(ctx, second.ID, 970)
	assert.ErrorIs(t, err, ErrOrgMemberExists)

	// The failed side effect rolled the status flip back, so the code
	// is still usable by someone else.
	stored, err := d.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", stored.Status)

	require.NoError(t, d.Accept(ctx, second.ID, 971))
}

func TestInvitationDAO_Accept_ReferralCreatesApplication(t *testing.T) {
	d := NewInvitationDAO(testDB)
	ctx := context.Background()

	invitation, err := d.Insert(ctx, Invitation{
		Code:           "accept-referral-test",
		OrganizationID: 5,
		InviterID:      900,
		Mode:           "referral",
		Role:           "member",
		Status:         "pending",
		ExpiresAt:      time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, d.Accept(ctx, invitation.ID, 980))

	applications, err := d.ListApplicationsByOrg(ctx, 5)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	assert.Equal(t, invitation.ID, applications[0].InvitationID)
	assert.EqualValues(t, 980, applications[0].ApplicantID)
	assert.Equal(t, "pending", applications[0].Status)

	// No membership until an admin approves.
	orgDAO := NewOrganizationDAO(testDB)
	_, err = orgDAO.FindMember(ctx, 5, 980)
	assert.ErrorIs(t, err, ErrOrgMemberNotFound)
}

func TestInvitationDAO_ReviewApplication(t *testing.T) {
	d := NewInvitationDAO(testDB)
	ctx := context.Background()

	invitation, err := d.Insert(ctx, Invitation{
		Code:           "review-test",
		OrganizationID: 2,
		InviterID:      900,
		Mode:           "referral",
		Role:           "member",
		Status:         "pending",
		ExpiresAt:      time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)

	application, err := d.InsertApplication(ctx, Application{
		OrganizationID: 2,
		InvitationID:   invitation.ID,
		ApplicantID:    950,
		Status:         "pending",
	})
	require.NoError(t, err)

	require.NoError(t, d.ReviewApplication(ctx, application.ID, 900, "approved", "member"))

	stored, err := d.FindApplicationByID(ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", stored.Status)
	require.NotNil(t, stored.ReviewedBy)
	assert.EqualValues(t, 900, *stored.ReviewedBy)

	// Approval added the applicant to the organization.
	orgDAO := NewOrganizationDAO(testDB)
	member, err := orgDAO.FindMember(ctx, 2, 950)
	require.NoError(t, err)
	assert.Equal(t, "member", member.Role)

	// Reviewing a closed application fails on the status guard.
	err = d.ReviewApplication(ctx, application.ID, 900, "rejected", "member")
	assert.ErrorIs(t, err, ErrApplicationNotPending)
}

func TestUserDAO_UniqueEmail(t *testing.T) {
	d := NewUserDAO(testDB)
	ctx := context.Background()

	_, err := d.Insert(ctx, User{Email: "unique@example.com", Password: "hash", Name: "Unique"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, User{Email: "unique@example.com", Password: "hash", Name: "Duplicate"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

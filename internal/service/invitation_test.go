package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository"
)

type memberKey struct {
	orgID  uint
	userID uint
}

type fakeOrgRepo struct {
	members map[memberKey]domain.OrgMember
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{members: make(map[memberKey]domain.OrgMember)}
}

func (f *fakeOrgRepo) addMember(orgID, userID uint, role domain.OrgRole) {
	f.members[memberKey{orgID: orgID, userID: userID}] = domain.OrgMember{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
	}
}

func (f *fakeOrgRepo) FindMember(_ context.Context, orgID, userID uint) (domain.OrgMember, error) {
	member, ok := f.members[memberKey{orgID: orgID, userID: userID}]
	if !ok {
		return domain.OrgMember{}, repository.ErrOrgMemberNotFound
	}

	return member, nil
}

func (f *fakeOrgRepo) AddMember(_ context.Context, orgID, userID uint, role domain.OrgRole) (domain.OrgMember, error) {
	key := memberKey{orgID: orgID, userID: userID}
	if _, ok := f.members[key]; ok {
		return domain.OrgMember{}, repository.ErrOrgMemberExists
	}

	member := domain.OrgMember{OrganizationID: orgID, UserID: userID, Role: role}
	f.members[key] = member

	return member, nil
}

type fakeInvitationRepo struct {
	invitations  map[uint]domain.Invitation
	applications map[uint]domain.Application
	orgRepo      *fakeOrgRepo
	nextID       uint
}

func newFakeInvitationRepo(orgRepo *fakeOrgRepo) *fakeInvitationRepo {
	return &fakeInvitationRepo{
		invitations:  make(map[uint]domain.Invitation),
		applications: make(map[uint]domain.Application),
		orgRepo:      orgRepo,
	}
}

func (f *fakeInvitationRepo) Create(_ context.Context, invitation domain.Invitation) (domain.Invitation, error) {
	f.nextID++
	invitation.ID = f.nextID
	invitation.Status = domain.InvitationStatusPending
	f.invitations[invitation.ID] = invitation

	return invitation, nil
}

func (f *fakeInvitationRepo) FindByCode(_ context.Context, code string) (domain.Invitation, error) {
	for _, invitation := range f.invitations {
		if invitation.Code == code {
			return invitation, nil
		}
	}

	return domain.Invitation{}, repository.ErrInvitationNotFound
}

func (f *fakeInvitationRepo) FindByID(_ context.Context, id uint) (domain.Invitation, error) {
	invitation, ok := f.invitations[id]
	if !ok {
		return domain.Invitation{}, repository.ErrInvitationNotFound
	}

	return invitation, nil
}

func (f *fakeInvitationRepo) TransitionStatus(_ context.Context, id uint, status domain.InvitationStatus) error {
	invitation, ok := f.invitations[id]
	if !ok || invitation.Status != domain.InvitationStatusPending {
		return repository.ErrInvitationNotPending
	}

	invitation.Status = status
	f.invitations[id] = invitation

	return nil
}

// Accept applies the side effect before flipping the status, mirroring
// the transactional rollback in the real repository: a failed membership
// write leaves the stored invitation pending.
func (f *fakeInvitationRepo) Accept(_ context.Context, id, userID uint) error {
	invitation, ok := f.invitations[id]
	if !ok || invitation.Status != domain.InvitationStatusPending {
		return repository.ErrInvitationNotPending
	}

	switch invitation.Mode {
	case domain.InvitationModeDirect:
		if _, err := f.orgRepo.AddMember(context.Background(), invitation.OrganizationID, userID, invitation.Role); err != nil {
			return err
		}
	case domain.InvitationModeReferral:
		f.nextID++
		f.applications[f.nextID] = domain.Application{
			ID:             f.nextID,
			OrganizationID: invitation.OrganizationID,
			InvitationID:   id,
			ApplicantID:    userID,
			Status:         domain.ApplicationStatusPending,
		}
	}

	invitation.Status = domain.InvitationStatusAccepted
	f.invitations[id] = invitation

	return nil
}

func (f *fakeInvitationRepo) FindApplicationByID(_ context.Context, id uint) (domain.Application, error) {
	application, ok := f.applications[id]
	if !ok {
		return domain.Application{}, repository.ErrApplicationNotFound
	}

	return application, nil
}

func (f *fakeInvitationRepo) ListApplicationsByOrg(_ context.Context, orgID uint) ([]domain.Application, error) {
	var out []domain.Application
	for _, application := range f.applications {
		if application.OrganizationID == orgID {
			out = append(out, application)
		}
	}

	return out, nil
}

func (f *fakeInvitationRepo) ReviewApplication(_ context.Context, id, reviewerID uint, status domain.ApplicationStatus, role domain.OrgRole) error {
	application, ok := f.applications[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}

	application.Status = status
	application.ReviewedBy = &reviewerID
	f.applications[id] = application

	if status == domain.ApplicationStatusApproved {
		if _, err := f.orgRepo.AddMember(context.Background(), application.OrganizationID, application.ApplicantID, role); err != nil {
			return err
		}
	}

	return nil
}

const (
	orgID   = uint(1)
	adminID = uint(10)
	// memberID is a regular member, inviteeID has no membership.
	memberID  = uint(11)
	inviteeID = uint(20)
)

func newInvitationFixture() (*InvitationService, *fakeInvitationRepo, *fakeOrgRepo) {
	orgRepo := newFakeOrgRepo()
	orgRepo.addMember(orgID, adminID, domain.OrgRoleAdmin)
	orgRepo.addMember(orgID, memberID, domain.OrgRoleMember)

	repo := newFakeInvitationRepo(orgRepo)
	svc := NewInvitationService(repo, orgRepo, "https://community.example.com", 7)

	return svc, repo, orgRepo
}

func validQuestionnaire() *domain.Questionnaire {
	return &domain.Questionnaire{
		InviteeName:        "Alex Morgan (GopherCon)",
		InvitationReason:   "Ran the hardware track at our last hackathon.",
		EligibilityDetails: "Shipped two community projects this year.",
	}
}

func TestInvitationService_CreateInvitation_ModeByRole(t *testing.T) {
	svc, _, _ := newInvitationFixture()
	ctx := context.Background()

	created, err := svc.CreateInvitation(ctx, orgID, adminID, CreateInvitationInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationModeDirect, created.Invitation.Mode)
	assert.Equal(t, domain.OrgRoleMember, created.Invitation.Role, "role defaults to member")
	assert.NotEmpty(t, created.Invitation.Code)
	assert.Equal(t, "https://community.example.com/invitations/"+created.Invitation.Code, created.InvitationURL)

	created, err = svc.CreateInvitation(ctx, orgID, memberID, CreateInvitationInput{
		Questionnaire: validQuestionnaire(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationModeReferral, created.Invitation.Mode)
	assert.NotNil(t, created.Invitation.Questionnaire)
}

func TestInvitationService_CreateInvitation_NotAMember(t *testing.T) {
	svc, _, _ := newInvitationFixture()

	_, err := svc.CreateInvitation(context.Background(), orgID, inviteeID, CreateInvitationInput{})
	assert.ErrorIs(t, err, ErrNotAMember)
}

func TestInvitationService_CreateInvitation_QuestionnaireValidation(t *testing.T) {
	tests := []struct {
		name          string
		questionnaire *domain.Questionnaire
		wantErr       bool
	}{
		{
			name:          "missing questionnaire",
			questionnaire: nil,
			wantErr:       true,
		},
		{
			name: "field too short",
			questionnaire: &domain.Questionnaire{
				InviteeName:        "Alex",
				InvitationReason:   "Ran the hardware track at our last hackathon.",
				EligibilityDetails: "Shipped two community projects this year.",
			},
			wantErr: true,
		},
		{
			name: "field too long",
			questionnaire: &domain.Questionnaire{
				InviteeName:        strings.Repeat("x", 501),
				InvitationReason:   "Ran the hardware track at our last hackathon.",
				EligibilityDetails: "Shipped two community projects this year.",
			},
			wantErr: true,
		},
		{
			// 4 characters is 12 bytes; bounds are counted in
			// characters, so this is still too short.
			name: "multibyte field too short",
			questionnaire: &domain.Questionnaire{
				InviteeName:        strings.Repeat("社", 4),
				InvitationReason:   "Ran the hardware track at our last hackathon.",
				EligibilityDetails: "Shipped two community projects this year.",
			},
			wantErr: true,
		},
		{
			// 200 characters is 600 bytes and must pass.
			name: "multibyte field within bounds",
			questionnaire: &domain.Questionnaire{
				InviteeName:        strings.Repeat("社", 200),
				InvitationReason:   strings.Repeat("区", 500),
				EligibilityDetails: "Shipped two community projects this year.",
			},
			wantErr: false,
		},
		{
			name:          "valid",
			questionnaire: validQuestionnaire(),
			wantErr:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newInvitationFixture()

			_, err := svc.CreateInvitation(context.Background(), orgID, memberID, CreateInvitationInput{
				Questionnaire: tt.questionnaire,
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidationFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInvitationService_CreateInvitation_AdminSkipsQuestionnaire(t *testing.T) {
	svc, _, _ := newInvitationFixture()

	created, err := svc.CreateInvitation(context.Background(), orgID, adminID, CreateInvitationInput{})
	require.NoError(t, err)
	assert.Nil(t, created.Invitation.Questionnaire)
}

func TestInvitationService_ResolveInvitation_Expiry(t *testing.T) {
	svc, repo, _ := newInvitationFixture()
	ctx := context.Background()

	created, err := svc.CreateInvitation(ctx, orgID, adminID, CreateInvitationInput{})
	require.NoError(t, err)

	resolved, err := svc.ResolveInvitation(ctx, created.Invitation.Code)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationStatusPending, resolved.Status)

	// Push the deadline into the past; the stored row stays pending but
	// the invitation is functionally expired.
	stored := repo.invitations[created.Invitation.ID]
	stored.ExpiresAt = time.Now().Add(-8 * 24 * time.Hour)
	repo.invitations[created.Invitation.ID] = stored

	_, err = svc.ResolveInvitation(ctx, created.Invitation.Code)
	assert.ErrorIs(t, err, ErrInvitationExpired)
	assert.Equal(t, domain.InvitationStatusPending, repo.invitations[created.Invitation.ID].Status)

	_, err = svc.AcceptInvitation(ctx, created.Invitation.Code, inviteeID)
	assert.ErrorIs(t, err, ErrInvitationExpired, "expired invitations cannot be accepted")
}

func TestInvitationService_ResolveInvitation_NotFound(t *testing.T) {
	svc, _, _ := newInvitationFixture()

	_, err := svc.ResolveInvitation(context.Background(), "no-such-code")
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}

func TestInvitationService_AcceptInvitation_Direct(t *testing.T) {
	svc, _, orgRepo := newInvitationFixture()
	ctx := context.Background()

	created, err := svc.CreateInvitation(ctx, orgID, adminID, CreateInvitationInput{})
	require.NoError(t, err)

	accepted, err := svc.AcceptInvitation(ctx, created.Invitation.Code, inviteeID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationStatusAccepted, accepted.Status)

	member, err := orgRepo.FindMember(ctx, orgID, inviteeID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrgRoleMember, member.Role)
}

func TestInvitationService_AcceptInvitation_Referral(t *testing.T) {
	svc, _, orgRepo := newInvitationFixture()
	ctx := context.Background()

	created, err := svc.CreateInvitation(ctx, orgID, memberID, CreateInvitationInput{
		Questionnaire: validQuestionnaire(),
	})
	require.NoError(t, err)

	accepted, err := svc.AcceptInvitation(ctx, created.Invitation.Code, inviteeID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationStatusAccepted, accepted.Status)

	// Referral acceptance does not grant membership; it opens an
	// application for admin review.
	_, err = orgRepo.FindMember(ctx, orgID, inviteeID)
	assert.ErrorIs(t, err, repository.ErrOrgMemberNotFound)

	applications, err := svc.ListApplications(ctx, orgID, adminID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	assert.Equal(t, inviteeID, applications[0].ApplicantID)
	assert.Equal(t, domain.ApplicationStatusPending, applications[0].Status)
	assert.Equal(t, created.Invitation.ID, applications[0].InvitationID)
}

func TestInvitationService_AcceptInvitation_FailedAcceptKeepsCodeUsable(t *testing.T) {
	svc, repo, orgRepo := newInvitationFixture()
	ctx := context.Background()

	created, err := svc.CreateInvitation(ctx, orgID, adminID, CreateInvitationInput{})
	require.NoError(t, err)

	// An existing member accepting fails, and must not burn the code:
	// the invitation stays pending for the intended invitee.
	_, err = svc.AcceptInvitation(ctx, created.Invitation.Code, memberID)
	assert.ErrorIs(t, err, ErrAlreadyMember)
	assert.Equal(t, domain.InvitationStatusPending, repo.invitations[created.Invitation.ID].Status)

	_, err = svc.AcceptInvitation(ctx, created.Invitation.Code, inviteeID)
	require.NoError(t, err)

	_, err = orgRepo.FindMember(ctx, orgID, inviteeID)
	assert.NoError(t, err)
}

func TestInvitationService_AcceptInvitation_NotPending(t *testing.T) {
	svc, _, _ := newInvitationFixture()
	ctx := context.Background()

	created, err := svc.CreateInvitation(ctx, orgID, adminID, CreateInvitationInput{})
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(ctx, created.Invitation.Code, inviteeID)
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(ctx, created.Invitation.Code, inviteeID)
	assert.ErrorIs(t, err, ErrInvitationNotPending)
}

func TestInvitationService_RejectInvitation(t *testing.T) {
	svc, repo, _ := newInvitationFixture()
	ctx := context.Background()

	created, err := svc.CreateInvitation(ctx, orgID, adminID, CreateInvitationInput{})
	require.NoError(t, err)

	err = svc.RejectInvitation(ctx, created.Invitation.Code, inviteeID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationStatusRejected, repo.invitations[created.Invitation.ID].Status)

	err = svc.RejectInvitation(ctx, created.Invitation.Code, inviteeID)
	assert.ErrorIs(t, err, ErrInvitationNotPending)
}

func TestInvitationService_CancelInvitation(t *testing.T) {
	tests := []struct {
		name    string
		actorID uint
		wantErr error
	}{
		{
			name:    "issuer may cancel",
			actorID: memberID,
		},
		{
			name:    "org admin may cancel",
			actorID: adminID,
		},
		{
			name:    "outsider may not cancel",
			actorID: inviteeID,
			wantErr: ErrNotAMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, orgRepo := newInvitationFixture()
			// A second regular member who is neither issuer nor admin.
			orgRepo.addMember(orgID, 12, domain.OrgRoleMember)
			ctx := context.Background()

			created, err := svc.CreateInvitation(ctx, orgID, memberID, CreateInvitationInput{
				Questionnaire: validQuestionnaire(),
			})
			require.NoError(t, err)

			err = svc.CancelInvitation(ctx, created.Invitation.ID, tt.actorID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.InvitationStatusCanceled, repo.invitations[created.Invitation.ID].Status)
		})
	}
}

func TestInvitationService_CancelInvitation_MemberNotIssuer(t *testing.T) {
	svc, _, orgRepo := newInvitationFixture()
	orgRepo.addMember(orgID, 12, domain.OrgRoleMember)
	ctx := context.Background()

	created, err := svc.CreateInvitation(ctx, orgID, memberID, CreateInvitationInput{
		Questionnaire: validQuestionnaire(),
	})
	require.NoError(t, err)

	err = svc.CancelInvitation(ctx, created.Invitation.ID, 12)
	assert.ErrorIs(t, err, ErrNotAnAdmin)
}

func TestInvitationService_ReviewApplication(t *testing.T) {
	svc, _, orgRepo := newInvitationFixture()
	ctx := context.Background()

	created, err := svc.CreateInvitation(ctx, orgID, memberID, CreateInvitationInput{
		Questionnaire: validQuestionnaire(),
	})
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(ctx, created.Invitation.Code, inviteeID)
	require.NoError(t, err)

	applications, err := svc.ListApplications(ctx, orgID, adminID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	applicationID := applications[0].ID

	err = svc.ReviewApplication(ctx, applicationID, memberID, true)
	assert.ErrorIs(t, err, ErrNotAnAdmin, "only admins review applications")

	err = svc.ReviewApplication(ctx, applicationID, adminID, true)
	require.NoError(t, err)

	member, err := orgRepo.FindMember(ctx, orgID, inviteeID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrgRoleMember, member.Role, "approval grants the role the invitation offered")
}

func TestInvitationService_ReviewApplication_Reject(t *testing.T) {
	svc, repo, orgRepo := newInvitationFixture()
	ctx := context.Background()

	created, err := svc.CreateInvitation(ctx, orgID, memberID, CreateInvitationInput{
		Questionnaire: validQuestionnaire(),
	})
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(ctx, created.Invitation.Code, inviteeID)
	require.NoError(t, err)

	applications, err := svc.ListApplications(ctx, orgID, adminID)
	require.NoError(t, err)
	require.Len(t, applications, 1)

	err = svc.ReviewApplication(ctx, applications[0].ID, adminID, false)
	require.NoError(t, err)

	assert.Equal(t, domain.ApplicationStatusRejected, repo.applications[applications[0].ID].Status)
	_, err = orgRepo.FindMember(ctx, orgID, inviteeID)
	assert.ErrorIs(t, err, repository.ErrOrgMemberNotFound)
}

func TestInvitationService_ListApplications_AdminOnly(t *testing.T) {
	svc, _, _ := newInvitationFixture()
	ctx := context.Background()

	_, err := svc.ListApplications(ctx, orgID, memberID)
	assert.ErrorIs(t, err, ErrNotAnAdmin)

	_, err = svc.ListApplications(ctx, orgID, inviteeID)
	assert.ErrorIs(t, err, ErrNotAMember)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/pkg/invitecode"
	"github.com/hackathonweekly/community-api/internal/repository"
)

var (
	ErrNotAMember           = errors.New("user is not a member of the organization")
	ErrNotAnAdmin           = errors.New("user is not an organization admin")
	ErrValidationFailed     = errors.New("questionnaire is required for referral invitations")
	ErrInvitationNotFound   = repository.ErrInvitationNotFound
	ErrInvitationExpired    = errors.New("invitation has expired")
	ErrInvitationNotPending = repository.ErrInvitationNotPending
	ErrApplicationNotFound  = repository.ErrApplicationNotFound
	ErrAlreadyMember        = repository.ErrOrgMemberExists
)

const (
	questionnaireMinLen = 10
	questionnaireMaxLen = 500
)

type InvitationOrgRepository interface {
	FindMember(ctx context.Context, orgID, userID uint) (domain.OrgMember, error)
}

type InvitationRepository interface {
	Create(ctx context.Context, invitation domain.Invitation) (domain.Invitation, error)
	FindByCode(ctx context.Context, code string) (domain.Invitation, error)
	FindByID(ctx context.Context, id uint) (domain.Invitation, error)
	TransitionStatus(ctx context.Context, id uint, status domain.InvitationStatus) error
	Accept(ctx context.Context, invitationID, userID uint) error
	FindApplicationByID(ctx context.Context, id uint) (domain.Application, error)
	ListApplicationsByOrg(ctx context.Context, orgID uint) ([]domain.Application, error)
	ReviewApplication(ctx context.Context, id, reviewerID uint, status domain.ApplicationStatus, role domain.OrgRole) error
}

// CreateInvitationInput carries the invitation form. The questionnaire
// fields are only meaningful for non-admin issuers.
type CreateInvitationInput struct {
	Email         string
	TargetUserID  *uint
	Role          domain.OrgRole
	Questionnaire *domain.Questionnaire
}

// CreatedInvitation is what the issuer gets back to share.
type CreatedInvitation struct {
	Invitation    domain.Invitation
	InvitationURL string
}

// InvitationService issues organization invitations. An admin issuer
// produces a direct-join invitation; a regular member produces a
// referral that turns into a pending application on acceptance.
type InvitationService struct {
	repo    InvitationRepository
	orgRepo InvitationOrgRepository

	baseURL string
	ttl     time.Duration
}

func NewInvitationService(repo InvitationRepository, orgRepo InvitationOrgRepository, baseURL string, ttlDays int) *InvitationService {
	return &InvitationService{
		repo:    repo,
		orgRepo: orgRepo,
		baseURL: baseURL,
		ttl:     time.Duration(ttlDays) * 24 * time.Hour,
	}
}

func (s *InvitationService) CreateInvitation(ctx context.Context, orgID, inviterID uint, input CreateInvitationInput) (CreatedInvitation, error) {
	member, err := s.orgRepo.FindMember(ctx, orgID, inviterID)
	if err != nil {
		if errors.Is(err, repository.ErrOrgMemberNotFound) {
			return CreatedInvitation{}, ErrNotAMember
		}

		return CreatedInvitation{}, fmt.Errorf("s.orgRepo.FindMember -> %w", err)
	}

	mode := domain.InvitationModeReferral
	if member.Role == domain.OrgRoleAdmin {
		mode = domain.InvitationModeDirect
	}

	invitation := domain.Invitation{
		OrganizationID: orgID,
		InviterID:      inviterID,
		Mode:           mode,
		Email:          input.Email,
		TargetUserID:   input.TargetUserID,
		Role:           input.Role,
		ExpiresAt:      time.Now().Add(s.ttl),
	}
	if invitation.Role == "" {
		invitation.Role = domain.OrgRoleMember
	}

	if mode == domain.InvitationModeReferral {
		if err = validateQuestionnaire(input.Questionnaire); err != nil {
			return CreatedInvitation{}, err
		}
		invitation.Questionnaire = input.Questionnaire
	}

	code, err := invitecode.Generate()
	if err != nil {
		return CreatedInvitation{}, fmt.Errorf("invitecode.Generate -> %w", err)
	}
	invitation.Code = code

	created, err := s.repo.Create(ctx, invitation)
	if err != nil {
		return CreatedInvitation{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return CreatedInvitation{
		Invitation:    created,
		InvitationURL: fmt.Sprintf("%v/invitations/%v", s.baseURL, created.Code),
	}, nil
}

// ResolveInvitation looks up an invitation by its shareable code.
// Expiry is evaluated at read time: a pending invitation past its
// deadline resolves to ErrInvitationExpired.
func (s *InvitationService) ResolveInvitation(ctx context.Context, code string) (domain.Invitation, error) {
	invitation, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}

		return domain.Invitation{}, fmt.Errorf("s.repo.FindByCode -> %w", err)
	}

	if invitation.ExpiredAt(time.Now()) {
		return domain.Invitation{}, ErrInvitationExpired
	}

	return invitation, nil
}

// AcceptInvitation accepts a pending invitation on behalf of userID.
// Direct mode joins the organization immediately; referral mode creates
// a pending application for admin review.
func (s *InvitationService) AcceptInvitation(ctx context.Context, code string, userID uint) (domain.Invitation, error) {
	invitation, err := s.ResolveInvitation(ctx, code)
	if err != nil {
		return domain.Invitation{}, err
	}

	// The status flip and its side effect happen in one repository
	// call. If the membership or application write fails, the
	// invitation stays pending and the code remains usable.
	if err = s.repo.Accept(ctx, invitation.ID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvitationNotPending):
			return domain.Invitation{}, ErrInvitationNotPending
		case errors.Is(err, repository.ErrOrgMemberExists):
			return domain.Invitation{}, ErrAlreadyMember
		}

		return domain.Invitation{}, fmt.Errorf("s.repo.Accept -> %w", err)
	}
	invitation.Status = domain.InvitationStatusAccepted

	return invitation, nil
}

func (s *InvitationService) RejectInvitation(ctx context.Context, code string, userID uint) error {
	invitation, err := s.ResolveInvitation(ctx, code)
	if err != nil {
		return err
	}

	if err = s.repo.TransitionStatus(ctx, invitation.ID, domain.InvitationStatusRejected); err != nil {
		if errors.Is(err, repository.ErrInvitationNotPending) {
			return ErrInvitationNotPending
		}

		return fmt.Errorf("s.repo.TransitionStatus -> %w", err)
	}

	return nil
}

// CancelInvitation cancels a pending invitation. Only the issuer or an
// organization admin may cancel.
func (s *InvitationService) CancelInvitation(ctx context.Context, invitationID, actorID uint) error {
	invitation, err := s.repo.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return ErrInvitationNotFound
		}

		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if invitation.InviterID != actorID {
		member, err := s.orgRepo.FindMember(ctx, invitation.OrganizationID, actorID)
		if err != nil {
			if errors.Is(err, repository.ErrOrgMemberNotFound) {
				return ErrNotAMember
			}

			return fmt.Errorf("s.orgRepo.FindMember -> %w", err)
		}
		if member.Role != domain.OrgRoleAdmin {
			return ErrNotAnAdmin
		}
	}

	if err = s.repo.TransitionStatus(ctx, invitation.ID, domain.InvitationStatusCanceled); err != nil {
		if errors.Is(err, repository.ErrInvitationNotPending) {
			return ErrInvitationNotPending
		}

		return fmt.Errorf("s.repo.TransitionStatus -> %w", err)
	}

	return nil
}

func (s *InvitationService) ListApplications(ctx context.Context, orgID, actorID uint) ([]domain.Application, error) {
	if err := s.requireAdmin(ctx, orgID, actorID); err != nil {
		return nil, err
	}

	applications, err := s.repo.ListApplicationsByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListApplicationsByOrg -> %w", err)
	}

	return applications, nil
}

// ReviewApplication approves or rejects a pending referral application.
// Approval adds the applicant as a member with the role the underlying
// invitation offered.
func (s *InvitationService) ReviewApplication(ctx context.Context, applicationID, reviewerID uint, approve bool) error {
	application, err := s.repo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ErrApplicationNotFound
		}

		return fmt.Errorf("s.repo.FindApplicationByID -> %w", err)
	}

	if err = s.requireAdmin(ctx, application.OrganizationID, reviewerID); err != nil {
		return err
	}

	invitation, err := s.repo.FindByID(ctx, application.InvitationID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	status := domain.ApplicationStatusRejected
	if approve {
		status = domain.ApplicationStatusApproved
	}

	if err = s.repo.ReviewApplication(ctx, applicationID, reviewerID, status, invitation.Role); err != nil {
		return fmt.Errorf("s.repo.ReviewApplication -> %w", err)
	}

	return nil
}

func (s *InvitationService) requireAdmin(ctx context.Context, orgID, userID uint) error {
	member, err := s.orgRepo.FindMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrgMemberNotFound) {
			return ErrNotAMember
		}

		return fmt.Errorf("s.orgRepo.FindMember -> %w", err)
	}
	if member.Role != domain.OrgRoleAdmin {
		return ErrNotAnAdmin
	}

	return nil
}

func validateQuestionnaire(q *domain.Questionnaire) error {
	if q == nil {
		return ErrValidationFailed
	}

	for _, field := range []string{q.InviteeName, q.InvitationReason, q.EligibilityDetails} {
		// Bounds are in characters, not bytes.
		n := utf8.RuneCountInString(field)
		if n < questionnaireMinLen || n > questionnaireMaxLen {
			return ErrValidationFailed
		}
	}

	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository/dao"
)

var (
	ErrInvitationNotFound    = dao.ErrInvitationNotFound
	ErrInvitationNotPending  = dao.ErrInvitationNotPending
	ErrApplicationNotFound   = dao.ErrApplicationNotFound
	ErrApplicationNotPending = dao.ErrApplicationNotPending
)

type InvitationDAO interface {
	Insert(ctx context.Context, invitation dao.Invitation) (dao.Invitation, error)
	FindByCode(ctx context.Context, code string) (dao.Invitation, error)
	FindByID(ctx context.Context, id uint) (dao.Invitation, error)
	TransitionStatus(ctx context.Context, id uint, status string) error
	Accept(ctx context.Context, id, userID uint) error
	FindApplicationByID(ctx context.Context, id uint) (dao.Application, error)
	ListApplicationsByOrg(ctx context.Context, orgID uint) ([]dao.Application, error)
	ReviewApplication(ctx context.Context, id uint, reviewerID uint, status, role string) error
}

type InvitationRepository struct {
	dao InvitationDAO
}

func NewInvitationRepository(dao InvitationDAO) *InvitationRepository {
	return &InvitationRepository{
		dao: dao,
	}
}

func (r *InvitationRepository) Create(ctx context.Context, invitation domain.Invitation) (domain.Invitation, error) {
	daoInvitation := dao.Invitation{
		Code:           invitation.Code,
		OrganizationID: invitation.OrganizationID,
		InviterID:      invitation.InviterID,
		Mode:           string(invitation.Mode),
		Email:          invitation.Email,
		TargetUserID:   invitation.TargetUserID,
		Role:           string(invitation.Role),
		Status:         string(domain.InvitationStatusPending),
		ExpiresAt:      invitation.ExpiresAt,
	}
	if invitation.Questionnaire != nil {
		daoInvitation.InviteeName = invitation.Questionnaire.InviteeName
		daoInvitation.InvitationReason = invitation.Questionnaire.InvitationReason
		daoInvitation.EligibilityDetails = invitation.Questionnaire.EligibilityDetails
	}

	created, err := r.dao.Insert(ctx, daoInvitation)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *InvitationRepository) FindByCode(ctx context.Context, code string) (domain.Invitation, error) {
	found, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *InvitationRepository) FindByID(ctx context.Context, id uint) (domain.Invitation, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *InvitationRepository) TransitionStatus(ctx context.Context, id uint, status domain.InvitationStatus) error {
	if err := r.dao.TransitionStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.TransitionStatus -> %w", err)
	}

	return nil
}

// Accept runs the status flip and the membership or application write
// as one unit, so a rejected side effect leaves the invitation pending.
func (r *InvitationRepository) Accept(ctx context.Context, id, userID uint) error {
	if err := r.dao.Accept(ctx, id, userID); err != nil {
		return fmt.Errorf("r.dao.Accept -> %w", err)
	}

	return nil
}

func (r *InvitationRepository) FindApplicationByID(ctx context.Context, id uint) (domain.Application, error) {
	found, err := r.dao.FindApplicationByID(ctx, id)
	if err != nil {
		return domain.Application{}, fmt.Errorf("r.dao.FindApplicationByID -> %w", err)
	}

	return r.applicationDAOToDomain(found), nil
}

func (r *InvitationRepository) ListApplicationsByOrg(ctx context.Context, orgID uint) ([]domain.Application, error) {
	found, err := r.dao.ListApplicationsByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListApplicationsByOrg -> %w", err)
	}

	applications := make([]domain.Application, 0, len(found))
	for _, a := range found {
		applications = append(applications, r.applicationDAOToDomain(a))
	}

	return applications, nil
}

func (r *InvitationRepository) ReviewApplication(ctx context.Context, id, reviewerID uint, status domain.ApplicationStatus, role domain.OrgRole) error {
	if err := r.dao.ReviewApplication(ctx, id, reviewerID, string(status), string(role)); err != nil {
		return fmt.Errorf("r.dao.ReviewApplication -> %w", err)
	}

	return nil
}

func (r *InvitationRepository) daoToDomain(i dao.Invitation) domain.Invitation {
	invitation := domain.Invitation{
		ID:             i.ID,
		Code:           i.Code,
		OrganizationID: i.OrganizationID,
		InviterID:      i.InviterID,
		Mode:           domain.InvitationMode(i.Mode),
		Email:          i.Email,
		TargetUserID:   i.TargetUserID,
		Role:           domain.OrgRole(i.Role),
		Status:         domain.InvitationStatus(i.Status),
		ExpiresAt:      i.ExpiresAt,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
	if i.Mode == string(domain.InvitationModeReferral) {
		invitation.Questionnaire = &domain.Questionnaire{
			InviteeName:        i.InviteeName,
			InvitationReason:   i.InvitationReason,
			EligibilityDetails: i.EligibilityDetails,
		}
	}

	return invitation
}

func (r *InvitationRepository) applicationDAOToDomain(a dao.Application) domain.Application {
	return domain.Application{
		ID:             a.ID,
		OrganizationID: a.OrganizationID,
		InvitationID:   a.InvitationID,
		ApplicantID:    a.ApplicantID,
		Status:         domain.ApplicationStatus(a.Status),
		ReviewedBy:     a.ReviewedBy,
		ReviewedAt:     a.ReviewedAt,
		CreatedAt:      a.CreatedAt,
	}
}

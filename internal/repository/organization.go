package repository

import (
	"context"
	"fmt"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository/dao"
)

var (
	ErrOrganizationNotFound = dao.ErrOrganizationNotFound
	ErrOrgMemberNotFound    = dao.ErrOrgMemberNotFound
	ErrOrgMemberExists      = dao.ErrOrgMemberExists
)

type OrganizationDAO interface {
	Insert(ctx context.Context, org dao.Organization, creatorID uint) (dao.Organization, error)
	FindByID(ctx context.Context, id uint) (dao.Organization, error)
	FindMember(ctx context.Context, orgID, userID uint) (dao.OrgMember, error)
	ListMembers(ctx context.Context, orgID uint) ([]dao.OrgMember, error)
}

type OrganizationRepository struct {
	dao OrganizationDAO
}

func NewOrganizationRepository(dao OrganizationDAO) *OrganizationRepository {
	return &OrganizationRepository{
		dao: dao,
	}
}

func (r *OrganizationRepository) Create(ctx context.Context, org domain.Organization, creatorID uint) (domain.Organization, error) {
	created, err := r.dao.Insert(ctx, dao.Organization{
		Name:        org.Name,
		Slug:        org.Slug,
		Description: org.Description,
	}, creatorID)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uint) (domain.Organization, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *OrganizationRepository) FindMember(ctx context.Context, orgID, userID uint) (domain.OrgMember, error) {
	found, err := r.dao.FindMember(ctx, orgID, userID)
	if err != nil {
		return domain.OrgMember{}, fmt.Errorf("r.dao.FindMember -> %w", err)
	}

	return r.memberDAOToDomain(found), nil
}

func (r *OrganizationRepository) ListMembers(ctx context.Context, orgID uint) ([]domain.OrgMember, error) {
	found, err := r.dao.ListMembers(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListMembers -> %w", err)
	}

	members := make([]domain.OrgMember, 0, len(found))
	for _, m := range found {
		members = append(members, r.memberDAOToDomain(m))
	}

	return members, nil
}

func (r *OrganizationRepository) daoToDomain(o dao.Organization) domain.Organization {
	return domain.Organization{
		ID:          o.ID,
		Name:        o.Name,
		Slug:        o.Slug,
		Description: o.Description,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (r *OrganizationRepository) memberDAOToDomain(m dao.OrgMember) domain.OrgMember {
	return domain.OrgMember{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           domain.OrgRole(m.Role),
		CreatedAt:      m.CreatedAt,
	}
}

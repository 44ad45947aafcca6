package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository"
)

var ErrOrganizationNotFound = repository.ErrOrganizationNotFound

type OrganizationRepository interface {
	Create(ctx context.Context, org domain.Organization, creatorID uint) (domain.Organization, error)
	FindByID(ctx context.Context, id uint) (domain.Organization, error)
	FindMember(ctx context.Context, orgID, userID uint) (domain.OrgMember, error)
	ListMembers(ctx context.Context, orgID uint) ([]domain.OrgMember, error)
}

type OrganizationService struct {
	repo OrganizationRepository
}

func NewOrganizationService(repo OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		repo: repo,
	}
}

// CreateOrganization stores the organization with the creator as its
// first admin.
func (s *OrganizationService) CreateOrganization(ctx context.Context, org domain.Organization, creatorID uint) (domain.Organization, error) {
	created, err := s.repo.Create(ctx, org, creatorID)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *OrganizationService) GetOrganization(ctx context.Context, id uint) (domain.Organization, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			return domain.Organization{}, ErrOrganizationNotFound
		}

		return domain.Organization{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return org, nil
}

func (s *OrganizationService) GetMembers(ctx context.Context, orgID uint) ([]domain.OrgMember, error) {
	if _, err := s.GetOrganization(ctx, orgID); err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListMembers -> %w", err)
	}

	return members, nil
}

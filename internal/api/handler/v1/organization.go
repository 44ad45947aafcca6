package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackathonweekly/community-api/internal/api/handler/v1/request"
	"github.com/hackathonweekly/community-api/internal/api/handler/v1/response"
	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/service"
)

type OrganizationService interface {
	CreateOrganization(ctx context.Context, org domain.Organization, creatorID uint) (domain.Organization, error)
	GetOrganization(ctx context.Context, id uint) (domain.Organization, error)
	GetMembers(ctx context.Context, orgID uint) ([]domain.OrgMember, error)
}

type OrganizationHandler struct {
	svc OrganizationService
}

func NewOrganizationHandler(svc OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		svc: svc,
	}
}

// HandleCreateOrganization godoc
// @Summary      Create an organization
// @Description  Creates an organization; the caller becomes its first admin.
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateOrganizationRequest  true  "Organization details"
// @Success      201    {object}  domain.Organization
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /organizations [post]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleCreateOrganization(ctx *gin.Context) {
	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var input request.CreateOrganizationRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	org := domain.Organization{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	}

	created, err := h.svc.CreateOrganization(ctx.Request.Context(), org, userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateOrganization -> h.svc.CreateOrganization -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetOrganization godoc
// @Summary      Get an organization by ID
// @Tags         organizations
// @Produce      json
// @Param        organizationID  path      int  true  "Organization ID"
// @Success      200             {object}  domain.Organization
// @Failure      400             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /organizations/{organizationID} [get]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleGetOrganization(ctx *gin.Context) {
	orgID, respErr := parseUintParam(ctx, "organizationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	org, err := h.svc.GetOrganization(ctx.Request.Context(), orgID)
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "ID", orgID))

			return
		}

		err = fmt.Errorf("v1.HandleGetOrganization -> h.svc.GetOrganization -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, org)
}

// HandleGetMembers godoc
// @Summary      List organization members
// @Tags         organizations
// @Produce      json
// @Param        organizationID  path      int  true  "Organization ID"
// @Success      200             {array}   domain.OrgMember
// @Failure      400             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /organizations/{organizationID}/members [get]
// @Security     BearerAuth
func (h *OrganizationHandler) HandleGetMembers(ctx *gin.Context) {
	orgID, respErr := parseUintParam(ctx, "organizationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	members, err := h.svc.GetMembers(ctx.Request.Context(), orgID)
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "ID", orgID))

			return
		}

		err = fmt.Errorf("v1.HandleGetMembers -> h.svc.GetMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, members)
}

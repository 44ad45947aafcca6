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

type InvitationService interface {
	CreateInvitation(ctx context.Context, orgID, inviterID uint, input service.CreateInvitationInput) (service.CreatedInvitation, error)
	ResolveInvitation(ctx context.Context, code string) (domain.Invitation, error)
	AcceptInvitation(ctx context.Context, code string, userID uint) (domain.Invitation, error)
	RejectInvitation(ctx context.Context, code string, userID uint) error
	CancelInvitation(ctx context.Context, invitationID, actorID uint) error
	ListApplications(ctx context.Context, orgID, actorID uint) ([]domain.Application, error)
	ReviewApplication(ctx context.Context, applicationID, reviewerID uint, approve bool) error
}

type InvitationHandler struct {
	svc InvitationService
}

func NewInvitationHandler(svc InvitationService) *InvitationHandler {
	return &InvitationHandler{
		svc: svc,
	}
}

// HandleCreateInvitation godoc
// @Summary      Create an organization invitation
// @Description  Admins issue direct-join invitations; regular members
// @Description  issue referrals that require the questionnaire and a
// @Description  later admin approval.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        organizationID  path      int                              true  "Organization ID"
// @Param        input           body      request.CreateInvitationRequest  true  "Invitation details"
// @Success      201             {object}  response.CreateInvitationResponse
// @Failure      400             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /organizations/{organizationID}/invitations [post]
// @Security     BearerAuth
func (h *InvitationHandler) HandleCreateInvitation(ctx *gin.Context) {
	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	orgID, respErr := parseUintParam(ctx, "organizationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var input request.CreateInvitationRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	svcInput := service.CreateInvitationInput{
		Email:        input.Email,
		TargetUserID: input.TargetUserID,
		Role:         domain.OrgRole(input.Role),
	}
	if input.InviteeName != "" || input.InvitationReason != "" || input.EligibilityDetails != "" {
		svcInput.Questionnaire = &domain.Questionnaire{
			InviteeName:        input.InviteeName,
			InvitationReason:   input.InvitationReason,
			EligibilityDetails: input.EligibilityDetails,
		}
	}

	created, err := h.svc.CreateInvitation(ctx.Request.Context(), orgID, userID, svcInput)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAMember):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrValidationFailed):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateInvitation -> h.svc.CreateInvitation -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.CreateInvitationResponse{
		InvitationURL: created.InvitationURL,
		Code:          created.Invitation.Code,
		Mode:          string(created.Invitation.Mode),
	})
}

// HandleResolveInvitation godoc
// @Summary      Resolve an invitation by code
// @Description  Public endpoint used by the acceptance flow. Expired
// @Description  invitations return 410.
// @Tags         invitations
// @Produce      json
// @Param        code  path      string  true  "Invitation code"
// @Success      200   {object}  domain.Invitation
// @Failure      404   {object}  response.Err
// @Failure      410   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /invitations/{code} [get]
func (h *InvitationHandler) HandleResolveInvitation(ctx *gin.Context) {
	code := ctx.Param("code")

	invitation, err := h.svc.ResolveInvitation(ctx.Request.Context(), code)
	if err != nil {
		renderInvitationErr(ctx, err, code)

		return
	}

	ctx.JSON(http.StatusOK, invitation)
}

// HandleAcceptInvitation godoc
// @Summary      Accept an invitation
// @Description  Direct invitations join the organization immediately;
// @Description  referrals create a pending application.
// @Tags         invitations
// @Produce      json
// @Param        code  path      string  true  "Invitation code"
// @Success      200   {object}  domain.Invitation
// @Failure      404   {object}  response.Err
// @Failure      409   {object}  response.Err
// @Failure      410   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /invitations/{code}/accept [post]
// @Security     BearerAuth
func (h *InvitationHandler) HandleAcceptInvitation(ctx *gin.Context) {
	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	code := ctx.Param("code")

	invitation, err := h.svc.AcceptInvitation(ctx.Request.Context(), code, userID)
	if err != nil {
		renderInvitationErr(ctx, err, code)

		return
	}

	ctx.JSON(http.StatusOK, invitation)
}

// HandleRejectInvitation godoc
// @Summary      Reject an invitation
// @Tags         invitations
// @Produce      json
// @Param        code  path  string  true  "Invitation code"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      410  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /invitations/{code}/reject [post]
// @Security     BearerAuth
func (h *InvitationHandler) HandleRejectInvitation(ctx *gin.Context) {
	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	code := ctx.Param("code")

	if err := h.svc.RejectInvitation(ctx.Request.Context(), code, userID); err != nil {
		renderInvitationErr(ctx, err, code)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCancelInvitation godoc
// @Summary      Cancel a pending invitation
// @Description  Only the issuer or an organization admin may cancel.
// @Tags         invitations
// @Produce      json
// @Param        organizationID  path  int  true  "Organization ID"
// @Param        invitationID    path  int  true  "Invitation ID"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizations/{organizationID}/invitations/{invitationID} [delete]
// @Security     BearerAuth
func (h *InvitationHandler) HandleCancelInvitation(ctx *gin.Context) {
	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	invitationID, respErr := parseUintParam(ctx, "invitationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.CancelInvitation(ctx.Request.Context(), invitationID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("invitation", "ID", invitationID))
		case errors.Is(err, service.ErrNotAMember), errors.Is(err, service.ErrNotAnAdmin):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvitationNotPending):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCancelInvitation -> h.svc.CancelInvitation -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListApplications godoc
// @Summary      List referral applications for an organization
// @Description  Admin-only.
// @Tags         invitations
// @Produce      json
// @Param        organizationID  path      int  true  "Organization ID"
// @Success      200             {array}   domain.Application
// @Failure      403             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /organizations/{organizationID}/applications [get]
// @Security     BearerAuth
func (h *InvitationHandler) HandleListApplications(ctx *gin.Context) {
	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	orgID, respErr := parseUintParam(ctx, "organizationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	applications, err := h.svc.ListApplications(ctx.Request.Context(), orgID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotAMember) || errors.Is(err, service.ErrNotAnAdmin) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleListApplications -> h.svc.ListApplications -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, applications)
}

// HandleReviewApplication godoc
// @Summary      Approve or reject a referral application
// @Description  Admin-only; approval adds the applicant as a member.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        organizationID  path  int                               true  "Organization ID"
// @Param        applicationID   path  int                               true  "Application ID"
// @Param        input           body  request.ReviewApplicationRequest  true  "Review decision"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizations/{organizationID}/applications/{applicationID}/review [post]
// @Security     BearerAuth
func (h *InvitationHandler) HandleReviewApplication(ctx *gin.Context) {
	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	applicationID, respErr := parseUintParam(ctx, "applicationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var input request.ReviewApplicationRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.ReviewApplication(ctx.Request.Context(), applicationID, userID, *input.Approve); err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("application", "ID", applicationID))
		case errors.Is(err, service.ErrNotAMember), errors.Is(err, service.ErrNotAnAdmin):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleReviewApplication -> h.svc.ReviewApplication -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

func renderInvitationErr(ctx *gin.Context, err error, code string) {
	switch {
	case errors.Is(err, service.ErrInvitationNotFound):
		response.RenderErr(ctx, response.ErrNotFound("invitation", "code", code))
	case errors.Is(err, service.ErrInvitationExpired):
		response.RenderErr(ctx, response.ErrGone(err))
	case errors.Is(err, service.ErrInvitationNotPending), errors.Is(err, service.ErrAlreadyMember):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		err = fmt.Errorf("v1.renderInvitationErr -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

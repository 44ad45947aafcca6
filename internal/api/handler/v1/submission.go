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

type SubmissionService interface {
	CreateSubmission(ctx context.Context, submission domain.Submission) (domain.Submission, error)
	GetSubmissionsByEvent(ctx context.Context, eventID uint) ([]domain.Submission, error)
	ReviewSubmission(ctx context.Context, submissionID, actorID uint, status *domain.SubmissionStatus, manualVotes *int) (domain.Submission, error)
	DeleteSubmission(ctx context.Context, submissionID, actorID uint) error
}

type SubmissionHandler struct {
	svc SubmissionService
}

func NewSubmissionHandler(svc SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		svc: svc,
	}
}

// HandleCreateSubmission godoc
// @Summary      Submit a team entry to an event
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                              true  "Event ID"
// @Param        input    body      request.CreateSubmissionRequest  true  "Submission details"
// @Success      201      {object}  domain.Submission
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/submissions [post]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleCreateSubmission(ctx *gin.Context) {
	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var input request.CreateSubmissionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	submission := domain.Submission{
		EventID:     eventID,
		Name:        input.Name,
		Description: input.Description,
		LeaderID:    userID,
		MemberIDs:   input.MemberIDs,
	}

	created, err := h.svc.CreateSubmission(ctx.Request.Context(), submission)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))

			return
		}

		err = fmt.Errorf("v1.HandleCreateSubmission -> h.svc.CreateSubmission -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetSubmissions godoc
// @Summary      List an event's submissions with derived vote totals
// @Tags         submissions
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {array}   domain.Submission
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/submissions [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleGetSubmissions(ctx *gin.Context) {
	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	submissions, err := h.svc.GetSubmissionsByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSubmissions -> h.svc.GetSubmissionsByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, submissions)
}

// HandleReviewSubmission godoc
// @Summary      Update a submission's review status or manual votes
// @Description  Organizer-only review action.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        eventID       path      int                              true  "Event ID"
// @Param        submissionID  path      int                              true  "Submission ID"
// @Param        input         body      request.ReviewSubmissionRequest  true  "Review action"
// @Success      200           {object}  domain.Submission
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /events/{eventID}/submissions/{submissionID} [patch]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleReviewSubmission(ctx *gin.Context) {
	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	submissionID, respErr := parseUintParam(ctx, "submissionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var input request.ReviewSubmissionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var status *domain.SubmissionStatus
	if input.Status != nil {
		s := domain.SubmissionStatus(*input.Status)
		status = &s
	}

	updated, err := h.svc.ReviewSubmission(ctx.Request.Context(), submissionID, userID, status, input.ManualVotes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("submission", "ID", submissionID))
		case errors.Is(err, service.ErrNotEventOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleReviewSubmission -> h.svc.ReviewSubmission -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteSubmission godoc
// @Summary      Delete a submission
// @Description  Organizer-only; removes the submission and its votes.
// @Tags         submissions
// @Produce      json
// @Param        eventID       path  int  true  "Event ID"
// @Param        submissionID  path  int  true  "Submission ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/submissions/{submissionID} [delete]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleDeleteSubmission(ctx *gin.Context) {
	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	submissionID, respErr := parseUintParam(ctx, "submissionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.DeleteSubmission(ctx.Request.Context(), submissionID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("submission", "ID", submissionID))
		case errors.Is(err, service.ErrNotEventOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteSubmission -> h.svc.DeleteSubmission -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackathonweekly/community-api/internal/api/handler/v1/response"
	"github.com/hackathonweekly/community-api/internal/service"
)

type VoteService interface {
	Vote(ctx context.Context, userID, submissionID, eventID uint) (*int, error)
	Unvote(ctx context.Context, userID, submissionID, eventID uint) (*int, error)
	RemainingVotes(ctx context.Context, userID, eventID uint) (*int, error)
}

type VoteHandler struct {
	svc VoteService
}

func NewVoteHandler(svc VoteService) *VoteHandler {
	return &VoteHandler{
		svc: svc,
	}
}

// HandleVote godoc
// @Summary      Vote for a submission
// @Description  Records one vote by the caller and returns the remaining
// @Description  vote budget (null under per-project like mode).
// @Tags         votes
// @Produce      json
// @Param        eventID       path      int  true  "Event ID"
// @Param        submissionID  path      int  true  "Submission ID"
// @Success      200           {object}  response.RemainingVotesResponse
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /events/{eventID}/submissions/{submissionID}/vote [post]
// @Security     BearerAuth
func (h *VoteHandler) HandleVote(ctx *gin.Context) {
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

	submissionID, respErr := parseUintParam(ctx, "submissionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	remaining, err := h.svc.Vote(ctx.Request.Context(), userID, submissionID, eventID)
	if err != nil {
		renderVoteErr(ctx, err, eventID, submissionID)

		return
	}

	ctx.JSON(http.StatusOK, response.RemainingVotesResponse{RemainingVotes: remaining})
}

// HandleUnvote godoc
// @Summary      Remove a vote from a submission
// @Tags         votes
// @Produce      json
// @Param        eventID       path      int  true  "Event ID"
// @Param        submissionID  path      int  true  "Submission ID"
// @Success      200           {object}  response.RemainingVotesResponse
// @Failure      400           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /events/{eventID}/submissions/{submissionID}/vote [delete]
// @Security     BearerAuth
func (h *VoteHandler) HandleUnvote(ctx *gin.Context) {
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

	submissionID, respErr := parseUintParam(ctx, "submissionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	remaining, err := h.svc.Unvote(ctx.Request.Context(), userID, submissionID, eventID)
	if err != nil {
		renderVoteErr(ctx, err, eventID, submissionID)

		return
	}

	ctx.JSON(http.StatusOK, response.RemainingVotesResponse{RemainingVotes: remaining})
}

// HandleRemainingVotes godoc
// @Summary      Get the caller's remaining votes for an event
// @Tags         votes
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  response.RemainingVotesResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/remaining-votes [get]
// @Security     BearerAuth
func (h *VoteHandler) HandleRemainingVotes(ctx *gin.Context) {
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

	remaining, err := h.svc.RemainingVotes(ctx.Request.Context(), userID, eventID)
	if err != nil {
		renderVoteErr(ctx, err, eventID, 0)

		return
	}

	ctx.JSON(http.StatusOK, response.RemainingVotesResponse{RemainingVotes: remaining})
}

// renderVoteErr maps the vote ledger's rule rejections onto HTTP
// statuses; anything unrecognized is a 500.
func renderVoteErr(ctx *gin.Context, err error, eventID, submissionID uint) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.RenderErr(ctx, response.ErrNotFound("submission", "ID", submissionID))
	case errors.Is(err, service.ErrVotingClosed),
		errors.Is(err, service.ErrVotingNotEnabled),
		errors.Is(err, service.ErrRegistrationRequired),
		errors.Is(err, service.ErrQuotaExhausted),
		errors.Is(err, service.ErrNotVoted):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrSelfVoteForbidden):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrAlreadyVoted):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		err = fmt.Errorf("v1.renderVoteErr -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

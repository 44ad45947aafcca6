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

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	GetEvents(ctx context.Context) ([]domain.Event, error)
	Register(ctx context.Context, eventID, userID uint) (domain.Registration, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create a new event
// @Description  Creates an event; the caller becomes its organizer.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateEventRequest  true  "Event details"
// @Success      201    {object}  domain.Event
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	userID, respErr := getUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var input request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event := domain.Event{
		Name:           input.Name,
		Description:    input.Description,
		Location:       input.Location,
		OrganizerID:    userID,
		VotingEnabled:  input.VotingEnabled,
		VotingStartsAt: input.VotingStartsAt,
		VotingEndsAt:   input.VotingEndsAt,
		VotingScope:    domain.VotingScope(input.VotingScope),
		VoteMode:       domain.VoteMode(input.VoteMode),
		VoteQuota:      input.VoteQuota,
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), event)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvents(ctx *gin.Context) {
	events, err := h.svc.GetEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvents -> h.svc.GetEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))

			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleRegister godoc
// @Summary      Register for an event
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      201      {object}  domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/register [post]
// @Security     BearerAuth
func (h *EventHandler) HandleRegister(ctx *gin.Context) {
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

	registration, err := h.svc.Register(ctx.Request.Context(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRegistered))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

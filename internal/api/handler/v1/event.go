package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/service"
)

type EventService interface {
	CreateEvent(ctx context.Context, hostID uint, input domain.CreateEventInput) (domain.Event, error)
	PublishEvent(ctx context.Context, eventID, userID uint) (domain.Event, error)
	UnpublishEvent(ctx context.Context, eventID, userID uint) (domain.Event, error)
	DeleteEvent(ctx context.Context, eventID, userID uint) error
	GetEvent(ctx context.Context, eventID uint) (domain.Event, error)
	GetUpcomingEvents(ctx context.Context) ([]domain.Event, error)
	GetAllEvents(ctx context.Context) ([]domain.Event, error)
	GetHostEvents(ctx context.Context, hostID uint) ([]domain.Event, error)
	GetEventsUserAttending(ctx context.Context, userID uint) ([]domain.Event, error)
	GetEventGuestList(ctx context.Context, eventID, userID uint) ([]domain.Guest, error)
	GetHostDetails(ctx context.Context, hostID uint) (domain.HostDetails, error)
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
// @Description  Creates an event with its ticket types and seating allocations. The venue is created on first use of its name.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateEventRequest  true  "Event details"
// @Success      201    {object}  domain.Event
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
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

	tickets := make([]domain.TicketSpec, len(input.Tickets))
	for i, spec := range input.Tickets {
		tickets[i] = domain.TicketSpec{
			Type:         spec.TicketType,
			Price:        spec.Price,
			Amount:       spec.TicketAmount,
			SeatSections: spec.SeatSections,
		}
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), userID, domain.CreateEventInput{
		Name:          input.EventName,
		StartDateTime: input.StartDateTime,
		EndDateTime:   input.EndDateTime,
		Description:   input.EventDescription,
		Type:          input.EventType,
		Capacity:      input.Capacity,
		VenueName:     input.EventVenue,
		VenueLocation: input.EventLocation,
		VenueCapacity: input.VenueCapacity,
		Image1:        input.Image1,
		Image2:        input.Image2,
		Image3:        input.Image3,
		Tickets:       tickets,
	})
	if err != nil {
		if isCreateValidationErr(err) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandlePublishEvent godoc
// @Summary      Publish an event
// @Description  Makes the event visible in public listings. Only the host may publish, and only once.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      201      {object}  response.PublishState
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/publish [post]
// @Security BearerAuth
func (h *EventHandler) HandlePublishEvent(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseEventID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.PublishEvent(ctx.Request.Context(), eventID, userID)
	if err != nil {
		h.renderOwnershipErr(ctx, "HandlePublishEvent", eventID, err, service.ErrAlreadyPublished)
		return
	}

	ctx.JSON(http.StatusCreated, response.PublishState{
		EventID:   event.ID,
		Published: event.Published,
	})
}

// HandleUnpublishEvent godoc
// @Summary      Unpublish an event
// @Description  Removes the event from public listings. Only the host may unpublish a published event.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  response.PublishState
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/unpublish [post]
// @Security BearerAuth
func (h *EventHandler) HandleUnpublishEvent(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseEventID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.UnpublishEvent(ctx.Request.Context(), eventID, userID)
	if err != nil {
		h.renderOwnershipErr(ctx, "HandleUnpublishEvent", eventID, err, service.ErrAlreadyUnpublished)
		return
	}

	ctx.JSON(http.StatusOK, response.PublishState{
		EventID:   event.ID,
		Published: event.Published,
	})
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        eventID  path  int  true  "Event ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseEventID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteEvent(ctx.Request.Context(), eventID, userID); err != nil {
		h.renderOwnershipErr(ctx, "HandleDeleteEvent", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// HandleGetEvent godoc
// @Summary      Get a single event
// @Description  Returns the event joined with its host and venue details.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := parseEventID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleGetUpcomingEvents godoc
// @Summary      List upcoming events
// @Description  Published events that are not sold out and start within the next month.
// @Tags         events
// @Produce      json
// @Success      200  {object}  response.EventList
// @Failure      500  {object}  response.Err
// @Router       /events/upcoming [get]
func (h *EventHandler) HandleGetUpcomingEvents(ctx *gin.Context) {
	events, err := h.svc.GetUpcomingEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetUpcomingEvents -> h.svc.GetUpcomingEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.EventList{Events: events})
}

// HandleGetAllEvents godoc
// @Summary      List all published future events
// @Description  Each event carries a soldOut flag computed from purchase counts.
// @Tags         events
// @Produce      json
// @Success      200  {object}  response.EventList
// @Failure      500  {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleGetAllEvents(ctx *gin.Context) {
	events, err := h.svc.GetAllEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetAllEvents -> h.svc.GetAllEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.EventList{Events: events})
}

// HandleGetHostEvents godoc
// @Summary      List the authenticated host's own events
// @Description  Management view, unfiltered by publish state or date.
// @Tags         events
// @Produce      json
// @Success      200  {object}  response.EventList
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /host/events [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetHostEvents(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	events, err := h.svc.GetHostEvents(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("HandleGetHostEvents -> h.svc.GetHostEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.EventList{Events: events})
}

// HandleGetAttendingEvents godoc
// @Summary      List events the authenticated user holds tickets for
// @Tags         events
// @Produce      json
// @Success      200  {object}  response.EventList
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /user/events [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetAttendingEvents(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	events, err := h.svc.GetEventsUserAttending(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("HandleGetAttendingEvents -> h.svc.GetEventsUserAttending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.EventList{Events: events})
}

// HandleGetGuestList godoc
// @Summary      Get the guest list of an event
// @Description  Name and email of every distinct ticket purchaser. Host only.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  response.GuestList
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/guests [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetGuestList(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseEventID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	guests, err := h.svc.GetEventGuestList(ctx.Request.Context(), eventID, userID)
	if err != nil {
		h.renderOwnershipErr(ctx, "HandleGetGuestList", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.GuestList{Guests: guests})
}

// HandleGetHostDetails godoc
// @Summary      Get a host's public profile
// @Description  Every event the host owns with its review aggregation, plus the host's overall rating.
// @Tags         hosts
// @Produce      json
// @Param        hostID  path      int  true  "Host ID"
// @Success      200     {object}  domain.HostDetails
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /hosts/{hostID} [get]
func (h *EventHandler) HandleGetHostDetails(ctx *gin.Context) {
	hostID, err := strconv.ParseUint(ctx.Param("hostID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid host ID: %w", err)))
		return
	}

	details, err := h.svc.GetHostDetails(ctx.Request.Context(), uint(hostID))
	if err != nil {
		if errors.Is(err, service.ErrHostNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("host", "ID", hostID))
			return
		}

		err = fmt.Errorf("HandleGetHostDetails -> h.svc.GetHostDetails -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, details)
}

// renderOwnershipErr maps the shared not-found / not-owner guards plus
// any extra conflict sentinels to their responses.
func (h *EventHandler) renderOwnershipErr(ctx *gin.Context, op string, eventID uint, err error, conflicts ...error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
	case errors.Is(err, service.ErrNotEventHost):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventHost))
	default:
		for _, conflict := range conflicts {
			if errors.Is(err, conflict) {
				response.RenderErr(ctx, response.ErrBadRequest(err))
				return
			}
		}

		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func isCreateValidationErr(err error) bool {
	for _, sentinel := range []error{
		service.ErrInvalidTimeRange,
		service.ErrInvalidCapacity,
		service.ErrInvalidEventDate,
		service.ErrCapacityExceeded,
		service.ErrVenueCapacityInsufficient,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

func parseEventID(ctx *gin.Context) (uint, error) {
	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid event ID: %w", err)
	}

	return uint(eventID), nil
}

package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/service"
)

type TicketService interface {
	PurchaseTickets(ctx context.Context, userID, eventID uint, ticketType string, quantity int, paymentMethodID string) ([]domain.TicketPurchase, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandlePurchaseTickets godoc
// @Summary      Purchase tickets for an event
// @Description  Charges the payment method and records one purchase per ticket unit.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                             true  "Event ID"
// @Param        input    body      request.PurchaseTicketsRequest  true  "Purchase details"
// @Success      201      {object}  response.PurchaseList
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/tickets/purchase [post]
// @Security BearerAuth
func (h *TicketHandler) HandlePurchaseTickets(ctx *gin.Context) {
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

	var input request.PurchaseTicketsRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	purchases, err := h.svc.PurchaseTickets(ctx.Request.Context(), userID, eventID, input.TicketType, input.Quantity, input.PaymentMethodID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrEventNotPublished),
			errors.Is(err, service.ErrNotEnoughTickets):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandlePurchaseTickets -> h.svc.PurchaseTickets -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.PurchaseList{Purchases: purchases})
}

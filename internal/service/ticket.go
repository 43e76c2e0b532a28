package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/repository"
)

var (
	ErrEventNotPublished = errors.New("event is not published")
	ErrNotEnoughTickets  = errors.New("not enough tickets remaining")
)

type TicketRepository interface {
	FindAvailable(ctx context.Context, eventID uint, ticketType string, limit int) ([]domain.Ticket, error)
	CreatePurchases(ctx context.Context, userID uint, ticketIDs []uint) ([]domain.TicketPurchase, error)
}

type TicketEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

// PaymentClient charges the buyer before any purchase row is written.
type PaymentClient interface {
	Charge(amountCents int64, currency, paymentMethodID string) (string, error)
}

type TicketService struct {
	repo      TicketRepository
	eventRepo TicketEventRepository
	payments  PaymentClient
}

func NewTicketService(repo TicketRepository, eventRepo TicketEventRepository, payments PaymentClient) *TicketService {
	return &TicketService{
		repo:      repo,
		eventRepo: eventRepo,
		payments:  payments,
	}
}

// PurchaseTickets charges the user for quantity tickets of the given
// type and records one purchase row per ticket unit.
func (s *TicketService) PurchaseTickets(ctx context.Context, userID, eventID uint, ticketType string, quantity int, paymentMethodID string) ([]domain.TicketPurchase, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if !event.Published {
		return nil, ErrEventNotPublished
	}

	available, err := s.repo.FindAvailable(ctx, eventID, ticketType, quantity)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAvailable -> %w", err)
	}
	if len(available) < quantity {
		return nil, ErrNotEnoughTickets
	}

	var totalCents int64
	ticketIDs := make([]uint, quantity)
	for i, ticket := range available[:quantity] {
		ticketIDs[i] = ticket.ID
		totalCents += int64(math.Round(ticket.Price * 100))
	}

	if _, err = s.payments.Charge(totalCents, "usd", paymentMethodID); err != nil {
		return nil, fmt.Errorf("s.payments.Charge -> %w", err)
	}

	purchases, err := s.repo.CreatePurchases(ctx, userID, ticketIDs)
	if err != nil {
		return nil, fmt.Errorf("s.repo.CreatePurchases -> %w", err)
	}

	return purchases, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/repository/dao"
)

type TicketDAO interface {
	FindAvailable(ctx context.Context, eventID uint, ticketType string, limit int) ([]dao.Ticket, error)
	InsertPurchases(ctx context.Context, userID uint, ticketIDs []uint) ([]dao.TicketPurchase, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) FindAvailable(ctx context.Context, eventID uint, ticketType string, limit int) ([]domain.Ticket, error) {
	found, err := r.dao.FindAvailable(ctx, eventID, ticketType, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAvailable -> %w", err)
	}

	tickets := make([]domain.Ticket, len(found))
	for i, t := range found {
		tickets[i] = domain.Ticket{
			ID:      t.ID,
			EventID: t.EventID,
			Type:    t.Type,
			Price:   t.Price,
		}
	}

	return tickets, nil
}

func (r *TicketRepository) CreatePurchases(ctx context.Context, userID uint, ticketIDs []uint) ([]domain.TicketPurchase, error) {
	created, err := r.dao.InsertPurchases(ctx, userID, ticketIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertPurchases -> %w", err)
	}

	purchases := make([]domain.TicketPurchase, len(created))
	for i, p := range created {
		purchases[i] = domain.TicketPurchase{
			ID:        p.ID,
			TicketID:  p.TicketID,
			UserID:    p.UserID,
			CreatedAt: p.CreatedAt,
		}
	}

	return purchases, nil
}

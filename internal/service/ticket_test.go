package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/repository"
)

type mockTicketRepo struct {
	FindAvailableFn   func(ctx context.Context, eventID uint, ticketType string, limit int) ([]domain.Ticket, error)
	CreatePurchasesFn func(ctx context.Context, userID uint, ticketIDs []uint) ([]domain.TicketPurchase, error)
}

func (m *mockTicketRepo) FindAvailable(ctx context.Context, eventID uint, ticketType string, limit int) ([]domain.Ticket, error) {
	return m.FindAvailableFn(ctx, eventID, ticketType, limit)
}

func (m *mockTicketRepo) CreatePurchases(ctx context.Context, userID uint, ticketIDs []uint) ([]domain.TicketPurchase, error) {
	return m.CreatePurchasesFn(ctx, userID, ticketIDs)
}

type mockPaymentClient struct {
	ChargeFn func(amountCents int64, currency, paymentMethodID string) (string, error)
}

func (m *mockPaymentClient) Charge(amountCents int64, currency, paymentMethodID string) (string, error) {
	return m.ChargeFn(amountCents, currency, paymentMethodID)
}

func publishedEventRepo() *mockEventRepo {
	return &mockEventRepo{
		FindByIDFn: func(ctx context.Context, id uint) (domain.Event, error) {
			return domain.Event{ID: id, Published: true}, nil
		},
	}
}

func TestTicketService_PurchaseTickets(t *testing.T) {
	t.Run("event not found", func(t *testing.T) {
		eventRepo := &mockEventRepo{
			FindByIDFn: func(ctx context.Context, id uint) (domain.Event, error) {
				return domain.Event{}, repository.ErrEventNotFound
			},
		}
		svc := NewTicketService(&mockTicketRepo{}, eventRepo, &mockPaymentClient{})

		_, err := svc.PurchaseTickets(context.Background(), 1, 5, "standard", 2, "pm_123")
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("event not published", func(t *testing.T) {
		eventRepo := &mockEventRepo{
			FindByIDFn: func(ctx context.Context, id uint) (domain.Event, error) {
				return domain.Event{ID: id, Published: false}, nil
			},
		}
		svc := NewTicketService(&mockTicketRepo{}, eventRepo, &mockPaymentClient{})

		_, err := svc.PurchaseTickets(context.Background(), 1, 5, "standard", 2, "pm_123")
		assert.ErrorIs(t, err, ErrEventNotPublished)
	})

	t.Run("not enough tickets", func(t *testing.T) {
		repo := &mockTicketRepo{
			FindAvailableFn: func(ctx context.Context, eventID uint, ticketType string, limit int) ([]domain.Ticket, error) {
				return []domain.Ticket{{ID: 1}}, nil
			},
		}
		charged := false
		payments := &mockPaymentClient{
			ChargeFn: func(amountCents int64, currency, paymentMethodID string) (string, error) {
				charged = true
				return "pi_1", nil
			},
		}
		svc := NewTicketService(repo, publishedEventRepo(), payments)

		_, err := svc.PurchaseTickets(context.Background(), 1, 5, "standard", 2, "pm_123")
		assert.ErrorIs(t, err, ErrNotEnoughTickets)
		assert.False(t, charged)
	})

	t.Run("charge failure aborts before purchase rows", func(t *testing.T) {
		repo := &mockTicketRepo{
			FindAvailableFn: func(ctx context.Context, eventID uint, ticketType string, limit int) ([]domain.Ticket, error) {
				return []domain.Ticket{{ID: 1, Price: 25}, {ID: 2, Price: 25}}, nil
			},
			CreatePurchasesFn: func(ctx context.Context, userID uint, ticketIDs []uint) ([]domain.TicketPurchase, error) {
				t.Fatal("must not record purchases when the charge fails")
				return nil, nil
			},
		}
		payments := &mockPaymentClient{
			ChargeFn: func(amountCents int64, currency, paymentMethodID string) (string, error) {
				return "", errors.New("card declined")
			},
		}
		svc := NewTicketService(repo, publishedEventRepo(), payments)

		_, err := svc.PurchaseTickets(context.Background(), 1, 5, "standard", 2, "pm_123")
		assert.Error(t, err)
	})

	t.Run("success charges the exact total", func(t *testing.T) {
		repo := &mockTicketRepo{
			FindAvailableFn: func(ctx context.Context, eventID uint, ticketType string, limit int) ([]domain.Ticket, error) {
				assert.Equal(t, uint(5), eventID)
				assert.Equal(t, "vip", ticketType)
				assert.Equal(t, 2, limit)
				return []domain.Ticket{{ID: 11, Price: 19.99}, {ID: 12, Price: 19.99}}, nil
			},
			CreatePurchasesFn: func(ctx context.Context, userID uint, ticketIDs []uint) ([]domain.TicketPurchase, error) {
				assert.Equal(t, uint(1), userID)
				assert.Equal(t, []uint{11, 12}, ticketIDs)
				return []domain.TicketPurchase{{ID: 1, TicketID: 11, UserID: 1}, {ID: 2, TicketID: 12, UserID: 1}}, nil
			},
		}
		payments := &mockPaymentClient{
			ChargeFn: func(amountCents int64, currency, paymentMethodID string) (string, error) {
				assert.Equal(t, int64(3998), amountCents)
				assert.Equal(t, "usd", currency)
				assert.Equal(t, "pm_123", paymentMethodID)
				return "pi_1", nil
			},
		}
		svc := NewTicketService(repo, publishedEventRepo(), payments)

		purchases, err := svc.PurchaseTickets(context.Background(), 1, 5, "vip", 2, "pm_123")
		require.NoError(t, err)
		assert.Len(t, purchases, 2)
	})
}

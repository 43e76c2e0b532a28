package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Ticket struct {
	ID      uint  `gorm:"primaryKey"`
	EventID uint  `gorm:"index;not null"`
	Event   Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Type    string
	Price   float64
}

type TicketPurchase struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"index;not null"`
	Ticket    Ticket `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	UserID    uint   `gorm:"index;not null"`
	User      User   `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// FindAvailable returns up to limit unsold tickets of the given type.
func (d *TicketDAO) FindAvailable(ctx context.Context, eventID uint, ticketType string, limit int) ([]Ticket, error) {
	var tickets []Ticket

	sold := d.db.Table("ticket_purchases").Select("ticket_id")

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND type = ?", eventID, ticketType).
		Where("id NOT IN (?)", sold).
		Limit(limit).
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// InsertPurchases records one purchase row per ticket, all or nothing.
func (d *TicketDAO) InsertPurchases(ctx context.Context, userID uint, ticketIDs []uint) ([]TicketPurchase, error) {
	purchases := make([]TicketPurchase, len(ticketIDs))
	for i, ticketID := range ticketIDs {
		purchases[i] = TicketPurchase{
			TicketID: ticketID,
			UserID:   userID,
		}
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&purchases).Error
	})
	if err != nil {
		return nil, err
	}

	return purchases, nil
}

package domain

import "time"

// Ticket is a single physical ticket unit. Bulk creation inserts one
// row per unit, not one row per type.
type Ticket struct {
	ID      uint    `json:"ticketID"`
	EventID uint    `json:"eventID"`
	Type    string  `json:"ticketType"`
	Price   float64 `json:"price"`
}

// TicketSpec describes one requested ticket type at event creation.
type TicketSpec struct {
	Type         string
	Price        float64
	Amount       int
	SeatSections []string
}

// SeatingAllocation maps a ticket type of an event to a named seat
// section of the venue.
type SeatingAllocation struct {
	EventID     uint   `json:"eventID"`
	TicketType  string `json:"ticketType"`
	SeatSection string `json:"seatSection"`
}

type TicketPurchase struct {
	ID        uint      `json:"purchaseID"`
	TicketID  uint      `json:"ticketID"`
	UserID    uint      `json:"userID"`
	CreatedAt time.Time `json:"purchasedAt"`
}

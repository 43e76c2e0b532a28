package response

import (
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
)

// PublishState is the payload of publish/unpublish: just the event ID
// and the resulting flag.
type PublishState struct {
	EventID   uint `json:"eventID"`
	Published bool `json:"published"`
}

type EventList struct {
	Events []domain.Event `json:"events"`
}

type GuestList struct {
	Guests []domain.Guest `json:"guests"`
}

type PurchaseList struct {
	Purchases []domain.TicketPurchase `json:"purchases"`
}

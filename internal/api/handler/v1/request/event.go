package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// TicketSpec is one requested ticket type. ticketAmount individual
// ticket units get created for it.
type TicketSpec struct {
	TicketType   string   `json:"ticketType"`
	Price        float64  `json:"price"`
	TicketAmount int      `json:"ticketAmount"`
	SeatSections []string `json:"seatSections"`
}

type CreateEventRequest struct {
	EventName        string       `json:"eventName"`
	StartDateTime    time.Time    `json:"startDateTime"`
	EndDateTime      time.Time    `json:"endDateTime"`
	EventDescription string       `json:"eventDescription"`
	EventType        string       `json:"eventType"`
	EventVenue       string       `json:"eventVenue"`
	EventLocation    string       `json:"eventLocation"`
	VenueCapacity    int          `json:"venueCapacity"`
	Capacity         int          `json:"capacity"`
	Image1           string       `json:"image1"`
	Image2           string       `json:"image2"`
	Image3           string       `json:"image3"`
	Tickets          []TicketSpec `json:"tickets"`
}

// Validate covers shape only. Time ordering, capacity and venue rules
// are business checks owned by the service.
func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.EventName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.StartDateTime, validation.Required),
		validation.Field(&req.EndDateTime, validation.Required),
		validation.Field(&req.EventVenue, validation.Required, validation.Length(1, 100)),
	)
	if err != nil {
		return err
	}

	for _, spec := range req.Tickets {
		if err := validation.ValidateStruct(&spec,
			validation.Field(&spec.TicketType, validation.Required, validation.Length(1, 50)),
			validation.Field(&spec.TicketAmount, validation.Min(0)),
			validation.Field(&spec.Price, validation.Min(0.0)),
		); err != nil {
			return err
		}
	}

	return nil
}

type PurchaseTicketsRequest struct {
	TicketType      string `json:"ticketType"`
	Quantity        int    `json:"quantity"`
	PaymentMethodID string `json:"payment_method_id"`
}

func (req *PurchaseTicketsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TicketType, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.PaymentMethodID, validation.Required),
	)
}

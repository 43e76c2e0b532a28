package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCreateEventRequest() CreateEventRequest {
	return CreateEventRequest{
		EventName:     "Summer Gala",
		StartDateTime: time.Date(2031, 7, 1, 19, 0, 0, 0, time.UTC),
		EndDateTime:   time.Date(2031, 7, 1, 23, 0, 0, 0, time.UTC),
		EventVenue:    "Grand Hall",
		EventLocation: "12 Main St",
		VenueCapacity: 200,
		Capacity:      100,
		Tickets: []TicketSpec{
			{TicketType: "standard", Price: 25, TicketAmount: 40},
		},
	}
}

func TestCreateEventRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *CreateEventRequest)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(req *CreateEventRequest) {},
		},
		{
			name: "no tickets is still valid",
			mutate: func(req *CreateEventRequest) {
				req.Tickets = nil
			},
		},
		{
			name: "missing name",
			mutate: func(req *CreateEventRequest) {
				req.EventName = ""
			},
			wantErr: true,
		},
		{
			name: "missing venue",
			mutate: func(req *CreateEventRequest) {
				req.EventVenue = ""
			},
			wantErr: true,
		},
		{
			name: "missing start time",
			mutate: func(req *CreateEventRequest) {
				req.StartDateTime = time.Time{}
			},
			wantErr: true,
		},
		{
			name: "ticket without a type",
			mutate: func(req *CreateEventRequest) {
				req.Tickets = []TicketSpec{{Price: 25, TicketAmount: 40}}
			},
			wantErr: true,
		},
		{
			name: "negative ticket price",
			mutate: func(req *CreateEventRequest) {
				req.Tickets = []TicketSpec{{TicketType: "standard", Price: -1, TicketAmount: 40}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateEventRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPurchaseTicketsRequest_Validate(t *testing.T) {
	req := PurchaseTicketsRequest{TicketType: "vip", Quantity: 2, PaymentMethodID: "pm_123"}
	assert.NoError(t, req.Validate())

	req.Quantity = 0
	assert.Error(t, req.Validate())

	req.Quantity = 2
	req.PaymentMethodID = ""
	assert.Error(t, req.Validate())
}

package domain

import "time"

// Event is the domain view of an event. Display reads (single event,
// listings) also carry the resolved venue and host fields.
type Event struct {
	ID                uint      `json:"eventID"`
	Name              string    `json:"eventName"`
	HostID            uint      `json:"hostID"`
	HostName          string    `json:"hostName,omitempty"`
	HostEmail         string    `json:"hostEmail,omitempty"`
	StartDateTime     time.Time `json:"startDateTime"`
	EndDateTime       time.Time `json:"endDateTime"`
	Description       string    `json:"eventDescription"`
	Type              string    `json:"eventType"`
	VenueID           uint      `json:"-"`
	VenueName         string    `json:"eventVenue"`
	VenueLocation     string    `json:"eventLocation"`
	VenueCapacity     int       `json:"venueCapacity,omitempty"`
	Capacity          int       `json:"capacity"`
	TotalTicketAmount int       `json:"totalTicketAmount"`
	SeatingAvailable  bool      `json:"seatingAvailable"`
	Published         bool      `json:"published"`
	SoldOut           bool      `json:"soldOut"`
	Image1            string    `json:"image1,omitempty"`
	Image2            string    `json:"image2,omitempty"`
	Image3            string    `json:"image3,omitempty"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

type CreateEventInput struct {
	Name          string
	StartDateTime time.Time
	EndDateTime   time.Time
	Description   string
	Type          string
	Capacity      int
	VenueName     string
	VenueLocation string
	VenueCapacity int
	Image1        string
	Image2        string
	Image3        string
	Tickets       []TicketSpec
}

type Venue struct {
	ID          uint   `json:"venueID"`
	Name        string `json:"venueName"`
	Location    string `json:"venueLocation"`
	MaxCapacity int    `json:"maxCapacity"`
}

type Guest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HostEventSummary is one event in a host's public profile, with its
// review aggregation.
type HostEventSummary struct {
	EventID       uint      `json:"eventID"`
	EventName     string    `json:"eventName"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	VenueName     string    `json:"eventVenue"`
	EventScore    float64   `json:"eventScore"`
	NumReviews    int       `json:"numReviews"`
}

type HostDetails struct {
	Events     []HostEventSummary `json:"events"`
	HostRating float64            `json:"hostRating"`
}

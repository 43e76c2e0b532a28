package domain

import "time"

type Review struct {
	ID        uint      `json:"reviewID"`
	EventID   uint      `json:"eventID"`
	UserID    uint      `json:"userID"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

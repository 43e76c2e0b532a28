package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID        uint  `gorm:"primaryKey"`
	EventID   uint  `gorm:"index;not null"`
	Event     Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	UserID    uint  `gorm:"index;not null"`
	User      User  `gorm:"foreignKey:UserID"`
	Rating    float64
	Comment   string
	CreatedAt time.Time
}

type ReviewDAO struct {
	db *gorm.DB
}

func NewReviewDAO(db *gorm.DB) *ReviewDAO {
	return &ReviewDAO{
		db: db,
	}
}

func (d *ReviewDAO) FindByEventID(ctx context.Context, eventID uint) ([]Review, error) {
	var reviews []Review

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}

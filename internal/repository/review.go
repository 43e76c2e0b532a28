package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/repository/dao"
)

type ReviewDAO interface {
	FindByEventID(ctx context.Context, eventID uint) ([]dao.Review, error)
}

type ReviewRepository struct {
	dao ReviewDAO
}

func NewReviewRepository(dao ReviewDAO) *ReviewRepository {
	return &ReviewRepository{
		dao: dao,
	}
}

func (r *ReviewRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.Review, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	reviews := make([]domain.Review, len(found))
	for i, rv := range found {
		reviews[i] = domain.Review{
			ID:        rv.ID,
			EventID:   rv.EventID,
			UserID:    rv.UserID,
			Rating:    rv.Rating,
			Comment:   rv.Comment,
			CreatedAt: rv.CreatedAt,
		}
	}

	return reviews, nil
}

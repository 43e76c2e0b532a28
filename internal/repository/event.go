package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/repository/dao"
)

var (
	ErrEventNotFound = dao.ErrEventNotFound
	ErrVenueNotFound = dao.ErrVenueNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event, tickets []dao.Ticket, allocations []dao.SeatingAllocation) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindDisplayByID(ctx context.Context, id uint) (dao.EventRow, error)
	FindDisplayByIDs(ctx context.Context, ids []uint) ([]dao.EventRow, error)
	FindByHostID(ctx context.Context, hostID uint) ([]dao.EventRow, error)
	FindAll(ctx context.Context) ([]dao.EventRow, error)
	FindAllNotSoldOut(ctx context.Context) ([]dao.EventRow, error)
	SetPublished(ctx context.Context, id uint, published bool) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	FindGuestList(ctx context.Context, eventID uint) ([]dao.GuestRow, error)
	FindAttendingEventIDs(ctx context.Context, userID uint) ([]uint, error)
	InsertVenue(ctx context.Context, venue dao.Venue) (dao.Venue, error)
	FindVenueByName(ctx context.Context, name string) (dao.Venue, error)
	CountVenueSeats(ctx context.Context, venueID uint) (int64, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

// Create persists the event, its ticket units and seating allocations
// atomically and returns the stored event with its assigned ID.
func (r *EventRepository) Create(ctx context.Context, event domain.Event, tickets []domain.Ticket, allocations []domain.SeatingAllocation) (domain.Event, error) {
	daoTickets := make([]dao.Ticket, len(tickets))
	for i, t := range tickets {
		daoTickets[i] = dao.Ticket{
			Type:  t.Type,
			Price: t.Price,
		}
	}

	daoAllocations := make([]dao.SeatingAllocation, len(allocations))
	for i, a := range allocations {
		daoAllocations[i] = dao.SeatingAllocation{
			TicketType:  a.TicketType,
			SeatSection: a.SeatSection,
		}
	}

	created, err := r.dao.Insert(ctx, r.domainToDao(event), daoTickets, daoAllocations)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindDisplayByID(ctx context.Context, id uint) (domain.Event, error) {
	row, err := r.dao.FindDisplayByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("r.dao.FindDisplayByID -> %w", err)
	}

	return r.rowToDomain(row), nil
}

func (r *EventRepository) FindDisplayByIDs(ctx context.Context, ids []uint) ([]domain.Event, error) {
	rows, err := r.dao.FindDisplayByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindDisplayByIDs -> %w", err)
	}

	return r.rowsToDomain(rows), nil
}

func (r *EventRepository) FindByHostID(ctx context.Context, hostID uint) ([]domain.Event, error) {
	rows, err := r.dao.FindByHostID(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByHostID -> %w", err)
	}

	return r.rowsToDomain(rows), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.rowsToDomain(rows), nil
}

func (r *EventRepository) FindAllNotSoldOut(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.dao.FindAllNotSoldOut(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllNotSoldOut -> %w", err)
	}

	return r.rowsToDomain(rows), nil
}

func (r *EventRepository) SetPublished(ctx context.Context, id uint, published bool) (domain.Event, error) {
	updated, err := r.dao.SetPublished(ctx, id, published)
	if err != nil {
		if errors.Is(err, dao.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("r.dao.SetPublished -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		if errors.Is(err, dao.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) FindGuestList(ctx context.Context, eventID uint) ([]domain.Guest, error) {
	rows, err := r.dao.FindGuestList(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindGuestList -> %w", err)
	}

	guests := make([]domain.Guest, len(rows))
	for i, row := range rows {
		guests[i] = domain.Guest{
			Name:  row.FirstName + " " + row.LastName,
			Email: row.Email,
		}
	}

	return guests, nil
}

func (r *EventRepository) FindAttendingEventIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := r.dao.FindAttendingEventIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAttendingEventIDs -> %w", err)
	}

	return ids, nil
}

// GetOrCreateVenue inserts the venue and falls back to the existing
// row when the unique constraint on the name fires. The boolean
// reports whether a new row was created.
func (r *EventRepository) GetOrCreateVenue(ctx context.Context, venue domain.Venue) (domain.Venue, bool, error) {
	created, err := r.dao.InsertVenue(ctx, dao.Venue{
		Name:        venue.Name,
		Location:    venue.Location,
		MaxCapacity: venue.MaxCapacity,
	})
	if err == nil {
		return r.venueDaoToDomain(created), true, nil
	}
	if !errors.Is(err, dao.ErrVenueExists) {
		return domain.Venue{}, false, fmt.Errorf("r.dao.InsertVenue -> %w", err)
	}

	existing, err := r.dao.FindVenueByName(ctx, venue.Name)
	if err != nil {
		return domain.Venue{}, false, fmt.Errorf("r.dao.FindVenueByName -> %w", err)
	}

	return r.venueDaoToDomain(existing), false, nil
}

func (r *EventRepository) CountVenueSeats(ctx context.Context, venueID uint) (int64, error) {
	count, err := r.dao.CountVenueSeats(ctx, venueID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountVenueSeats -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                e.ID,
		Name:              e.Name,
		HostID:            e.HostID,
		StartDateTime:     e.StartDateTime,
		EndDateTime:       e.EndDateTime,
		Description:       e.Description,
		Type:              e.Type,
		VenueID:           e.VenueID,
		Capacity:          e.Capacity,
		TotalTicketAmount: e.TotalTicketAmount,
		Published:         e.Published,
		Image1:            e.Image1,
		Image2:            e.Image2,
		Image3:            e.Image3,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:                e.ID,
		Name:              e.Name,
		HostID:            e.HostID,
		StartDateTime:     e.StartDateTime,
		EndDateTime:       e.EndDateTime,
		Description:       e.Description,
		Type:              e.Type,
		VenueID:           e.VenueID,
		Capacity:          e.Capacity,
		TotalTicketAmount: e.TotalTicketAmount,
		Published:         e.Published,
		Image1:            e.Image1,
		Image2:            e.Image2,
		Image3:            e.Image3,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func (r *EventRepository) rowToDomain(row dao.EventRow) domain.Event {
	return domain.Event{
		ID:                row.ID,
		Name:              row.Name,
		HostID:            row.HostID,
		HostName:          hostDisplayName(row.HostFirstName, row.HostLastName),
		HostEmail:         row.HostEmail,
		StartDateTime:     row.StartDateTime,
		EndDateTime:       row.EndDateTime,
		Description:       row.Description,
		Type:              row.Type,
		VenueID:           row.VenueID,
		VenueName:         row.VenueName,
		VenueLocation:     row.VenueLocation,
		VenueCapacity:     row.VenueMaxCapacity,
		Capacity:          row.Capacity,
		TotalTicketAmount: row.TotalTicketAmount,
		Published:         row.Published,
		Image1:            row.Image1,
		Image2:            row.Image2,
		Image3:            row.Image3,
	}
}

func (r *EventRepository) rowsToDomain(rows []dao.EventRow) []domain.Event {
	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		events[i] = r.rowToDomain(row)
	}

	return events
}

func (r *EventRepository) venueDaoToDomain(v dao.Venue) domain.Venue {
	return domain.Venue{
		ID:          v.ID,
		Name:        v.Name,
		Location:    v.Location,
		MaxCapacity: v.MaxCapacity,
	}
}

func hostDisplayName(first, last string) string {
	if first == "" && last == "" {
		return ""
	}

	return first + " " + last
}

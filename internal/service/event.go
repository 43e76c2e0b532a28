package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/repository"
)

var (
	ErrInvalidTimeRange          = errors.New("invalid starting and finishing times")
	ErrInvalidCapacity           = errors.New("invalid capacity")
	ErrInvalidEventDate          = errors.New("invalid event date")
	ErrCapacityExceeded          = errors.New("capacity not sufficient")
	ErrVenueCapacityInsufficient = errors.New("venue capacity not sufficient for event")
	ErrAlreadyPublished          = errors.New("event is already published")
	ErrAlreadyUnpublished        = errors.New("event is already unpublished")
	ErrNotEventHost              = errors.New("user is not the owner of this event")

	ErrEventNotFound = repository.ErrEventNotFound
	ErrHostNotFound  = errors.New("host does not exist")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event, tickets []domain.Ticket, allocations []domain.SeatingAllocation) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindDisplayByID(ctx context.Context, id uint) (domain.Event, error)
	FindDisplayByIDs(ctx context.Context, ids []uint) ([]domain.Event, error)
	FindByHostID(ctx context.Context, hostID uint) ([]domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindAllNotSoldOut(ctx context.Context) ([]domain.Event, error)
	SetPublished(ctx context.Context, id uint, published bool) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	FindGuestList(ctx context.Context, eventID uint) ([]domain.Guest, error)
	FindAttendingEventIDs(ctx context.Context, userID uint) ([]uint, error)
	GetOrCreateVenue(ctx context.Context, venue domain.Venue) (domain.Venue, bool, error)
	CountVenueSeats(ctx context.Context, venueID uint) (int64, error)
}

type EventUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type EventReviewRepository interface {
	FindByEventID(ctx context.Context, eventID uint) ([]domain.Review, error)
}

type EventService struct {
	repo       EventRepository
	userRepo   EventUserRepository
	reviewRepo EventReviewRepository
}

func NewEventService(repo EventRepository, userRepo EventUserRepository, reviewRepo EventReviewRepository) *EventService {
	return &EventService{
		repo:       repo,
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
	}
}

// CreateEvent validates the input, resolves the venue by name and
// persists the event with its ticket units and seating allocations.
// Checks run in a fixed order; the first failure wins.
func (s *EventService) CreateEvent(ctx context.Context, hostID uint, input domain.CreateEventInput) (domain.Event, error) {
	if !input.EndDateTime.After(input.StartDateTime) {
		return domain.Event{}, ErrInvalidTimeRange
	}
	if input.Capacity <= 0 {
		return domain.Event{}, ErrInvalidCapacity
	}
	if !input.StartDateTime.After(time.Now()) {
		return domain.Event{}, ErrInvalidEventDate
	}

	totalTickets := 0
	for _, spec := range input.Tickets {
		totalTickets += spec.Amount
	}
	if totalTickets > input.Capacity {
		return domain.Event{}, ErrCapacityExceeded
	}

	venue, venueCreated, err := s.repo.GetOrCreateVenue(ctx, domain.Venue{
		Name:        input.VenueName,
		Location:    input.VenueLocation,
		MaxCapacity: input.VenueCapacity,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.GetOrCreateVenue -> %w", err)
	}

	// A freshly created venue has no seat map yet.
	seatingAvailable := false
	if !venueCreated {
		seatCount, err := s.repo.CountVenueSeats(ctx, venue.ID)
		if err != nil {
			return domain.Event{}, fmt.Errorf("s.repo.CountVenueSeats -> %w", err)
		}
		seatingAvailable = seatCount > 0
	}

	if venue.MaxCapacity < input.Capacity {
		return domain.Event{}, ErrVenueCapacityInsufficient
	}

	var (
		tickets     []domain.Ticket
		allocations []domain.SeatingAllocation
	)
	for _, spec := range input.Tickets {
		for i := 0; i < spec.Amount; i++ {
			tickets = append(tickets, domain.Ticket{
				Type:  spec.Type,
				Price: spec.Price,
			})
		}
		for _, section := range spec.SeatSections {
			allocations = append(allocations, domain.SeatingAllocation{
				TicketType:  spec.Type,
				SeatSection: section,
			})
		}
	}

	created, err := s.repo.Create(ctx, domain.Event{
		Name:              input.Name,
		HostID:            hostID,
		StartDateTime:     input.StartDateTime,
		EndDateTime:       input.EndDateTime,
		Description:       input.Description,
		Type:              input.Type,
		VenueID:           venue.ID,
		Capacity:          input.Capacity,
		TotalTicketAmount: totalTickets,
		Image1:            input.Image1,
		Image2:            input.Image2,
		Image3:            input.Image3,
	}, tickets, allocations)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	created.VenueName = venue.Name
	created.VenueLocation = venue.Location
	created.VenueCapacity = venue.MaxCapacity
	created.SeatingAvailable = seatingAvailable

	return created, nil
}

// PublishEvent flips an unpublished event owned by userID to published.
func (s *EventService) PublishEvent(ctx context.Context, eventID, userID uint) (domain.Event, error) {
	event, err := s.findOwnedEvent(ctx, eventID, userID)
	if err != nil {
		return domain.Event{}, err
	}
	if event.Published {
		return domain.Event{}, ErrAlreadyPublished
	}

	published, err := s.repo.SetPublished(ctx, eventID, true)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.SetPublished -> %w", err)
	}

	return published, nil
}

// UnpublishEvent is the symmetric transition back to unpublished.
func (s *EventService) UnpublishEvent(ctx context.Context, eventID, userID uint) (domain.Event, error) {
	event, err := s.findOwnedEvent(ctx, eventID, userID)
	if err != nil {
		return domain.Event{}, err
	}
	if !event.Published {
		return domain.Event{}, ErrAlreadyUnpublished
	}

	unpublished, err := s.repo.SetPublished(ctx, eventID, false)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.SetPublished -> %w", err)
	}

	return unpublished, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, eventID, userID uint) error {
	if _, err := s.findOwnedEvent(ctx, eventID, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID uint) (domain.Event, error) {
	event, err := s.repo.FindDisplayByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindDisplayByID -> %w", err)
	}

	return event, nil
}

// GetUpcomingEvents lists published, not sold out events starting
// within the next month.
func (s *EventService) GetUpcomingEvents(ctx context.Context) ([]domain.Event, error) {
	available, err := s.repo.FindAllNotSoldOut(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllNotSoldOut -> %w", err)
	}

	now := time.Now()
	cutoff := now.AddDate(0, 1, 0)

	upcoming := make([]domain.Event, 0, len(available))
	for _, event := range available {
		if !event.Published {
			continue
		}
		if event.StartDateTime.Before(now) || event.StartDateTime.After(cutoff) {
			continue
		}
		upcoming = append(upcoming, event)
	}

	return upcoming, nil
}

// GetAllEvents lists every published future event. An event is flagged
// sold out when it is absent from the not-sold-out set.
func (s *EventService) GetAllEvents(ctx context.Context) ([]domain.Event, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	available, err := s.repo.FindAllNotSoldOut(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllNotSoldOut -> %w", err)
	}

	availableIDs := make(map[uint]struct{}, len(available))
	for _, event := range available {
		availableIDs[event.ID] = struct{}{}
	}

	now := time.Now()
	events := make([]domain.Event, 0, len(all))
	for _, event := range all {
		if !event.Published || !event.StartDateTime.After(now) {
			continue
		}

		_, notSoldOut := availableIDs[event.ID]
		event.SoldOut = !notSoldOut
		events = append(events, event)
	}

	return events, nil
}

// GetHostEvents is the host's own management view: every event they
// own, regardless of publish state or date.
func (s *EventService) GetHostEvents(ctx context.Context, hostID uint) ([]domain.Event, error) {
	events, err := s.repo.FindByHostID(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByHostID -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEventsUserAttending(ctx context.Context, userID uint) ([]domain.Event, error) {
	ids, err := s.repo.FindAttendingEventIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAttendingEventIDs -> %w", err)
	}
	if len(ids) == 0 {
		return []domain.Event{}, nil
	}

	events, err := s.repo.FindDisplayByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindDisplayByIDs -> %w", err)
	}

	return events, nil
}

// GetEventGuestList returns name and email of every distinct ticket
// purchaser. Only the event's host may see it.
func (s *EventService) GetEventGuestList(ctx context.Context, eventID, userID uint) ([]domain.Guest, error) {
	if _, err := s.findOwnedEvent(ctx, eventID, userID); err != nil {
		return nil, err
	}

	guests, err := s.repo.FindGuestList(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindGuestList -> %w", err)
	}

	return guests, nil
}

// GetHostDetails aggregates per-event review scores for every event
// the host owns, plus the host's overall average rating. Events with
// no reviews score 0; a host with no reviews anywhere rates 0.
func (s *EventService) GetHostDetails(ctx context.Context, hostID uint) (domain.HostDetails, error) {
	if _, err := s.userRepo.FindByID(ctx, hostID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.HostDetails{}, ErrHostNotFound
		}

		return domain.HostDetails{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	events, err := s.repo.FindByHostID(ctx, hostID)
	if err != nil {
		return domain.HostDetails{}, fmt.Errorf("s.repo.FindByHostID -> %w", err)
	}

	var (
		summaries   = make([]domain.HostEventSummary, 0, len(events))
		ratingTotal float64
		reviewTotal int
	)
	for _, event := range events {
		reviews, err := s.reviewRepo.FindByEventID(ctx, event.ID)
		if err != nil {
			return domain.HostDetails{}, fmt.Errorf("s.reviewRepo.FindByEventID -> %w", err)
		}

		eventScore := 0.0
		for _, review := range reviews {
			eventScore += review.Rating
			ratingTotal += review.Rating
		}
		reviewTotal += len(reviews)
		if len(reviews) > 0 {
			eventScore /= float64(len(reviews))
		}

		summaries = append(summaries, domain.HostEventSummary{
			EventID:       event.ID,
			EventName:     event.Name,
			StartDateTime: event.StartDateTime,
			EndDateTime:   event.EndDateTime,
			VenueName:     event.VenueName,
			EventScore:    eventScore,
			NumReviews:    len(reviews),
		})
	}

	hostRating := 0.0
	if reviewTotal > 0 {
		hostRating = ratingTotal / float64(reviewTotal)
	}

	return domain.HostDetails{
		Events:     summaries,
		HostRating: hostRating,
	}, nil
}

// findOwnedEvent loads the event and enforces ownership, the shared
// guard of publish, unpublish, delete and guest-list access.
func (s *EventService) findOwnedEvent(ctx context.Context, eventID, userID uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if event.HostID != userID {
		return domain.Event{}, ErrNotEventHost
	}

	return event, nil
}

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrVenueNotFound = errors.New("venue not found")
	ErrVenueExists   = errors.New("venue already exists")
)

type Event struct {
	ID                uint      `gorm:"primaryKey"`
	Name              string    `gorm:"not null"`
	HostID            uint      `gorm:"index;not null"`
	Host              User      `gorm:"foreignKey:HostID"`
	StartDateTime     time.Time `gorm:"not null"`
	EndDateTime       time.Time `gorm:"not null"`
	Description       string
	Type              string
	VenueID           uint  `gorm:"index;not null"`
	Venue             Venue `gorm:"foreignKey:VenueID"`
	Capacity          int   `gorm:"not null"`
	TotalTicketAmount int   `gorm:"not null;default:0"`
	Published         bool  `gorm:"not null;default:false"`
	Image1            string
	Image2            string
	Image3            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Venue struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"`
	Location    string `gorm:"not null"`
	MaxCapacity int    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Seat struct {
	ID      uint   `gorm:"primaryKey"`
	VenueID uint   `gorm:"index;not null"`
	Venue   Venue  `gorm:"foreignKey:VenueID"`
	Section string `gorm:"not null"`
	Number  int    `gorm:"not null"`
}

type SeatingAllocation struct {
	ID          uint   `gorm:"primaryKey"`
	EventID     uint   `gorm:"index;not null"`
	Event       Event  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	TicketType  string `gorm:"not null"`
	SeatSection string `gorm:"not null"`
}

// EventRow is the flat projection of an event joined with its venue
// and host. Reads never touch raw column names outside this package.
type EventRow struct {
	ID                uint
	Name              string
	HostID            uint
	StartDateTime     time.Time
	EndDateTime       time.Time
	Description       string
	Type              string
	VenueID           uint
	Capacity          int
	TotalTicketAmount int
	Published         bool
	Image1            string
	Image2            string
	Image3            string
	VenueName         string
	VenueLocation     string
	VenueMaxCapacity  int
	HostFirstName     string
	HostLastName      string
	HostEmail         string
}

type GuestRow struct {
	FirstName string
	LastName  string
	Email     string
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

const displayColumns = "events.*, " +
	"venues.name AS venue_name, venues.location AS venue_location, venues.max_capacity AS venue_max_capacity, " +
	"users.first_name AS host_first_name, users.last_name AS host_last_name, users.email AS host_email"

func (d *EventDAO) displayQuery(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).
		Table("events").
		Select(displayColumns).
		Joins("JOIN venues ON venues.id = events.venue_id").
		Joins("JOIN users ON users.id = events.host_id")
}

// notSoldOutCondition keeps only events whose issued ticket total still
// exceeds the number of purchased tickets.
func (d *EventDAO) notSoldOutCondition(query *gorm.DB) *gorm.DB {
	purchased := d.db.Table("ticket_purchases").
		Select("count(*)").
		Joins("JOIN tickets ON tickets.id = ticket_purchases.ticket_id").
		Where("tickets.event_id = events.id")

	return query.Where("events.total_ticket_amount > (?)", purchased)
}

// Insert persists the event together with its ticket units and seating
// allocations in one transaction. Nothing survives a mid-step failure.
func (d *EventDAO) Insert(ctx context.Context, event Event, tickets []Ticket, allocations []SeatingAllocation) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		for i := range tickets {
			tickets[i].EventID = event.ID
		}
		if len(tickets) > 0 {
			if err := tx.CreateInBatches(tickets, 500).Error; err != nil {
				return err
			}
		}

		for i := range allocations {
			allocations[i].EventID = event.ID
		}
		if len(allocations) > 0 {
			if err := tx.Create(&allocations).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Event{}, err
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindDisplayByID(ctx context.Context, id uint) (EventRow, error) {
	var rows []EventRow

	result := d.displayQuery(ctx).Where("events.id = ?", id).Scan(&rows)
	if result.Error != nil {
		return EventRow{}, result.Error
	}
	if len(rows) == 0 {
		return EventRow{}, ErrEventNotFound
	}

	return rows[0], nil
}

func (d *EventDAO) FindDisplayByIDs(ctx context.Context, ids []uint) ([]EventRow, error) {
	var rows []EventRow

	result := d.displayQuery(ctx).Where("events.id IN ?", ids).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *EventDAO) FindByHostID(ctx context.Context, hostID uint) ([]EventRow, error) {
	var rows []EventRow

	result := d.db.WithContext(ctx).
		Table("events").
		Select("events.*, venues.name AS venue_name, venues.location AS venue_location, venues.max_capacity AS venue_max_capacity").
		Joins("JOIN venues ON venues.id = events.venue_id").
		Where("events.host_id = ?", hostID).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]EventRow, error) {
	var rows []EventRow

	result := d.displayQuery(ctx).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *EventDAO) FindAllNotSoldOut(ctx context.Context) ([]EventRow, error) {
	var rows []EventRow

	result := d.notSoldOutCondition(d.displayQuery(ctx)).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *EventDAO) SetPublished(ctx context.Context, id uint, published bool) (Event, error) {
	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", id).
		Update("published", published)
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, id)
}

// Delete removes the event row. Tickets, allocations and purchases go
// with it through the cascade constraints.
func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) FindGuestList(ctx context.Context, eventID uint) ([]GuestRow, error) {
	var rows []GuestRow

	result := d.db.WithContext(ctx).
		Table("ticket_purchases").
		Select("DISTINCT users.first_name, users.last_name, users.email").
		Joins("JOIN tickets ON tickets.id = ticket_purchases.ticket_id").
		Joins("JOIN users ON users.id = ticket_purchases.user_id").
		Where("tickets.event_id = ?", eventID).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *EventDAO) FindAttendingEventIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).
		Table("ticket_purchases").
		Distinct("tickets.event_id").
		Joins("JOIN tickets ON tickets.id = ticket_purchases.ticket_id").
		Where("ticket_purchases.user_id = ?", userID).
		Pluck("tickets.event_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

// InsertVenue relies on the unique constraint on the venue name, so
// two concurrent creations of the same venue cannot both succeed.
func (d *EventDAO) InsertVenue(ctx context.Context, venue Venue) (Venue, error) {
	result := d.db.WithContext(ctx).Create(&venue)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return Venue{}, ErrVenueExists
		}

		return Venue{}, result.Error
	}

	return venue, nil
}

func (d *EventDAO) FindVenueByName(ctx context.Context, name string) (Venue, error) {
	var venue Venue

	result := d.db.WithContext(ctx).Where("name = ?", name).First(&venue)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Venue{}, ErrVenueNotFound
		}

		return Venue{}, result.Error
	}

	return venue, nil
}

func (d *EventDAO) CountVenueSeats(ctx context.Context, venueID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Seat{}).
		Where("venue_id = ?", venueID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/service"
)

type mockEventService struct {
	CreateEventFn            func(ctx context.Context, hostID uint, input domain.CreateEventInput) (domain.Event, error)
	PublishEventFn           func(ctx context.Context, eventID, userID uint) (domain.Event, error)
	UnpublishEventFn         func(ctx context.Context, eventID, userID uint) (domain.Event, error)
	DeleteEventFn            func(ctx context.Context, eventID, userID uint) error
	GetEventFn               func(ctx context.Context, eventID uint) (domain.Event, error)
	GetUpcomingEventsFn      func(ctx context.Context) ([]domain.Event, error)
	GetAllEventsFn           func(ctx context.Context) ([]domain.Event, error)
	GetHostEventsFn          func(ctx context.Context, hostID uint) ([]domain.Event, error)
	GetEventsUserAttendingFn func(ctx context.Context, userID uint) ([]domain.Event, error)
	GetEventGuestListFn      func(ctx context.Context, eventID, userID uint) ([]domain.Guest, error)
	GetHostDetailsFn         func(ctx context.Context, hostID uint) (domain.HostDetails, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, hostID uint, input domain.CreateEventInput) (domain.Event, error) {
	return m.CreateEventFn(ctx, hostID, input)
}

func (m *mockEventService) PublishEvent(ctx context.Context, eventID, userID uint) (domain.Event, error) {
	return m.PublishEventFn(ctx, eventID, userID)
}

func (m *mockEventService) UnpublishEvent(ctx context.Context, eventID, userID uint) (domain.Event, error) {
	return m.UnpublishEventFn(ctx, eventID, userID)
}

func (m *mockEventService) DeleteEvent(ctx context.Context, eventID, userID uint) error {
	return m.DeleteEventFn(ctx, eventID, userID)
}

func (m *mockEventService) GetEvent(ctx context.Context, eventID uint) (domain.Event, error) {
	return m.GetEventFn(ctx, eventID)
}

func (m *mockEventService) GetUpcomingEvents(ctx context.Context) ([]domain.Event, error) {
	return m.GetUpcomingEventsFn(ctx)
}

func (m *mockEventService) GetAllEvents(ctx context.Context) ([]domain.Event, error) {
	return m.GetAllEventsFn(ctx)
}

func (m *mockEventService) GetHostEvents(ctx context.Context, hostID uint) ([]domain.Event, error) {
	return m.GetHostEventsFn(ctx, hostID)
}

func (m *mockEventService) GetEventsUserAttending(ctx context.Context, userID uint) ([]domain.Event, error) {
	return m.GetEventsUserAttendingFn(ctx, userID)
}

func (m *mockEventService) GetEventGuestList(ctx context.Context, eventID, userID uint) ([]domain.Guest, error) {
	return m.GetEventGuestListFn(ctx, eventID, userID)
}

func (m *mockEventService) GetHostDetails(ctx context.Context, hostID uint) (domain.HostDetails, error) {
	return m.GetHostDetailsFn(ctx, hostID)
}

// testRouter mounts the handler behind a stub that injects the user ID,
// the way the JWT middleware would.
func testRouter(svc EventService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		if userID != 0 {
			ctx.Set(middleware.ContextKeyUserID, userID)
		}
	})

	handler := NewEventHandler(svc)
	router.POST("/events", handler.HandleCreateEvent)
	router.POST("/events/:eventID/publish", handler.HandlePublishEvent)
	router.POST("/events/:eventID/unpublish", handler.HandleUnpublishEvent)
	router.DELETE("/events/:eventID", handler.HandleDeleteEvent)
	router.GET("/events/:eventID", handler.HandleGetEvent)
	router.GET("/hosts/:hostID", handler.HandleGetHostDetails)

	return router
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

const createEventBody = `{
	"eventName": "Summer Gala",
	"startDateTime": "2031-07-01T19:00:00Z",
	"endDateTime": "2031-07-01T23:00:00Z",
	"eventVenue": "Grand Hall",
	"eventLocation": "12 Main St",
	"venueCapacity": 200,
	"capacity": 100,
	"tickets": [{"ticketType": "standard", "price": 25, "ticketAmount": 40}]
}`

func TestHandleCreateEvent(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mockEventService{
			CreateEventFn: func(ctx context.Context, hostID uint, input domain.CreateEventInput) (domain.Event, error) {
				assert.Equal(t, uint(1), hostID)
				assert.Equal(t, "Summer Gala", input.Name)
				assert.Equal(t, "Grand Hall", input.VenueName)
				require.Len(t, input.Tickets, 1)
				assert.Equal(t, 40, input.Tickets[0].Amount)
				return domain.Event{ID: 42, Name: input.Name}, nil
			},
		}
		recorder := performRequest(testRouter(svc, 1), http.MethodPost, "/events", createEventBody)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"eventID":42`)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		recorder := performRequest(testRouter(&mockEventService{}, 0), http.MethodPost, "/events", createEventBody)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("missing event name", func(t *testing.T) {
		body := strings.Replace(createEventBody, `"eventName": "Summer Gala",`, "", 1)
		recorder := performRequest(testRouter(&mockEventService{}, 1), http.MethodPost, "/events", body)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("business rule failures map to 400", func(t *testing.T) {
		for _, sentinel := range []error{
			service.ErrInvalidTimeRange,
			service.ErrInvalidCapacity,
			service.ErrInvalidEventDate,
			service.ErrCapacityExceeded,
			service.ErrVenueCapacityInsufficient,
		} {
			svc := &mockEventService{
				CreateEventFn: func(ctx context.Context, hostID uint, input domain.CreateEventInput) (domain.Event, error) {
					return domain.Event{}, sentinel
				},
			}
			recorder := performRequest(testRouter(svc, 1), http.MethodPost, "/events", createEventBody)

			assert.Equal(t, http.StatusBadRequest, recorder.Code, sentinel.Error())
			assert.Contains(t, recorder.Body.String(), sentinel.Error())
		}
	})
}

func TestHandlePublishEvent(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"published", nil, http.StatusCreated},
		{"not found", service.ErrEventNotFound, http.StatusNotFound},
		{"not the host", service.ErrNotEventHost, http.StatusForbidden},
		{"already published", service.ErrAlreadyPublished, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockEventService{
				PublishEventFn: func(ctx context.Context, eventID, userID uint) (domain.Event, error) {
					if tt.err != nil {
						return domain.Event{}, tt.err
					}
					return domain.Event{ID: eventID, Published: true}, nil
				},
			}
			recorder := performRequest(testRouter(svc, 1), http.MethodPost, "/events/5/publish", "")

			assert.Equal(t, tt.wantCode, recorder.Code)
			if tt.err == nil {
				assert.Contains(t, recorder.Body.String(), `"published":true`)
			}
		})
	}
}

func TestHandleUnpublishEvent(t *testing.T) {
	t.Run("unpublished", func(t *testing.T) {
		svc := &mockEventService{
			UnpublishEventFn: func(ctx context.Context, eventID, userID uint) (domain.Event, error) {
				return domain.Event{ID: eventID, Published: false}, nil
			},
		}
		recorder := performRequest(testRouter(svc, 1), http.MethodPost, "/events/5/unpublish", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"published":false`)
	})

	t.Run("already unpublished", func(t *testing.T) {
		svc := &mockEventService{
			UnpublishEventFn: func(ctx context.Context, eventID, userID uint) (domain.Event, error) {
				return domain.Event{}, service.ErrAlreadyUnpublished
			},
		}
		recorder := performRequest(testRouter(svc, 1), http.MethodPost, "/events/5/unpublish", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandleDeleteEvent(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := &mockEventService{
			DeleteEventFn: func(ctx context.Context, eventID, userID uint) error {
				return nil
			},
		}
		recorder := performRequest(testRouter(svc, 1), http.MethodDelete, "/events/5", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("not the host", func(t *testing.T) {
		svc := &mockEventService{
			DeleteEventFn: func(ctx context.Context, eventID, userID uint) error {
				return service.ErrNotEventHost
			},
		}
		recorder := performRequest(testRouter(svc, 1), http.MethodDelete, "/events/5", "")

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestHandleGetEvent(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &mockEventService{
			GetEventFn: func(ctx context.Context, eventID uint) (domain.Event, error) {
				return domain.Event{
					ID:            eventID,
					Name:          "Summer Gala",
					StartDateTime: time.Date(2031, 7, 1, 19, 0, 0, 0, time.UTC),
				}, nil
			},
		}
		recorder := performRequest(testRouter(svc, 0), http.MethodGet, "/events/5", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"eventName":"Summer Gala"`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mockEventService{
			GetEventFn: func(ctx context.Context, eventID uint) (domain.Event, error) {
				return domain.Event{}, service.ErrEventNotFound
			},
		}
		recorder := performRequest(testRouter(svc, 0), http.MethodGet, "/events/5", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		recorder := performRequest(testRouter(&mockEventService{}, 0), http.MethodGet, "/events/abc", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandleGetHostDetails(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &mockEventService{
			GetHostDetailsFn: func(ctx context.Context, hostID uint) (domain.HostDetails, error) {
				return domain.HostDetails{
					Events:     []domain.HostEventSummary{{EventID: 1, EventName: "Gala", EventScore: 4.5, NumReviews: 2}},
					HostRating: 4.5,
				}, nil
			},
		}
		recorder := performRequest(testRouter(svc, 0), http.MethodGet, "/hosts/9", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"hostRating":4.5`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mockEventService{
			GetHostDetailsFn: func(ctx context.Context, hostID uint) (domain.HostDetails, error) {
				return domain.HostDetails{}, service.ErrHostNotFound
			},
		}
		recorder := performRequest(testRouter(svc, 0), http.MethodGet, "/hosts/9", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

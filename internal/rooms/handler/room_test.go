package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "rhr/pkg/errors"
	"rhr/pkg/logger"
	"rhr/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockRoomService struct {
	listAvailableFunc       func(ctx context.Context) ([]*model.Room, error)
	listBookedFunc          func(ctx context.Context) ([]*model.Room, error)
	listAvailableSortedFunc func(ctx context.Context, direction string) ([]*model.Room, error)
	getDetailsFunc          func(ctx context.Context, id string) (*model.Room, error)
	bookFunc                func(ctx context.Context, id string, req *model.BookingRequest) (*model.Room, error)
	cancelFunc              func(ctx context.Context, id string) (*model.Room, error)
	updateCheckInDateFunc   func(ctx context.Context, id string, req *model.BookingRequest) (*model.Room, error)
}

func (m *mockRoomService) ListAvailable(ctx context.Context) ([]*model.Room, error) {
	return m.listAvailableFunc(ctx)
}

func (m *mockRoomService) ListBooked(ctx context.Context) ([]*model.Room, error) {
	return m.listBookedFunc(ctx)
}

func (m *mockRoomService) ListAvailableSorted(ctx context.Context, direction string) ([]*model.Room, error) {
	return m.listAvailableSortedFunc(ctx, direction)
}

func (m *mockRoomService) GetDetails(ctx context.Context, id string) (*model.Room, error) {
	return m.getDetailsFunc(ctx, id)
}

func (m *mockRoomService) Book(ctx context.Context, id string, req *model.BookingRequest) (*model.Room, error) {
	return m.bookFunc(ctx, id, req)
}

func (m *mockRoomService) Cancel(ctx context.Context, id string) (*model.Room, error) {
	return m.cancelFunc(ctx, id)
}

func (m *mockRoomService) UpdateCheckInDate(ctx context.Context, id string, req *model.BookingRequest) (*model.Room, error) {
	return m.updateCheckInDateFunc(ctx, id, req)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Service: "test"})
}

// passthroughAuth stands in for session verification in routing tests.
func passthroughAuth(next httprouter.Handle) httprouter.Handle {
	return next
}

func newTestRouter(svc *mockRoomService) *httprouter.Router {
	router := httprouter.New()
	NewRoomHandler(svc, passthroughAuth, testLogger()).RegisterRoutes(router)
	return router
}

func decodeData(t *testing.T, body []byte) json.RawMessage {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decoding response envelope: %v (body: %s)", err, body)
	}
	return envelope.Data
}

func TestListAvailable(t *testing.T) {
	svc := &mockRoomService{
		listAvailableFunc: func(ctx context.Context) ([]*model.Room, error) {
			return []*model.Room{
				{ID: "r1", Status: model.StatusAvailable, Price: 100},
				{ID: "r2", Status: model.StatusAvailable, Price: 50},
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var rooms []*model.Room
	if err := json.Unmarshal(decodeData(t, rec.Body.Bytes()), &rooms); err != nil {
		t.Fatalf("decoding rooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Errorf("expected 2 rooms, got %d", len(rooms))
	}
}

func TestListSorted_PassesDirection(t *testing.T) {
	var gotDirection string
	svc := &mockRoomService{
		listAvailableSortedFunc: func(_ context.Context, direction string) ([]*model.Room, error) {
			gotDirection = direction
			return []*model.Room{}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/sort/asc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotDirection != "asc" {
		t.Errorf("direction = %q, want 'asc'", gotDirection)
	}
}

func TestGetDetails_NotFound(t *testing.T) {
	svc := &mockRoomService{
		getDetailsFunc: func(_ context.Context, id string) (*model.Room, error) {
			return nil, apperrors.NotFoundWithID("Room", id)
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/id/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestBook(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "successful booking",
			body:       `{"date":"2024-05-01"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "conflict from service",
			body:       `{"date":"2024-05-01"}`,
			serviceErr: apperrors.Conflict("Room is already booked"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "validation failure from service",
			body:       `{"date":"tomorrow"}`,
			serviceErr: apperrors.Validation("Invalid booking input", nil),
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRoomService{
				bookFunc: func(_ context.Context, id string, req *model.BookingRequest) (*model.Room, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &model.Room{ID: id, Status: model.StatusBooked, Date: req.Date}, nil
				},
			}
			router := newTestRouter(svc)

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/rooms/id/r1", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestCancel(t *testing.T) {
	var gotID string
	svc := &mockRoomService{
		cancelFunc: func(_ context.Context, id string) (*model.Room, error) {
			gotID = id
			return &model.Room{ID: id, Status: model.StatusAvailable, Date: "2024-05-01"}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/rooms/booked/r1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotID != "r1" {
		t.Errorf("id = %q, want 'r1'", gotID)
	}

	var room model.Room
	if err := json.Unmarshal(decodeData(t, rec.Body.Bytes()), &room); err != nil {
		t.Fatalf("decoding room: %v", err)
	}
	if room.Status != model.StatusAvailable {
		t.Errorf("status = %s, want %s", room.Status, model.StatusAvailable)
	}
	if room.Date != "2024-05-01" {
		t.Errorf("date = %q, want retained '2024-05-01'", room.Date)
	}
}

func TestUpdateCheckInDate(t *testing.T) {
	svc := &mockRoomService{
		updateCheckInDateFunc: func(_ context.Context, id string, req *model.BookingRequest) (*model.Room, error) {
			return &model.Room{ID: id, Status: model.StatusBooked, Date: req.Date}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/rooms/booked/r1", strings.NewReader(`{"date":"2024-06-15"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var room model.Room
	if err := json.Unmarshal(decodeData(t, rec.Body.Bytes()), &room); err != nil {
		t.Fatalf("decoding room: %v", err)
	}
	if room.Date != "2024-06-15" {
		t.Errorf("date = %q, want '2024-06-15'", room.Date)
	}
}

func TestRegisterRoutes_NoConflicts(t *testing.T) {
	// httprouter panics at registration when a wildcard and a static segment
	// collide; registering all routes must not panic.
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("RegisterRoutes panicked: %v", r)
		}
	}()
	newTestRouter(&mockRoomService{})
}

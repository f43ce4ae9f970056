package service

import (
	"context"
	"errors"
	"fmt"
	"rhr/internal/rooms/repository"
	"rhr/internal/rooms/validator"
	"rhr/pkg/config"
	apperrors "rhr/pkg/errors"
	"rhr/pkg/events"
	"rhr/pkg/model"
	"time"

	roomserrors "rhr/internal/rooms/errors"
)

// sortAscending is the only direction literal that yields ascending order;
// every other value falls back to descending.
const sortAscending = "asc"

const publishTimeout = 5 * time.Second

type RoomService interface {
	ListAvailable(ctx context.Context) ([]*model.Room, error)
	ListBooked(ctx context.Context) ([]*model.Room, error)
	ListAvailableSorted(ctx context.Context, direction string) ([]*model.Room, error)
	GetDetails(ctx context.Context, id string) (*model.Room, error)
	Book(ctx context.Context, id string, req *model.BookingRequest) (*model.Room, error)
	Cancel(ctx context.Context, id string) (*model.Room, error)
	UpdateCheckInDate(ctx context.Context, id string, req *model.BookingRequest) (*model.Room, error)
}

type roomService struct {
	repo      repository.RoomRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *roomService) ListAvailable(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.FindByStatus(ctx, model.StatusAvailable)
	if err != nil {
		s.cfg.Log.Error("Failed to list available rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

func (s *roomService) ListBooked(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.FindByStatus(ctx, model.StatusBooked)
	if err != nil {
		s.cfg.Log.Error("Failed to list booked rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

func (s *roomService) ListAvailableSorted(ctx context.Context, direction string) ([]*model.Room, error) {
	ascending := direction == sortAscending
	if !ascending && direction != "desc" {
		s.cfg.Log.Warn("Unrecognized sort direction, defaulting to descending", "direction", direction)
	}

	rooms, err := s.repo.FindByStatusSortedByPrice(ctx, model.StatusAvailable, ascending)
	if err != nil {
		s.cfg.Log.Error("Failed to list sorted rooms", "direction", direction, "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

func (s *roomService) GetDetails(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}

	return room, nil
}

// Book transitions an Available room to Booked, setting status and check-in
// date in a single conditional write. A concurrent booking loses with a
// Conflict rather than silently overwriting the winner.
func (s *roomService) Book(ctx context.Context, id string, req *model.BookingRequest) (*model.Room, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	room, err := s.transition(ctx, id, model.StatusAvailable, model.StatusBooked, &req.Date, "Room is already booked")
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Room booked", "id", id, "date", req.Date)
	s.publish(ctx, events.NewRoomEvent(events.TypeRoomBooked, id, string(room.Status), room.Date))
	return room, nil
}

// Cancel transitions a Booked room back to Available. The check-in date is
// deliberately retained on the document.
func (s *roomService) Cancel(ctx context.Context, id string) (*model.Room, error) {
	room, err := s.transition(ctx, id, model.StatusBooked, model.StatusAvailable, nil, "Room is not currently booked")
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Booking cancelled", "id", id)
	s.publish(ctx, events.NewRoomEvent(events.TypeRoomCancelled, id, string(room.Status), room.Date))
	return room, nil
}

// UpdateCheckInDate moves the check-in date of a room that is currently
// Booked; the status is untouched.
func (s *roomService) UpdateCheckInDate(ctx context.Context, id string, req *model.BookingRequest) (*model.Room, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	err := s.repo.SetCheckInDate(ctx, id, req.Date)
	if err != nil {
		return nil, s.resolveWriteFailure(ctx, id, err, "Room is not currently booked")
	}

	room, err := s.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Check-in date updated", "id", id, "date", req.Date)
	s.publish(ctx, events.NewRoomEvent(events.TypeCheckInDateUpdated, id, string(room.Status), room.Date))
	return room, nil
}

// --- Helpers ---

func (s *roomService) transition(ctx context.Context, id string, from, to model.RoomStatus, date *string, conflictMsg string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	if err := s.repo.Transition(ctx, id, from, to, date); err != nil {
		return nil, s.resolveWriteFailure(ctx, id, err, conflictMsg)
	}

	return s.GetDetails(ctx, id)
}

// resolveWriteFailure maps a failed conditional write to the caller-facing
// outcome. A precondition miss is ambiguous at the store layer, so the room
// is re-read to distinguish a missing key from a status conflict.
func (s *roomService) resolveWriteFailure(ctx context.Context, id string, err error, conflictMsg string) error {
	switch {
	case errors.Is(err, roomserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid room ID format")
	case errors.Is(err, roomserrors.ErrPreconditionFailed):
		room, findErr := s.repo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, roomserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Room", id)
			}
			return apperrors.Internal("Failed to check room state", findErr)
		}
		s.cfg.Log.Warn("Room transition rejected on status conflict",
			"id", id,
			"current_status", room.Status,
		)
		return apperrors.Conflict(fmt.Sprintf("%s (current status: %s)", conflictMsg, room.Status))
	default:
		s.cfg.Log.Error("Failed to update room", "id", id, "error", err)
		return apperrors.Internal("Failed to update room", err)
	}
}

func (s *roomService) validate(req *model.BookingRequest) error {
	if req == nil {
		return apperrors.InvalidInput("Request body is required")
	}
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}
	return nil
}

// publish sends a room event best-effort: failures are logged, never
// surfaced to the caller. The publish deadline is detached from the request
// so a cancelled request cannot drop an event for a committed write.
func (s *roomService) publish(ctx context.Context, event events.RoomEvent) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.cfg.Log.Error("Failed to publish room event",
			"event_id", event.ID,
			"event_type", event.Type,
			"room_id", event.RoomID,
			"error", err,
		)
	}
}

package events

import (
	"time"

	"github.com/google/uuid"
)

// Room lifecycle event types published to Kafka for downstream consumers.
const (
	TypeRoomBooked         = "room.booked"
	TypeRoomCancelled      = "room.cancelled"
	TypeCheckInDateUpdated = "room.checkin_updated"
)

// RoomEvent describes a completed room lifecycle transition. Events are
// partitioned by RoomID so per-room ordering is preserved.
type RoomEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	RoomID     string    `json:"room_id"`
	Status     string    `json:"status"`
	Date       string    `json:"date,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewRoomEvent(eventType, roomID, status, date string) RoomEvent {
	return RoomEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		RoomID:     roomID,
		Status:     status,
		Date:       date,
		OccurredAt: time.Now().UTC(),
	}
}

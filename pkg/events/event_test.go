package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewRoomEvent(t *testing.T) {
	before := time.Now().UTC()
	event := NewRoomEvent(TypeRoomBooked, "r1", "Booked", "2024-05-01")

	if _, err := uuid.Parse(event.ID); err != nil {
		t.Errorf("event id %q is not a valid UUID: %v", event.ID, err)
	}
	if event.Type != TypeRoomBooked {
		t.Errorf("type = %s, want %s", event.Type, TypeRoomBooked)
	}
	if event.RoomID != "r1" {
		t.Errorf("room id = %s, want r1", event.RoomID)
	}
	if event.Status != "Booked" {
		t.Errorf("status = %s, want Booked", event.Status)
	}
	if event.Date != "2024-05-01" {
		t.Errorf("date = %s, want 2024-05-01", event.Date)
	}
	if event.OccurredAt.Before(before) || event.OccurredAt.After(time.Now().UTC()) {
		t.Errorf("occurred at = %v, want a timestamp near now", event.OccurredAt)
	}
}

func TestNewRoomEvent_UniqueIDs(t *testing.T) {
	a := NewRoomEvent(TypeRoomBooked, "r1", "Booked", "2024-05-01")
	b := NewRoomEvent(TypeRoomCancelled, "r1", "Available", "2024-05-01")
	if a.ID == b.ID {
		t.Error("expected distinct event IDs")
	}
}

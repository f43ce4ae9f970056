package model

type RoomStatus string

const (
	StatusAvailable RoomStatus = "Available"
	StatusBooked    RoomStatus = "Booked"
)

// Room is a bookable hotel room. Rooms are seeded out-of-band; this service
// only transitions them between Available and Booked. Date carries the
// check-in marker and is set if and only if the room has ever been booked;
// it is deliberately retained on cancellation.
type Room struct {
	ID     string     `json:"id,omitempty" bson:"_id,omitempty"`
	Status RoomStatus `json:"status" bson:"status"`
	Price  float64    `json:"price" bson:"price"`
	Date   string     `json:"date,omitempty" bson:"date,omitempty"`
}

// BookingRequest is the payload for booking a room or moving its check-in date.
type BookingRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

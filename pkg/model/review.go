package model

import "time"

// Review is an append-only guest review. Num loosely references a room; no
// referential integrity is enforced, a review may point at a room that does
// not exist.
type Review struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Num       int       `json:"num" bson:"num"`
	Rating    float64   `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created" bson:"created"`
}

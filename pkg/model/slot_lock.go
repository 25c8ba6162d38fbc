package model

import "time"

// SlotLock is an advisory lock keyed by (date, time_slot). Inserting it
// serializes the availability check against the booking insert; a duplicate
// key error means another request holds the slot right now.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

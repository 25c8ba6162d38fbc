package model

import "time"

// Booking statuses are open strings in storage; these are the values the
// admin dashboard writes.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// TimeSlots is the fixed universe of bookable hourly slots for any date.
var TimeSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM",
	"05:00 PM", "06:00 PM", "07:00 PM", "08:00 PM",
}

// IsValidTimeSlot reports whether the label belongs to the slot universe.
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

type Booking struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email      string    `json:"email" bson:"email" validate:"required,email"`
	Phone      string    `json:"phone" bson:"phone" validate:"required,min=6,max=20"`
	Service    string    `json:"service" bson:"service" validate:"required,min=2,max=100"`
	Date       string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot   string    `json:"time_slot" bson:"time_slot" validate:"required"`
	Notes      string    `json:"notes" bson:"notes" validate:"max=2000"`
	AdminNotes string    `json:"admin_notes" bson:"admin_notes"`
	Status     string    `json:"status" bson:"status"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type BookingStatusUpdate struct {
	Status string `json:"status" validate:"required,min=1,max=50"`
}

type BookingNotesUpdate struct {
	AdminNotes string `json:"admin_notes" validate:"max=2000"`
}

// SlotAvailability is the derived per-date view over the fixed slot universe.
type SlotAvailability struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
	BookedSlots    []string `json:"booked_slots"`
}

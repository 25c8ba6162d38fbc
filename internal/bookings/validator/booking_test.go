package validator

import (
	"testing"

	"astrodesk/pkg/logger"
	"astrodesk/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func validBooking() *model.Booking {
	return &model.Booking{
		ID:       "b-1",
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+61426272559",
		Service:  "Psychic Reading",
		Date:     "2025-03-01",
		TimeSlot: "09:00 AM",
		Status:   model.BookingStatusPending,
	}
}

func TestValidate_Valid(t *testing.T) {
	v := newTestValidator()
	if err := v.Validate(validBooking()); err != nil {
		t.Errorf("expected valid booking, got error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name   string
		mutate func(*model.Booking)
	}{
		{"missing name", func(b *model.Booking) { b.Name = "" }},
		{"bad email", func(b *model.Booking) { b.Email = "not-an-email" }},
		{"missing phone", func(b *model.Booking) { b.Phone = "" }},
		{"missing service", func(b *model.Booking) { b.Service = "" }},
		{"bad date format", func(b *model.Booking) { b.Date = "01-03-2025" }},
		{"unknown slot", func(b *model.Booking) { b.TimeSlot = "09:30 AM" }},
		{"empty slot", func(b *model.Booking) { b.TimeSlot = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			if err := v.Validate(b); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateStatusUpdate(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateStatusUpdate(&model.BookingStatusUpdate{Status: "confirmed"}); err != nil {
		t.Errorf("expected valid status update, got %v", err)
	}
	if err := v.ValidateStatusUpdate(&model.BookingStatusUpdate{Status: ""}); err == nil {
		t.Error("expected error for empty status")
	}
}

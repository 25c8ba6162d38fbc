package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "astrodesk/internal/bookings/errors"
	"astrodesk/internal/bookings/repository"
	"astrodesk/internal/bookings/validator"
	"astrodesk/pkg/config"
	apperrors "astrodesk/pkg/errors"
	"astrodesk/pkg/events"
	"astrodesk/pkg/model"
	"astrodesk/pkg/sanitizer"
)

// StatsRecorder is the slice of the analytics service the booking flow needs.
type StatsRecorder interface {
	Increment(ctx context.Context, metricType, date, page string) error
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	List(ctx context.Context) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateNotes(ctx context.Context, id, adminNotes string) error
	Delete(ctx context.Context, id string) error
	AvailableSlots(ctx context.Context, date string) (*model.SlotAvailability, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	validator *validator.BookingValidator
	stats     StatsRecorder
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	bookingValidator *validator.BookingValidator,
	stats StatsRecorder,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: bookingValidator,
		stats:     stats,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create reserves the slot and stores the booking. The advisory lock plus the
// occupancy check make the reservation atomic: of two concurrent submissions
// for the same (date, time_slot), exactly one succeeds and the other gets a
// conflict.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.sanitize(booking)
	s.applyDefaults(booking)

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	lockID, err := s.acquireSlotLock(ctx, booking.Date, booking.TimeSlot)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.lockRepo.Delete(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	taken, err := s.repo.ExistsActiveSlot(ctx, booking.Date, booking.TimeSlot)
	if err != nil {
		return apperrors.Internal("Failed to check slot availability", err)
	}
	if taken {
		return apperrors.Conflict(fmt.Sprintf(
			"Time slot %s on %s is already booked", booking.TimeSlot, booking.Date,
		))
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	if err := s.stats.Increment(ctx, model.MetricBookings, today(), ""); err != nil {
		s.cfg.Log.Warn("Failed to record booking metric", "error", err)
	}
	s.publisher.BookingCreated(ctx, booking)

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"date", booking.Date,
		"time_slot", booking.TimeSlot,
		"service", booking.Service,
	)
	return nil
}

func (s *bookingService) List(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidateStatusUpdate(&model.BookingStatusUpdate{Status: status}); err != nil {
		return apperrors.Validation("Invalid status update", map[string]any{"error": err.Error()})
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Internal("Failed to update booking", err)
	}

	s.cfg.Log.Info("Booking status updated", "id", id, "status", status)
	return nil
}

func (s *bookingService) UpdateNotes(ctx context.Context, id, adminNotes string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidateNotesUpdate(&model.BookingNotesUpdate{AdminNotes: adminNotes}); err != nil {
		return apperrors.Validation("Invalid notes update", map[string]any{"error": err.Error()})
	}

	if err := s.repo.UpdateNotes(ctx, id, sanitizer.TrimAndNormalize(adminNotes)); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Internal("Failed to update booking notes", err)
	}

	s.cfg.Log.Info("Booking notes updated", "id", id)
	return nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted", "id", id)
	return nil
}

// AvailableSlots partitions the fixed slot universe for one date. Available
// and booked are disjoint and their union is always the full universe.
func (s *bookingService) AvailableSlots(ctx context.Context, date string) (*model.SlotAvailability, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	bookedList, err := s.repo.FindActiveSlotsByDate(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch booked slots", "date", date, "error", err)
		return nil, apperrors.Internal("Failed to retrieve slot availability", err)
	}

	booked := make(map[string]bool, len(bookedList))
	for _, slot := range bookedList {
		booked[slot] = true
	}

	availability := &model.SlotAvailability{
		Date:           date,
		AvailableSlots: []string{},
		BookedSlots:    []string{},
	}
	for _, slot := range model.TimeSlots {
		if booked[slot] {
			availability.BookedSlots = append(availability.BookedSlots, slot)
		} else {
			availability.AvailableSlots = append(availability.AvailableSlots, slot)
		}
	}

	return availability, nil
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Name = sanitizer.TrimAndNormalize(b.Name)
	b.Email = sanitizer.NormalizeEmail(b.Email)
	b.Phone = sanitizer.NormalizePhone(b.Phone)
	b.Service = sanitizer.TrimAndNormalize(b.Service)
	b.Notes = sanitizer.TrimAndNormalize(b.Notes)
}

// applyDefaults assigns server-controlled fields, ignoring whatever the
// client sent for them.
func (s *bookingService) applyDefaults(b *model.Booking) {
	b.ID = uuid.New().String()
	b.Status = model.BookingStatusPending
	b.AdminNotes = ""
}

func (s *bookingService) acquireSlotLock(ctx context.Context, date, timeSlot string) (string, error) {
	lockID := fmt.Sprintf("slot_%s_%s", date, timeSlot)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(10 * time.Second),
	}

	if err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

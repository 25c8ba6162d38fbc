package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	inquirieserrors "astrodesk/internal/inquiries/errors"
	"astrodesk/internal/inquiries/repository"
	"astrodesk/internal/inquiries/validator"
	"astrodesk/pkg/config"
	apperrors "astrodesk/pkg/errors"
	"astrodesk/pkg/events"
	"astrodesk/pkg/model"
	"astrodesk/pkg/sanitizer"
)

// StatsRecorder is the slice of the analytics service the inquiry flow needs.
type StatsRecorder interface {
	Increment(ctx context.Context, metricType, date, page string) error
}

type InquiryService interface {
	Create(ctx context.Context, inquiry *model.Inquiry) error
	List(ctx context.Context) ([]*model.Inquiry, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateNotes(ctx context.Context, id, adminNotes string) error
	Delete(ctx context.Context, id string) error
}

type inquiryService struct {
	repo      repository.InquiryRepository
	validator *validator.InquiryValidator
	stats     StatsRecorder
	publisher events.Publisher
	cfg       *config.Config
}

func NewInquiryService(
	repo repository.InquiryRepository,
	inquiryValidator *validator.InquiryValidator,
	stats StatsRecorder,
	publisher events.Publisher,
	cfg *config.Config,
) InquiryService {
	return &inquiryService{
		repo:      repo,
		validator: inquiryValidator,
		stats:     stats,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *inquiryService) Create(ctx context.Context, inquiry *model.Inquiry) error {
	s.sanitize(inquiry)
	s.applyDefaults(inquiry)

	if err := s.validator.Validate(inquiry); err != nil {
		s.cfg.Log.Warn("Inquiry validation failed", "error", err)
		return apperrors.Validation("Inquiry validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		s.cfg.Log.Error("Failed to create inquiry", "error", err)
		return apperrors.Internal("Failed to create inquiry", err)
	}

	if err := s.stats.Increment(ctx, model.MetricQueries, today(), ""); err != nil {
		s.cfg.Log.Warn("Failed to record inquiry metric", "error", err)
	}
	s.publisher.InquiryCreated(ctx, inquiry)

	s.cfg.Log.Info("Inquiry created", "id", inquiry.ID, "subject", inquiry.Subject)
	return nil
}

func (s *inquiryService) List(ctx context.Context) ([]*model.Inquiry, error) {
	inquiries, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list inquiries", "error", err)
		return nil, apperrors.Internal("Failed to retrieve inquiries", err)
	}
	if inquiries == nil {
		inquiries = []*model.Inquiry{}
	}
	return inquiries, nil
}

func (s *inquiryService) UpdateStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return apperrors.InvalidInput("Inquiry ID cannot be empty")
	}
	if err := s.validator.ValidateStatusUpdate(&model.InquiryStatusUpdate{Status: status}); err != nil {
		return apperrors.Validation("Invalid status update", map[string]any{"error": err.Error()})
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, inquirieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Inquiry", id)
		}
		return apperrors.Internal("Failed to update inquiry", err)
	}

	s.cfg.Log.Info("Inquiry status updated", "id", id, "status", status)
	return nil
}

func (s *inquiryService) UpdateNotes(ctx context.Context, id, adminNotes string) error {
	if id == "" {
		return apperrors.InvalidInput("Inquiry ID cannot be empty")
	}
	if err := s.validator.ValidateNotesUpdate(&model.InquiryNotesUpdate{AdminNotes: adminNotes}); err != nil {
		return apperrors.Validation("Invalid notes update", map[string]any{"error": err.Error()})
	}

	if err := s.repo.UpdateNotes(ctx, id, sanitizer.TrimAndNormalize(adminNotes)); err != nil {
		if errors.Is(err, inquirieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Inquiry", id)
		}
		return apperrors.Internal("Failed to update inquiry notes", err)
	}

	s.cfg.Log.Info("Inquiry notes updated", "id", id)
	return nil
}

func (s *inquiryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Inquiry ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, inquirieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Inquiry", id)
		}
		return apperrors.Internal("Failed to delete inquiry", err)
	}

	s.cfg.Log.Info("Inquiry deleted", "id", id)
	return nil
}

func (s *inquiryService) sanitize(i *model.Inquiry) {
	i.Name = sanitizer.TrimAndNormalize(i.Name)
	i.Email = sanitizer.NormalizeEmail(i.Email)
	i.Phone = sanitizer.NormalizePhone(i.Phone)
	i.Subject = sanitizer.TrimAndNormalize(i.Subject)
	i.Message = sanitizer.TrimAndNormalize(i.Message)
}

// applyDefaults assigns server-controlled fields, ignoring whatever the
// client sent for them.
func (s *inquiryService) applyDefaults(i *model.Inquiry) {
	i.ID = uuid.New().String()
	i.Status = model.InquiryStatusNew
	i.AdminNotes = ""
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

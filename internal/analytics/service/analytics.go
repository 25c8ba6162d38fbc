package service

import (
	"context"
	"time"

	"astrodesk/internal/analytics/repository"
	"astrodesk/pkg/config"
	apperrors "astrodesk/pkg/errors"
	"astrodesk/pkg/model"
	"astrodesk/pkg/sanitizer"
)

// trendDays is the window of the dashboard trend series, today included.
const trendDays = 7

// BookingCounter is the slice of the booking store the summary needs.
type BookingCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// InquiryCounter is the slice of the inquiry store the summary needs.
type InquiryCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type AnalyticsService interface {
	Increment(ctx context.Context, metricType, date, page string) error
	TrackPageView(ctx context.Context, page string) error
	Summary(ctx context.Context) (*model.AnalyticsSummary, error)
}

type analyticsService struct {
	stats     repository.StatsRepository
	bookings  BookingCounter
	inquiries InquiryCounter
	cfg       *config.Config
	now       func() time.Time
}

func NewAnalyticsService(
	stats repository.StatsRepository,
	bookings BookingCounter,
	inquiries InquiryCounter,
	cfg *config.Config,
) AnalyticsService {
	return &analyticsService{
		stats:     stats,
		bookings:  bookings,
		inquiries: inquiries,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *analyticsService) Increment(ctx context.Context, metricType, date, page string) error {
	return s.stats.Increment(ctx, metricType, date, page)
}

// TrackPageView records one visit of a public page. Failures surface as
// unavailable so the frontend can distinguish a down tracker from a bad
// request.
func (s *analyticsService) TrackPageView(ctx context.Context, page string) error {
	page = sanitizer.TrimAndNormalize(page)
	if page == "" {
		return apperrors.InvalidInput("Page cannot be empty")
	}

	date := s.now().UTC().Format("2006-01-02")
	if err := s.stats.Increment(ctx, model.MetricPageViews, date, page); err != nil {
		s.cfg.Log.Error("Failed to record page view", "page", page, "error", err)
		return apperrors.UnavailableWithCause("Analytics", err)
	}
	return nil
}

// Summary aggregates the dashboard numbers: lifetime booking and inquiry
// counts by status plus the last seven days of each trend series.
func (s *analyticsService) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	summary := &model.AnalyticsSummary{}

	var err error
	if summary.TotalBookings, err = s.bookings.Count(ctx); err != nil {
		return nil, s.summaryError("bookings", err)
	}
	if summary.PendingBookings, err = s.bookings.CountByStatus(ctx, model.BookingStatusPending); err != nil {
		return nil, s.summaryError("pending bookings", err)
	}
	if summary.ConfirmedBookings, err = s.bookings.CountByStatus(ctx, model.BookingStatusConfirmed); err != nil {
		return nil, s.summaryError("confirmed bookings", err)
	}
	if summary.TotalQueries, err = s.inquiries.Count(ctx); err != nil {
		return nil, s.summaryError("queries", err)
	}
	if summary.NewQueries, err = s.inquiries.CountByStatus(ctx, model.InquiryStatusNew); err != nil {
		return nil, s.summaryError("new queries", err)
	}

	since := s.now().UTC().AddDate(0, 0, -(trendDays - 1)).Format("2006-01-02")
	if summary.BookingTrends, err = s.trend(ctx, model.MetricBookings, since); err != nil {
		return nil, err
	}
	if summary.QueryTrends, err = s.trend(ctx, model.MetricQueries, since); err != nil {
		return nil, err
	}
	if summary.ChatTrends, err = s.trend(ctx, model.MetricChats, since); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *analyticsService) trend(ctx context.Context, metricType, since string) ([]model.DailyStat, error) {
	stats, err := s.stats.FindSince(ctx, metricType, since)
	if err != nil {
		return nil, s.summaryError(metricType+" trend", err)
	}
	if stats == nil {
		stats = []model.DailyStat{}
	}
	return stats, nil
}

func (s *analyticsService) summaryError(what string, err error) error {
	s.cfg.Log.Error("Failed to build analytics summary", "part", what, "error", err)
	return apperrors.Internal("Failed to build analytics summary", err)
}

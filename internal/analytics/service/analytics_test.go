package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"astrodesk/pkg/config"
	apperrors "astrodesk/pkg/errors"
	"astrodesk/pkg/logger"
	"astrodesk/pkg/model"
)

type incrementCall struct {
	metricType string
	date       string
	page       string
}

type mockStatsRepository struct {
	increments    []incrementCall
	incrementErr  error
	findSinceFunc func(ctx context.Context, metricType, dateGte string) ([]model.DailyStat, error)
}

func (m *mockStatsRepository) Increment(_ context.Context, metricType, date, page string) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	m.increments = append(m.increments, incrementCall{metricType, date, page})
	return nil
}

func (m *mockStatsRepository) FindSince(ctx context.Context, metricType, dateGte string) ([]model.DailyStat, error) {
	if m.findSinceFunc != nil {
		return m.findSinceFunc(ctx, metricType, dateGte)
	}
	return nil, nil
}

type mockCounter struct {
	total    int64
	byStatus map[string]int64
}

func (m *mockCounter) Count(_ context.Context) (int64, error) {
	return m.total, nil
}

func (m *mockCounter) CountByStatus(_ context.Context, status string) (int64, error) {
	return m.byStatus[status], nil
}

func newTestService(stats *mockStatsRepository, bookings, inquiries *mockCounter) *analyticsService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}),
	}
	svc := NewAnalyticsService(stats, bookings, inquiries, cfg).(*analyticsService)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestTrackPageView(t *testing.T) {
	stats := &mockStatsRepository{}
	svc := newTestService(stats, &mockCounter{}, &mockCounter{})

	if err := svc.TrackPageView(context.Background(), "/services"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stats.increments) != 1 {
		t.Fatalf("expected one increment, got %d", len(stats.increments))
	}
	call := stats.increments[0]
	if call.metricType != model.MetricPageViews {
		t.Errorf("expected page_views metric, got %q", call.metricType)
	}
	if call.date != "2025-03-10" {
		t.Errorf("expected today's date, got %q", call.date)
	}
	if call.page != "/services" {
		t.Errorf("expected tracked page, got %q", call.page)
	}
}

func TestTrackPageView_EmptyPage(t *testing.T) {
	svc := newTestService(&mockStatsRepository{}, &mockCounter{}, &mockCounter{})

	err := svc.TrackPageView(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected invalid input error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
}

func TestTrackPageView_StoreFailure(t *testing.T) {
	stats := &mockStatsRepository{incrementErr: errors.New("connection reset")}
	svc := newTestService(stats, &mockCounter{}, &mockCounter{})

	err := svc.TrackPageView(context.Background(), "/home")
	if err == nil {
		t.Fatal("expected unavailable error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeUnavailable {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %s", appErr.Code)
	}
}

func TestSummary(t *testing.T) {
	var requestedSince []string
	stats := &mockStatsRepository{
		findSinceFunc: func(_ context.Context, metricType, dateGte string) ([]model.DailyStat, error) {
			requestedSince = append(requestedSince, dateGte)
			if metricType == model.MetricBookings {
				return []model.DailyStat{
					{Type: metricType, Date: "2025-03-09", Count: 2},
					{Type: metricType, Date: "2025-03-10", Count: 1},
				}, nil
			}
			return nil, nil
		},
	}
	bookings := &mockCounter{
		total: 12,
		byStatus: map[string]int64{
			model.BookingStatusPending:   4,
			model.BookingStatusConfirmed: 7,
		},
	}
	inquiries := &mockCounter{
		total:    5,
		byStatus: map[string]int64{model.InquiryStatusNew: 3},
	}
	svc := newTestService(stats, bookings, inquiries)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalBookings != 12 || summary.PendingBookings != 4 || summary.ConfirmedBookings != 7 {
		t.Errorf("unexpected booking counts: %+v", summary)
	}
	if summary.TotalQueries != 5 || summary.NewQueries != 3 {
		t.Errorf("unexpected query counts: %+v", summary)
	}
	if len(summary.BookingTrends) != 2 {
		t.Errorf("expected 2 booking trend points, got %d", len(summary.BookingTrends))
	}
	if summary.QueryTrends == nil || summary.ChatTrends == nil {
		t.Error("empty trends must be empty slices, not nil")
	}

	for _, since := range requestedSince {
		if since != "2025-03-04" {
			t.Errorf("expected 7-day window starting 2025-03-04, got %q", since)
		}
	}
}

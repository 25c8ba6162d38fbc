package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "astrodesk/pkg/errors"
	"astrodesk/pkg/logger"
	"astrodesk/pkg/model"
)

type mockAnalyticsService struct {
	trackFunc   func(ctx context.Context, page string) error
	summaryFunc func(ctx context.Context) (*model.AnalyticsSummary, error)
}

func (m *mockAnalyticsService) Increment(_ context.Context, _, _, _ string) error {
	return nil
}

func (m *mockAnalyticsService) TrackPageView(ctx context.Context, page string) error {
	if m.trackFunc != nil {
		return m.trackFunc(ctx, page)
	}
	return nil
}

func (m *mockAnalyticsService) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx)
	}
	return &model.AnalyticsSummary{}, nil
}

func newTestRouter(svc *mockAnalyticsService) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	router := httprouter.New()
	NewAnalyticsHandler(svc, func(next httprouter.Handle) httprouter.Handle { return next }, log).RegisterRoutes(router)
	return router
}

func TestSummary(t *testing.T) {
	svc := &mockAnalyticsService{
		summaryFunc: func(_ context.Context) (*model.AnalyticsSummary, error) {
			return &model.AnalyticsSummary{
				TotalBookings: 10,
				NewQueries:    2,
				BookingTrends: []model.DailyStat{{Type: model.MetricBookings, Date: "2025-03-10", Count: 3}},
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got model.AnalyticsSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.TotalBookings != 10 || got.NewQueries != 2 || len(got.BookingTrends) != 1 {
		t.Errorf("unexpected summary: %+v", got)
	}
}

func TestTrackPageView(t *testing.T) {
	var gotPage string
	svc := &mockAnalyticsService{
		trackFunc: func(_ context.Context, page string) error {
			gotPage = page
			return nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/page-views?page=%2Fservices", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotPage != "/services" {
		t.Errorf("expected page /services, got %q", gotPage)
	}
}

func TestTrackPageView_MissingPage(t *testing.T) {
	svc := &mockAnalyticsService{
		trackFunc: func(_ context.Context, page string) error {
			return apperrors.InvalidInput("Page cannot be empty")
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/page-views", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

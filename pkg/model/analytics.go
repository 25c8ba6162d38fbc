package model

// Metric types tracked as per-day counters.
const (
	MetricBookings  = "bookings"
	MetricQueries   = "queries"
	MetricChats     = "chats"
	MetricPageViews = "page_views"
)

// DailyStat is one per-day counter document. Page is set only for
// MetricPageViews, where it carries the tracked page path.
type DailyStat struct {
	Type  string `json:"type" bson:"type"`
	Date  string `json:"date" bson:"date"`
	Page  string `json:"page,omitempty" bson:"page,omitempty"`
	Count int64  `json:"count" bson:"count"`
}

type AnalyticsSummary struct {
	TotalBookings     int64       `json:"total_bookings"`
	PendingBookings   int64       `json:"pending_bookings"`
	ConfirmedBookings int64       `json:"confirmed_bookings"`
	TotalQueries      int64       `json:"total_queries"`
	NewQueries        int64       `json:"new_queries"`
	BookingTrends     []DailyStat `json:"booking_trends"`
	QueryTrends       []DailyStat `json:"query_trends"`
	ChatTrends        []DailyStat `json:"chat_trends"`
}

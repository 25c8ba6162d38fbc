package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"astrodesk/internal/analytics/service"
	httputil "astrodesk/pkg/http"
	"astrodesk/pkg/logger"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: analyticsService,
		auth:    auth,
		log:     log,
	}
}

func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, summary); err != nil {
		h.log.Error("failed to write success response", "handler", "Summary", "error", err)
	}
}

// TrackPageView is a fire-and-forget beacon the frontend calls on page load,
// so it takes the page as a query parameter rather than a body.
func (h *AnalyticsHandler) TrackPageView(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.TrackPageView(r.Context(), r.URL.Query().Get("page")); err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteMessage(w, "Tracked"); err != nil {
		h.log.Error("failed to write message response", "handler", "TrackPageView", "error", err)
	}
}

func (h *AnalyticsHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/analytics/summary", h.auth(h.Summary))
	router.GET("/api/analytics/page-views", h.TrackPageView)
}

func (h *AnalyticsHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "error", writeErr)
	}
}

package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"astrodesk/pkg/config"
	httputil "astrodesk/pkg/http"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Live reports process liveness only. It never touches dependencies.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready pings the document store so load balancers stop routing to an
// instance that lost its database.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.cfg.Client.Mongo.Ping(r.Context(), readpref.Primary()); err != nil {
		h.cfg.Log.Warn("Readiness ping failed", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unavailable",
			"database": "disconnected",
		})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "connected",
	})
}

// Banner is the public API root the frontend probes on load.
func (h *HealthHandler) Banner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Best Astrologer in Dandenong API",
		"status":  "healthy",
	})
}

// APIHealth mirrors Ready on the public API surface, but always answers 200
// so the frontend can render the degraded state itself.
func (h *HealthHandler) APIHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.cfg.Client.Mongo.Ping(r.Context(), readpref.Primary()); err != nil {
		h.writeJSON(w, http.StatusOK, map[string]string{
			"status":   "unhealthy",
			"database": err.Error(),
		})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": "connected",
	})
}

// RegisterRoutes adds the public API surface. Live and Ready are mounted
// separately on the unthrottled health router.
func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api", h.Banner)
	router.GET("/api/health", h.APIHealth)
}

func (h *HealthHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.cfg.Log.Error("failed to write JSON response", "error", err)
	}
}

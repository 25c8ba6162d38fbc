package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"astrodesk/internal/bookings/service"
	httputil "astrodesk/pkg/http"
	"astrodesk/pkg/logger"
	"astrodesk/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewBookingHandler(bookingService service.BookingService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: bookingService,
		auth:    auth,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.BookingStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), update.Status); err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteMessage(w, "Booking updated"); err != nil {
		h.log.Error("failed to write message response", "handler", "UpdateStatus", "error", err)
	}
}

func (h *BookingHandler) UpdateNotes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.BookingNotesUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.UpdateNotes(r.Context(), ps.ByName("id"), update.AdminNotes); err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteMessage(w, "Notes updated"); err != nil {
		h.log.Error("failed to write message response", "handler", "UpdateNotes", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteMessage(w, "Booking deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "error", err)
	}
}

func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	availability, err := h.service.AvailableSlots(r.Context(), ps.ByName("date"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "Slots", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", h.Create)
	router.GET("/api/bookings", h.auth(h.List))
	router.PATCH("/api/bookings/:id", h.auth(h.UpdateStatus))
	router.PATCH("/api/bookings/:id/notes", h.auth(h.UpdateNotes))
	router.DELETE("/api/bookings/:id", h.auth(h.Delete))
	router.GET("/api/time-slots/:date", h.Slots)
}

func (h *BookingHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "error", writeErr)
	}
}

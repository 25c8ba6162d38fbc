package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"astrodesk/internal/inquiries/service"
	httputil "astrodesk/pkg/http"
	"astrodesk/pkg/logger"
	"astrodesk/pkg/model"
)

type InquiryHandler struct {
	service service.InquiryService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewInquiryHandler(inquiryService service.InquiryService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *InquiryHandler {
	return &InquiryHandler{
		service: inquiryService,
		auth:    auth,
		log:     log,
	}
}

func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var inquiry model.Inquiry
	if err := json.NewDecoder(r.Body).Decode(&inquiry); err != nil {
		h.writeJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Create(r.Context(), &inquiry); err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, inquiry); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	inquiries, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, inquiries); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.InquiryStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), update.Status); err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteMessage(w, "Query updated"); err != nil {
		h.log.Error("failed to write message response", "handler", "UpdateStatus", "error", err)
	}
}

func (h *InquiryHandler) UpdateNotes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.InquiryNotesUpdate
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

func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteMessage(w, "Query deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "error", err)
	}
}

func (h *InquiryHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/queries", h.Create)
	router.GET("/api/queries", h.auth(h.List))
	router.PATCH("/api/queries/:id", h.auth(h.UpdateStatus))
	router.PATCH("/api/queries/:id/notes", h.auth(h.UpdateNotes))
	router.DELETE("/api/queries/:id", h.auth(h.Delete))
}

func (h *InquiryHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "error", err)
	}
}

func (h *InquiryHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "error", writeErr)
	}
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"astrodesk/internal/chat/service"
	httputil "astrodesk/pkg/http"
	"astrodesk/pkg/logger"
	"astrodesk/pkg/model"
)

type ChatHandler struct {
	service service.ChatService
	log     *logger.Logger
}

func NewChatHandler(chatService service.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		service: chatService,
		log:     log,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"}); writeErr != nil {
			h.log.Error("failed to write JSON response", "error", writeErr)
		}
		return
	}

	resp, err := h.service.Chat(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Chat", "error", err)
	}
}

func (h *ChatHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/chat", h.Chat)
}

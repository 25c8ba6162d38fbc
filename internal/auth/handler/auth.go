package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"astrodesk/internal/auth/service"
	"astrodesk/pkg/config"
	httputil "astrodesk/pkg/http"
	"astrodesk/pkg/middleware"
	"astrodesk/pkg/model"
)

type AuthHandler struct {
	service service.AuthService
	auth    func(httprouter.Handle) httprouter.Handle
	cfg     *config.Config
}

func NewAuthHandler(authService service.AuthService, auth func(httprouter.Handle) httprouter.Handle, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		service: authService,
		auth:    auth,
		cfg:     cfg,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.cfg.Log.Error("failed to write login response", "error", err)
	}
}

// Me confirms the bearer token is still valid and echoes the identity the
// auth middleware resolved from it.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	username := middleware.Identity(r.Context())
	h.writeJSON(w, http.StatusOK, map[string]string{"username": username})
}

// InitAdmin seeds the admin account over HTTP. It stays disabled unless
// explicitly enabled in configuration; the migrate command is the supported
// way to seed production.
func (h *AuthHandler) InitAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !h.cfg.InitAdminEnabled {
		h.writeJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "Not found"})
		return
	}

	created, err := h.service.EnsureAdmin(r.Context(), h.cfg.AdminUsername, h.cfg.AdminPassword)
	if err != nil {
		h.writeError(w, err)
		return
	}

	message := "Admin account already exists"
	if created {
		message = "Admin account created"
	}
	if err := httputil.WriteMessage(w, message); err != nil {
		h.cfg.Log.Error("failed to write message response", "handler", "InitAdmin", "error", err)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/auth/login", h.Login)
	router.GET("/api/auth/me", h.auth(h.Me))
	router.POST("/api/init-admin", h.InitAdmin)
}

func (h *AuthHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.cfg.Log.Error("failed to write JSON response", "error", err)
	}
}

func (h *AuthHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.cfg.Log.Error("failed to write error response", "error", writeErr)
	}
}

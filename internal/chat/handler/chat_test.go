package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "astrodesk/pkg/errors"
	"astrodesk/pkg/logger"
	"astrodesk/pkg/model"
)

type mockChatService struct {
	chatFunc func(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error)
}

func (m *mockChatService) Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	if m.chatFunc != nil {
		return m.chatFunc(ctx, req)
	}
	return &model.ChatResponse{Response: "ok", SessionID: "s-1"}, nil
}

func newTestRouter(svc *mockChatService) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	router := httprouter.New()
	NewChatHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestChat_Reply(t *testing.T) {
	svc := &mockChatService{
		chatFunc: func(_ context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
			if req.Message != "Hello" {
				t.Errorf("unexpected message: %q", req.Message)
			}
			return &model.ChatResponse{Response: "Welcome, seeker.", SessionID: "s-42"}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"Hello"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got model.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.Response != "Welcome, seeker." || got.SessionID != "s-42" {
		t.Errorf("unexpected response: %+v", got)
	}
}

func TestChat_Unavailable(t *testing.T) {
	svc := &mockChatService{
		chatFunc: func(_ context.Context, _ *model.ChatRequest) (*model.ChatResponse, error) {
			return nil, apperrors.Unavailable("Chat assistant")
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"Hello"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestChat_MalformedBody(t *testing.T) {
	router := newTestRouter(&mockChatService{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

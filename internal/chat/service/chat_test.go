package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"astrodesk/pkg/config"
	apperrors "astrodesk/pkg/errors"
	"astrodesk/pkg/logger"
	"astrodesk/pkg/model"
)

type mockCompleter struct {
	configured bool
	replyFunc  func(ctx context.Context, system, user string) (string, error)
	lastSystem string
	lastUser   string
}

func (m *mockCompleter) Configured() bool {
	return m.configured
}

func (m *mockCompleter) ChatCompletion(ctx context.Context, system, user string) (string, error) {
	m.lastSystem = system
	m.lastUser = user
	if m.replyFunc != nil {
		return m.replyFunc(ctx, system, user)
	}
	return "Welcome, seeker.", nil
}

type mockStats struct {
	increments []string
}

func (m *mockStats) Increment(ctx context.Context, metricType, date, page string) error {
	m.increments = append(m.increments, metricType)
	return nil
}

func newTestService(completer *mockCompleter) (ChatService, *mockStats) {
	cfg := &config.Config{
		Log: logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}),
	}
	stats := &mockStats{}
	return NewChatService(completer, stats, cfg), stats
}

func TestChat_Success(t *testing.T) {
	completer := &mockCompleter{configured: true}
	svc, stats := newTestService(completer)

	resp, err := svc.Chat(context.Background(), &model.ChatRequest{Message: "What services do you offer?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Response != "Welcome, seeker." {
		t.Errorf("unexpected reply: %q", resp.Response)
	}
	if resp.SessionID == "" {
		t.Error("expected a generated session id")
	}
	if !strings.Contains(completer.lastSystem, "Best Astrologer in Dandenong") {
		t.Error("system prompt must carry the business persona")
	}
	if completer.lastUser != "What services do you offer?" {
		t.Errorf("unexpected user message: %q", completer.lastUser)
	}
	if len(stats.increments) != 1 || stats.increments[0] != model.MetricChats {
		t.Errorf("expected one chats increment, got %v", stats.increments)
	}
}

func TestChat_PreservesSessionID(t *testing.T) {
	svc, _ := newTestService(&mockCompleter{configured: true})

	resp, err := svc.Chat(context.Background(), &model.ChatRequest{
		Message:   "Hello",
		SessionID: "session-42",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SessionID != "session-42" {
		t.Errorf("expected session id to be preserved, got %q", resp.SessionID)
	}
}

func TestChat_NotConfigured(t *testing.T) {
	completer := &mockCompleter{configured: false}
	svc, stats := newTestService(completer)

	_, err := svc.Chat(context.Background(), &model.ChatRequest{Message: "Hello"})
	if err == nil {
		t.Fatal("expected unavailable error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeUnavailable {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %s", appErr.Code)
	}
	if len(stats.increments) != 0 {
		t.Errorf("counter must not be incremented on failure, got %v", stats.increments)
	}
}

func TestChat_UpstreamFailure(t *testing.T) {
	completer := &mockCompleter{
		configured: true,
		replyFunc: func(_ context.Context, _, _ string) (string, error) {
			return "", errors.New("chat API returned status 500")
		},
	}
	svc, stats := newTestService(completer)

	_, err := svc.Chat(context.Background(), &model.ChatRequest{Message: "Hello"})
	if err == nil {
		t.Fatal("expected bad gateway error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeBadGateway {
		t.Errorf("expected BAD_GATEWAY, got %s", appErr.Code)
	}
	if strings.Contains(appErr.Message, "500") {
		t.Error("upstream detail must not leak into the user-facing message")
	}
	if len(stats.increments) != 0 {
		t.Errorf("counter must not be incremented on failure, got %v", stats.increments)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	svc, _ := newTestService(&mockCompleter{configured: true})

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := svc.Chat(context.Background(), &model.ChatRequest{Message: message})
		if err == nil {
			t.Errorf("expected error for message %q", message)
			continue
		}
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("expected INVALID_INPUT for %q, got %s", message, appErr.Code)
		}
	}
}

func TestChat_MessageTooLong(t *testing.T) {
	svc, _ := newTestService(&mockCompleter{configured: true})

	_, err := svc.Chat(context.Background(), &model.ChatRequest{
		Message: strings.Repeat("a", maxMessageLength+1),
	})
	if err == nil {
		t.Fatal("expected error for oversized message")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
}

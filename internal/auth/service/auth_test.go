package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	autherrors "astrodesk/internal/auth/errors"
	"astrodesk/pkg/config"
	apperrors "astrodesk/pkg/errors"
	"astrodesk/pkg/logger"
	"astrodesk/pkg/model"
	"astrodesk/pkg/token"
)

type mockAdminRepository struct {
	admins  map[string]*model.Admin
	created []*model.Admin
}

func newMockAdminRepository() *mockAdminRepository {
	return &mockAdminRepository{admins: map[string]*model.Admin{}}
}

func (m *mockAdminRepository) FindByUsername(_ context.Context, username string) (*model.Admin, error) {
	admin, ok := m.admins[username]
	if !ok {
		return nil, autherrors.ErrNotFound
	}
	return admin, nil
}

func (m *mockAdminRepository) Create(_ context.Context, admin *model.Admin) error {
	if _, ok := m.admins[admin.Username]; ok {
		return autherrors.ErrAlreadyExists
	}
	m.admins[admin.Username] = admin
	m.created = append(m.created, admin)
	return nil
}

func (m *mockAdminRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.admins)), nil
}

func newTestService(repo *mockAdminRepository) (AuthService, *token.Service) {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	tokens := token.NewService("test-secret", time.Hour)
	return NewAuthService(repo, tokens, cfg), tokens
}

func seedAdmin(t *testing.T, repo *mockAdminRepository, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	repo.admins[username] = &model.Admin{ID: "a-1", Username: username, Password: string(hash)}
}

func TestLogin_Success(t *testing.T) {
	repo := newMockAdminRepository()
	seedAdmin(t, repo, "admin", "secret123")
	svc, tokens := newTestService(repo)

	resp, err := svc.Login(context.Background(), "admin", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Username != "admin" {
		t.Errorf("expected username admin, got %q", resp.Username)
	}

	subject, err := tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if subject != "admin" {
		t.Errorf("expected token subject admin, got %q", subject)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockAdminRepository()
	seedAdmin(t, repo, "admin", "secret123")
	svc, _ := newTestService(repo)

	_, err := svc.Login(context.Background(), "admin", "wrong")
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED, got %s", appErr.Code)
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc, _ := newTestService(newMockAdminRepository())

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED, got %s", appErr.Code)
	}
	if appErr.Message != "Invalid credentials" {
		t.Errorf("unknown user must get the same message as wrong password, got %q", appErr.Message)
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc, _ := newTestService(newMockAdminRepository())

	_, err := svc.Login(context.Background(), "", "")
	if err == nil {
		t.Fatal("expected invalid input error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	repo := newMockAdminRepository()
	svc, _ := newTestService(repo)

	created, err := svc.EnsureAdmin(context.Background(), "admin", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("first call should create the account")
	}

	original := repo.admins["admin"].Password

	created, err = svc.EnsureAdmin(context.Background(), "admin", "different-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("second call must not create another account")
	}
	if repo.admins["admin"].Password != original {
		t.Error("second call must not change the stored password")
	}
	if len(repo.created) != 1 {
		t.Errorf("expected exactly one create, got %d", len(repo.created))
	}
}

func TestEnsureAdmin_StoresHashNotPlaintext(t *testing.T) {
	repo := newMockAdminRepository()
	svc, _ := newTestService(repo)

	if _, err := svc.EnsureAdmin(context.Background(), "admin", "secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.admins["admin"].Password
	if stored == "secret123" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte("secret123")); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}
}

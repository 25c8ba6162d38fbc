package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	autherrors "astrodesk/internal/auth/errors"
	"astrodesk/internal/auth/repository"
	"astrodesk/pkg/config"
	apperrors "astrodesk/pkg/errors"
	"astrodesk/pkg/model"
	"astrodesk/pkg/token"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.LoginResponse, error)
	EnsureAdmin(ctx context.Context, username, password string) (created bool, err error)
}

type authService struct {
	repo   repository.AdminRepository
	tokens *token.Service
	cfg    *config.Config
}

func NewAuthService(repo repository.AdminRepository, tokens *token.Service, cfg *config.Config) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		cfg:    cfg,
	}
}

// Login checks the credentials against the stored bcrypt hash and issues a
// bearer token. An unknown username and a wrong password produce the same
// error so the response does not reveal which one was wrong.
func (s *authService) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	if username == "" || password == "" {
		return nil, apperrors.InvalidInput("Username and password are required")
	}

	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		s.cfg.Log.Error("Failed to look up admin", "error", err)
		return nil, apperrors.UnavailableWithCause("Authentication", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	signed, err := s.tokens.Issue(admin.Username)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "error", err)
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("Admin logged in", "username", admin.Username)
	return &model.LoginResponse{
		Token:    signed,
		Username: admin.Username,
	}, nil
}

// EnsureAdmin creates the admin account if no account with that username
// exists yet. It is idempotent: repeated calls leave the existing account
// and its password untouched.
func (s *authService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, apperrors.InvalidInput("Username and password are required")
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, autherrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to look up admin", "error", err)
		return false, apperrors.UnavailableWithCause("Admin store", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, apperrors.Internal("Failed to hash password", err)
	}

	admin := &model.Admin{
		ID:       uuid.New().String(),
		Username: username,
		Password: string(hash),
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, autherrors.ErrAlreadyExists) {
			return false, nil
		}
		s.cfg.Log.Error("Failed to create admin", "error", err)
		return false, apperrors.UnavailableWithCause("Admin store", err)
	}

	s.cfg.Log.Info("Admin account created", "username", username)
	return true, nil
}

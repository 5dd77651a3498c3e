package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"inspection-report/internal/form"
	"inspection-report/internal/middleware"
	"inspection-report/internal/models"
	"inspection-report/internal/store"
)

type AuthService struct {
	store     store.Store
	jwtSecret string
	now       func() time.Time
}

func NewAuthService(st store.Store, jwtSecret string) *AuthService {
	return &AuthService{store: st, jwtSecret: jwtSecret, now: time.Now}
}

// Register creates a user with a unique name and a 4-digit PIN.
func (s *AuthService) Register(ctx context.Context, name, teamName, pin string) (*models.AuthResponse, error) {
	name = strings.TrimSpace(name)
	teamName = strings.TrimSpace(teamName)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !form.ValidPIN(pin) {
		return nil, ErrInvalidPIN
	}

	existing, err := s.store.FindUsersByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrDuplicateName
	}

	hash, err := HashPIN(pin)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:        uuid.New(),
		Name:      name,
		TeamName:  teamName,
		PINHash:   hash,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return s.respond(user)
}

// Login signs in the first user named name whose PIN matches.
func (s *AuthService) Login(ctx context.Context, name, pin string) (*models.AuthResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" || pin == "" {
		return nil, ErrInvalidCredentials
	}
	users, err := s.store.FindUsersByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	for i := range users {
		if VerifyPIN(users[i].PINHash, pin) {
			return s.respond(&users[i])
		}
	}
	return nil, ErrInvalidCredentials
}

func (s *AuthService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := middleware.GenerateToken(s.jwtSecret, user, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.AuthResponse{
		Status:   models.StatusOK,
		UserID:   user.ID.String(),
		Name:     user.Name,
		TeamName: user.TeamName,
		Token:    token,
	}, nil
}

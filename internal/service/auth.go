package service

import (
	"context"
	"errors"
	"strings"

	"artistcollab/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrHandleTaken        = errors.New("handle already taken")
	ErrBadInput           = errors.New("missing or malformed input")
)

// ProfileStore is the storage surface the auth service needs.
type ProfileStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) error
}

type AuthService struct {
	profiles ProfileStore
}

func NewAuthService(profiles ProfileStore) *AuthService {
	return &AuthService{profiles: profiles}
}

type SignUpInput struct {
	Email       string
	Password    string
	Handle      string
	DisplayName string
}

func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*domain.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	handle := strings.TrimPrefix(strings.TrimSpace(in.Handle), "@")
	name := strings.TrimSpace(in.DisplayName)

	if email == "" || len(in.Password) < 8 || handle == "" || name == "" {
		return nil, ErrBadInput
	}

	if existing, err := s.profiles.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := s.profiles.GetByHandle(ctx, handle); err == nil && existing != nil {
		return nil, ErrHandleTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &domain.Profile{
		Handle:       handle,
		DisplayName:  name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil || p == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

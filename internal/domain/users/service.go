package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hospital/hospital/internal/platform/auth"
)

const minPasswordLength = 8

// Service implements account management and authentication.
type Service struct {
	repo   Repository
	tokens auth.TokenStore
}

func NewService(repo Repository, tokens auth.TokenStore) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Authenticate verifies the credentials and issues an access token. The token
// is stable per user: logging in again returns the existing token.
func (s *Service) Authenticate(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResponse{
		Token:     tok.Key,
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}, nil
}

// Logout revokes the given token key. Unknown keys are not an error: the
// session is gone either way.
func (s *Service) Logout(ctx context.Context, key string) error {
	if err := s.tokens.Revoke(ctx, key); err != nil && err != auth.ErrInvalidToken {
		return err
	}
	return nil
}

// CreateUser registers a new account with a hashed password.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Username:     in.Username,
		Email:        strings.TrimSpace(in.Email),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetProfile returns the caller's own account.
func (s *Service) GetProfile(ctx context.Context, caller auth.Identity) (*User, error) {
	return s.repo.GetByID(ctx, caller.UserID)
}

// UpdateProfile applies the non-nil fields of in to the caller's account.
func (s *Service) UpdateProfile(ctx context.Context, caller auth.Identity, in UpdateProfileInput) (*User, error) {
	u, err := s.repo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListDoctors returns active doctor accounts for appointment booking.
func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]DoctorSummary, int, error) {
	docs, total, err := s.repo.ListByRole(ctx, auth.RoleDoctor, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]DoctorSummary, len(docs))
	for i, d := range docs {
		out[i] = d.DoctorSummary()
	}
	return out, total, nil
}

// GetUser returns any account by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInvalidToken is returned by Introspect for unknown, revoked, or
// deactivated-user tokens.
var ErrInvalidToken = errors.New("invalid token")

// Token is an opaque bearer credential issued at login. A user holds at most
// one token at a time; logging in again returns the existing one.
type Token struct {
	Key       string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenStore issues, introspects, and revokes opaque tokens.
type TokenStore interface {
	// Issue returns the user's token, creating one if none exists.
	Issue(ctx context.Context, userID uuid.UUID) (*Token, error)
	// Introspect resolves a token key to the caller identity.
	Introspect(ctx context.Context, key string) (*Identity, error)
	// Revoke deletes a token, ending the session.
	Revoke(ctx context.Context, key string) error
}

// GenerateKey returns a new 40-character hex token key.
func GenerateKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

type pgTokenStore struct{ pool *pgxpool.Pool }

// NewPGTokenStore returns a TokenStore backed by the auth_token table.
func NewPGTokenStore(pool *pgxpool.Pool) TokenStore { return &pgTokenStore{pool: pool} }

func (s *pgTokenStore) Issue(ctx context.Context, userID uuid.UUID) (*Token, error) {
	var t Token
	err := s.pool.QueryRow(ctx,
		`SELECT key, user_id, created_at FROM auth_token WHERE user_id = $1`, userID).
		Scan(&t.Key, &t.UserID, &t.CreatedAt)
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("look up token: %w", err)
	}

	key, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO auth_token (key, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING key, user_id, created_at`,
		key, userID).Scan(&t.Key, &t.UserID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &t, nil
}

func (s *pgTokenStore) Introspect(ctx context.Context, key string) (*Identity, error) {
	var (
		ident  Identity
		active bool
	)
	err := s.pool.QueryRow(ctx, `
		SELECT u.id, u.username, u.role, u.is_active
		FROM auth_token t
		JOIN users u ON u.id = t.user_id
		WHERE t.key = $1`, key).
		Scan(&ident.UserID, &ident.Username, &ident.Role, &active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("introspect token: %w", err)
	}
	if !active {
		return nil, ErrInvalidToken
	}
	return &ident, nil
}

func (s *pgTokenStore) Revoke(ctx context.Context, key string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM auth_token WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidToken
	}
	return nil
}

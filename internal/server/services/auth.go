package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/sessions"
	"github.com/google/uuid"
)

// AuthService issues, resolves and revokes session tokens.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    sessions.Repository
	ttl         time.Duration
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, s sessions.Repository, ttl time.Duration) *AuthService {
	return &AuthService{db: db, repomanager: m, sessions: s, ttl: ttl}
}

// Authenticate resolves a token to a user id. An empty or unknown token is
// common.ErrorUnauthorized; a credential store failure is returned wrapped.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrorUnauthorized
	}

	userID, err := s.sessions.GetUserID(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error looking up session: %w", err)
	}

	return userID, nil
}

// Connect verifies credentials and opens a session.
func (s *AuthService) Connect(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	if !checkPassword(user.PasswordHash, password, user.Salt) {
		return "", common.ErrorUnauthorized
	}

	token := uuid.NewString()
	if err := s.sessions.Create(ctx, token, user.ID, s.ttl); err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}

	return token, nil
}

// Disconnect revokes a session.
func (s *AuthService) Disconnect(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

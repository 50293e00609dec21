// Package services contains server-side business logic. This file implements
// UserService, which handles registration and profile lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// Register creates a user with an argon2id password hash. The existence
// check and the insert share one transaction; a concurrent insert that wins
// the race is reported through the unique constraint.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, common.ErrMissingEmail
	}
	if password == "" {
		return nil, common.ErrMissingPassword
	}

	salt := newSalt()
	user := &models.User{
		Email:        email,
		PasswordHash: hashPassword(password, salt),
		Salt:         salt,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return common.ErrAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching user: %w", err)
		}

		user, err = repo.Create(ctx, user)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return common.ErrAlreadyExists
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Me returns the profile of an authenticated user.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

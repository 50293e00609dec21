package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// StatusService reports store liveness and record counts.
type StatusService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	redis       Pinger
}

func NewStatusService(db *sql.DB, m repomanager.RepositoryManager, redis Pinger) *StatusService {
	return &StatusService{db: db, repomanager: m, redis: redis}
}

func (s *StatusService) Status(ctx context.Context) Status {
	return Status{
		Redis: s.redis.Ping(ctx) == nil,
		DB:    s.db.PingContext(ctx) == nil,
	}
}

func (s *StatusService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.repomanager.Users(s.db).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}
	files, err := s.repomanager.Files(s.db).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting files: %w", err)
	}
	return &Stats{Users: users, Files: files}, nil
}

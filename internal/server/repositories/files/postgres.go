package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

// PostgresRepository implements file storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, user_id, name, type, is_public, parent_id, local_path, created_at`

// Create inserts a file record. Root is stored as a NULL parent_id and a
// folder as a NULL local_path.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (user_id, name, type, is_public, parent_id, local_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		file.UserID, file.Name, string(file.Type), file.IsPublic,
		nullString(file.ParentID.FolderID()), nullString(file.LocalPath),
	).Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

// GetByIDAndUser returns the record matching both id and owner.
func (r *PostgresRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.File, error) {
	query := `SELECT ` + selectColumns + ` FROM files
		WHERE id = $1 AND user_id = $2
	`
	file, err := scanFile(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

// ListByParent pages through the (parent, owner) partition ordered by seq,
// which is assigned at insert time.
func (r *PostgresRepository) ListByParent(ctx context.Context, userID string, parent models.ParentRef, offset, limit int) ([]*models.File, error) {
	var rows *sql.Rows
	var err error

	if parent.IsRoot() {
		query := `SELECT ` + selectColumns + ` FROM files
			WHERE user_id = $1 AND parent_id IS NULL
			ORDER BY seq
			OFFSET $2 LIMIT $3
		`
		rows, err = r.db.QueryContext(ctx, query, userID, offset, limit)
	} else {
		query := `SELECT ` + selectColumns + ` FROM files
			WHERE user_id = $1 AND parent_id = $2
			ORDER BY seq
			OFFSET $3 LIMIT $4
		`
		rows, err = r.db.QueryContext(ctx, query, userID, parent.FolderID(), offset, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := make([]*models.File, 0, limit)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, file)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the number of file records of all users.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(s scanner) (*models.File, error) {
	var (
		file      models.File
		fileType  string
		parentID  sql.NullString
		localPath sql.NullString
	)
	err := s.Scan(&file.ID, &file.UserID, &file.Name, &fileType, &file.IsPublic, &parentID, &localPath, &file.CreatedAt)
	if err != nil {
		return nil, err
	}
	file.Type = models.FileType(fileType)
	if parentID.Valid {
		file.ParentID = models.FolderRef(parentID.String)
	}
	file.LocalPath = localPath.String
	return &file, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

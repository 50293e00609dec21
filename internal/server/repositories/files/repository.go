// Package files declares the metadata repository for file and folder records.
package files

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

// Repository stores file records. Implementations return
// common.ErrorNotFound when a lookup matches nothing.
type Repository interface {
	// Create inserts file and fills in its generated ID and CreatedAt.
	Create(ctx context.Context, file *models.File) (*models.File, error)

	// GetByIDAndUser returns the record with the given id owned by userID.
	GetByIDAndUser(ctx context.Context, id, userID string) (*models.File, error)

	// ListByParent returns up to limit records of userID directly under
	// parent, in insertion order, skipping the first offset.
	ListByParent(ctx context.Context, userID string, parent models.ParentRef, offset, limit int) ([]*models.File, error)

	// Count returns the total number of records.
	Count(ctx context.Context) (int64, error)
}

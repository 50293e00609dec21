package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobstore"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/queue"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const enqueueTimeout = 5 * time.Second

// Counter is satisfied by prometheus.Counter.
type Counter interface {
	Inc()
}

type nopCounter struct{}

func (nopCounter) Inc() {}

// UploadRequest is a validated-on-create upload. Data holds the base64
// payload for non-folder types.
type UploadRequest struct {
	Name     string
	Type     models.FileType
	ParentID models.ParentRef
	IsPublic bool
	Data     string
}

// FileService manages the per-user file hierarchy.
type FileService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	blobs          blobstore.Store
	jobs           queue.Producer
	logger         logging.Logger
	enqueueFailure Counter
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs blobstore.Store, jobs queue.Producer, logger logging.Logger, enqueueFailure Counter) *FileService {
	if enqueueFailure == nil {
		enqueueFailure = nopCounter{}
	}
	return &FileService{
		db:             db,
		repomanager:    m,
		blobs:          blobs,
		jobs:           jobs,
		logger:         logger.With("module", "files"),
		enqueueFailure: enqueueFailure,
	}
}

func validateUpload(req *UploadRequest) error {
	if req.Name == "" {
		return common.ErrMissingName
	}
	if !req.Type.Valid() {
		return common.ErrMissingType
	}
	if req.Data == "" && req.Type != models.TypeFolder {
		return common.ErrMissingData
	}
	return nil
}

// decodePayload accepts padded and unpadded standard base64.
func decodePayload(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	data, err = base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return nil, common.ErrInvalidData
	}
	return data, nil
}

func (s *FileService) checkParent(ctx context.Context, userID string, parent models.ParentRef) error {
	if parent.IsRoot() {
		return nil
	}
	if _, err := uuid.Parse(parent.FolderID()); err != nil {
		return common.ErrParentNotFound
	}

	p, err := s.repomanager.Files(s.db).GetByIDAndUser(ctx, parent.FolderID(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrParentNotFound
		}
		return fmt.Errorf("error loading parent: %w", err)
	}
	if p.Type != models.TypeFolder {
		return common.ErrParentNotFolder
	}
	return nil
}

// Create stores a folder record, or writes the blob and then the record for
// a file or image. Image uploads enqueue a thumbnail job after the insert;
// a failed enqueue does not fail the upload.
func (s *FileService) Create(ctx context.Context, userID string, req UploadRequest) (*models.File, error) {
	if err := validateUpload(&req); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, userID, req.ParentID); err != nil {
		return nil, err
	}

	file := &models.File{
		UserID:   userID,
		Name:     req.Name,
		Type:     req.Type,
		IsPublic: req.IsPublic,
		ParentID: req.ParentID,
	}
	repo := s.repomanager.Files(s.db)

	if req.Type == models.TypeFolder {
		folder, err := repo.Create(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("error creating folder: %w", err)
		}
		return folder, nil
	}

	data, err := decodePayload(req.Data)
	if err != nil {
		return nil, err
	}

	path, err := s.blobs.Save(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("error writing blob: %w", err)
	}
	file.LocalPath = path

	file, err = repo.Create(ctx, file)
	if err != nil {
		if rmErr := s.blobs.Remove(ctx, path); rmErr != nil {
			s.logger.Warn(ctx, "orphan blob left behind", "path", path, "error", rmErr)
		}
		return nil, fmt.Errorf("error creating file: %w", err)
	}

	if file.Type == models.TypeImage {
		job := models.ThumbnailJob{FileID: file.ID, UserID: userID}
		enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
		defer cancel()
		if err := s.jobs.Enqueue(enqueueCtx, job); err != nil {
			s.enqueueFailure.Inc()
			s.logger.Error(ctx, "thumbnail enqueue failed", "fileId", file.ID, "error", err)
		}
	}

	return file, nil
}

// Get returns a record owned by userID. Malformed ids are not found.
func (s *FileService) Get(ctx context.Context, userID, id string) (*models.File, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	file, err := s.repomanager.Files(s.db).GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading file: %w", err)
	}
	return file, nil
}

// List returns one page of the records directly under parent, in insertion
// order. A negative page is page 0.
func (s *FileService) List(ctx context.Context, userID string, parent models.ParentRef, page int) ([]*models.File, error) {
	if !parent.IsRoot() {
		if _, err := uuid.Parse(parent.FolderID()); err != nil {
			return []*models.File{}, nil
		}
	}
	if page < 0 {
		page = 0
	}
	if page > math.MaxInt/common.PageSize {
		return []*models.File{}, nil
	}

	result, err := s.repomanager.Files(s.db).ListByParent(ctx, userID, parent, page*common.PageSize, common.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	return result, nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/files"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
	"github.com/google/uuid"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User

	createErr error
	getErr    error
	countErr  error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Count(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.byEmail)), nil
}

// --- files ---

type fakeFilesRepo struct {
	mu      sync.Mutex
	records []*models.File

	createErr error
	getErr    error
	listErr   error

	lastOffset, lastLimit int
}

func (f *fakeFilesRepo) Create(ctx context.Context, file *models.File) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	file.ID = uuid.NewString()
	file.CreatedAt = time.Now()
	f.records = append(f.records, file)
	return file, nil
}

func (f *fakeFilesRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, r := range f.records {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeFilesRepo) ListByParent(ctx context.Context, userID string, parent models.ParentRef, offset, limit int) ([]*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lastOffset, f.lastLimit = offset, limit

	out := []*models.File{}
	skipped := 0
	for _, r := range f.records {
		if r.UserID != userID || r.ParentID != parent {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeFilesRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

// --- repo manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	f *fakeFilesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), f: &fakeFilesRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Files(db dbx.DBTX) files.Repository           { return m.f }

// --- sessions ---

type fakeSessions struct {
	mu     sync.Mutex
	tokens map[string]string
	ttl    time.Duration

	err error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: map[string]string{}}
}

func (f *fakeSessions) Create(ctx context.Context, token, userID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.tokens[token] = userID
	f.ttl = ttl
	return nil
}

func (f *fakeSessions) GetUserID(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	id, ok := f.tokens[token]
	if !ok {
		return "", common.ErrorNotFound
	}
	return id, nil
}

func (f *fakeSessions) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.tokens, token)
	return nil
}

func (f *fakeSessions) Ping(ctx context.Context) error { return f.err }

// --- blobs ---

type fakeBlobs struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
	removed []string
	n       int
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{data: map[string][]byte{}}
}

func (f *fakeBlobs) Save(ctx context.Context, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.n++
	p := "/blobs/" + uuid.NewString()
	f.data[p] = data
	return p, nil
}

func (f *fakeBlobs) Put(ctx context.Context, path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[path] = data
	return nil
}

func (f *fakeBlobs) Get(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.data[path]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d, nil
}

func (f *fakeBlobs) Remove(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, path)
	f.removed = append(f.removed, path)
	return nil
}

// --- queue ---

type fakeProducer struct {
	mu     sync.Mutex
	jobs   []models.ThumbnailJob
	err    error
	ctxErr error
}

func (f *fakeProducer) Enqueue(ctx context.Context, job models.ThumbnailJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctxErr = ctx.Err()
	if f.ctxErr != nil {
		return f.ctxErr
	}
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type fakeCounter struct{ n int }

func (c *fakeCounter) Inc() { c.n++ }

var errBoom = errors.New("boom")

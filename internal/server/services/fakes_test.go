package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/LeadConsult/alx-files-manager/internal/common"
	"github.com/LeadConsult/alx-files-manager/internal/dbx"
	"github.com/LeadConsult/alx-files-manager/internal/server/models"
	filesrepo "github.com/LeadConsult/alx-files-manager/internal/server/repositories/files"
	usersrepo "github.com/LeadConsult/alx-files-manager/internal/server/repositories/users"
)

// --- fake users repository ---

type fakeUsersRepo struct {
	mu   sync.Mutex
	byID map[string]*models.User

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = uuid.NewString()
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), nil
}

// --- fake files repository ---

type fakeFilesRepo struct {
	mu    sync.Mutex
	files []*models.File

	createErr error
}

func newFakeFilesRepo() *fakeFilesRepo {
	return &fakeFilesRepo{}
}

func (f *fakeFilesRepo) Create(ctx context.Context, file *models.File) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	file.ID = uuid.NewString()
	cp := *file
	f.files = append(f.files, &cp)
	return file, nil
}

func (f *fakeFilesRepo) Get(ctx context.Context, id string) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, file := range f.files {
		if file.ID == id {
			cp := *file
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeFilesRepo) GetOwned(ctx context.Context, userID, id string) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, file := range f.files {
		if file.ID == id && file.UserID == userID {
			cp := *file
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeFilesRepo) GetForServing(ctx context.Context, viewerID, id string) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, file := range f.files {
		if file.ID == id && (file.IsPublic || (viewerID != "" && file.UserID == viewerID)) {
			cp := *file
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeFilesRepo) ListChildren(ctx context.Context, userID, parentID string, offset, limit int) ([]*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []*models.File{}
	for _, file := range f.files {
		if file.UserID == userID && file.ParentID == parentID {
			cp := *file
			matched = append(matched, &cp)
		}
	}
	if offset >= len(matched) {
		return []*models.File{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeFilesRepo) SetPublic(ctx context.Context, userID, id string, isPublic bool) (*models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, file := range f.files {
		if file.ID == id && file.UserID == userID {
			file.IsPublic = isPublic
			cp := *file
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeFilesRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.files)), nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	users usersrepo.Repository
	files filesrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return m.users }
func (m *fakeRepoManager) Files(db dbx.DBTX) filesrepo.Repository             { return m.files }

// --- fake session store ---

type fakeSessionStore struct {
	mu     sync.Mutex
	tokens map[string]string
	nextID int

	issueErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{tokens: map[string]string{}}
}

func (s *fakeSessionStore) Issue(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.issueErr != nil {
		return "", s.issueErr
	}
	s.nextID++
	token := fmt.Sprintf("token-%d", s.nextID)
	s.tokens[token] = userID
	return token, nil
}

func (s *fakeSessionStore) Resolve(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return "", common.ErrorNotFound
	}
	return userID, nil
}

func (s *fakeSessionStore) Revoke(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[token]
	delete(s.tokens, token)
	return ok, nil
}

// --- fake queue ---

type fakeQueue struct {
	mu   sync.Mutex
	jobs []models.Job

	enqueueErr error
}

func (q *fakeQueue) Enqueue(ctx context.Context, job models.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) Dequeue(ctx context.Context) (models.Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return models.Job{}, context.Canceled
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, nil
}

func (q *fakeQueue) queued() []models.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.Job, len(q.jobs))
	copy(out, q.jobs)
	return out
}

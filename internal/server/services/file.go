package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/LeadConsult/alx-files-manager/internal/common"
	"github.com/LeadConsult/alx-files-manager/internal/logging"
	"github.com/LeadConsult/alx-files-manager/internal/server/blob"
	"github.com/LeadConsult/alx-files-manager/internal/server/models"
	"github.com/LeadConsult/alx-files-manager/internal/server/queue"
	"github.com/LeadConsult/alx-files-manager/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PageSize is the fixed number of entries returned per listing page.
const PageSize = 20

// UploadInput carries a decoded upload request. Data holds the raw content
// bytes; it must be empty for folders.
type UploadInput struct {
	Name     string
	Kind     string
	ParentID string
	IsPublic bool
	Data     []byte
}

// FileService owns the file/folder tree: uploads, listings, visibility and
// content serving. Bytes always reach blob storage before the metadata row
// is written, so a row never points at nothing.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Storage
	queue       queue.Queue
	logger      logging.Logger
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, b blob.Storage, q queue.Queue, l logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		blobs:       b,
		queue:       q,
		logger:      l.With("module", "file_service"),
	}
}

// GetRandomStorageKey generates a fresh, date-partitioned object key.
// Keys are never reused and never derived from user-supplied names.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload validates the request, persists content bytes (non-folders) and
// then the metadata row, and enqueues a thumbnail job for images.
func (s *FileService) Upload(ctx context.Context, ownerID string, in UploadInput) (*models.File, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: missing name", common.ErrorValidation)
	}
	if !models.ValidKind(in.Kind) {
		return nil, fmt.Errorf("%w: missing or invalid type", common.ErrorValidation)
	}
	if in.Kind != models.KindFolder && len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: missing data", common.ErrorValidation)
	}

	repo := s.repomanager.Files(s.db)

	parentID := in.ParentID
	if parentID == "" {
		parentID = models.RootParentID
	}
	if parentID != models.RootParentID {
		if uuid.Validate(parentID) != nil {
			return nil, fmt.Errorf("%w: parent not found", common.ErrorValidation)
		}
		parent, err := repo.GetOwned(ctx, ownerID, parentID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, fmt.Errorf("%w: parent not found", common.ErrorValidation)
			}
			return nil, fmt.Errorf("%w: loading parent: %v", common.ErrorTransientStorage, err)
		}
		if !parent.IsFolder() {
			return nil, fmt.Errorf("%w: parent is not a folder", common.ErrorValidation)
		}
	}

	file := &models.File{
		UserID:   ownerID,
		Name:     in.Name,
		Kind:     in.Kind,
		ParentID: parentID,
		IsPublic: in.IsPublic,
	}

	if in.Kind != models.KindFolder {
		key := GetRandomStorageKey()
		// Bytes first. A crash here leaves at worst an orphan blob,
		// never metadata referencing missing bytes.
		if err := s.blobs.Write(ctx, key, in.Data); err != nil {
			return nil, err
		}
		file.StorageKey = key
	}

	created, err := repo.Create(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%w: creating file: %v", common.ErrorTransientStorage, err)
	}

	if created.Kind == models.KindImage {
		// Fire-and-forget: the upload response never waits for thumbnails.
		if err := s.queue.Enqueue(ctx, models.Job{UserID: ownerID, FileID: created.ID}); err != nil {
			s.logger.Warn(ctx, "failed to enqueue thumbnail job", "file_id", created.ID, "error", err.Error())
		}
	}

	return created, nil
}

// GetOwned returns the file only if it belongs to userID. Foreign files
// behave as nonexistent.
func (s *FileService) GetOwned(ctx context.Context, userID, fileID string) (*models.File, error) {
	if uuid.Validate(fileID) != nil {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Files(s.db).GetOwned(ctx, userID, fileID)
}

// List returns one page of the user's entries under parentID. Negative
// pages are treated as page 0; pages past the end come back empty.
func (s *FileService) List(ctx context.Context, userID, parentID string, page int) ([]*models.File, error) {
	if page < 0 {
		page = 0
	}
	if parentID == "" {
		parentID = models.RootParentID
	}
	if parentID != models.RootParentID && uuid.Validate(parentID) != nil {
		// An unparseable parent matches nothing; same outcome as an
		// empty folder, not an error.
		return []*models.File{}, nil
	}
	return s.repomanager.Files(s.db).ListChildren(ctx, userID, parentID, page*PageSize, PageSize)
}

// SetPublication flips visibility if the caller owns the file and returns
// the updated record.
func (s *FileService) SetPublication(ctx context.Context, userID, fileID string, isPublic bool) (*models.File, error) {
	if uuid.Validate(fileID) != nil {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Files(s.db).SetPublic(ctx, userID, fileID, isPublic)
}

// GetContent resolves the file for the viewer (empty viewerID = anonymous)
// and returns its bytes plus the metadata record. A size of 500, 250 or 100
// selects the corresponding thumbnail variant; any other value serves the
// original. Bytes not yet on storage (including pending thumbnails) are
// ErrorNotFound.
func (s *FileService) GetContent(ctx context.Context, viewerID, fileID string, size int) ([]byte, *models.File, error) {
	if uuid.Validate(fileID) != nil {
		return nil, nil, common.ErrorNotFound
	}

	file, err := s.repomanager.Files(s.db).GetForServing(ctx, viewerID, fileID)
	if err != nil {
		return nil, nil, err
	}

	if file.IsFolder() {
		return nil, nil, fmt.Errorf("%w: a folder doesn't have content", common.ErrorValidation)
	}

	var data []byte
	if models.ValidThumbnailSize(size) {
		data, err = s.blobs.ReadVariant(ctx, file.StorageKey, size)
	} else {
		data, err = s.blobs.Read(ctx, file.StorageKey)
	}
	if err != nil {
		return nil, nil, err
	}
	return data, file, nil
}

package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LeadConsult/alx-files-manager/internal/common"
	"github.com/LeadConsult/alx-files-manager/internal/dbx"
	"github.com/LeadConsult/alx-files-manager/internal/server/models"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const fileColumns = `id, user_id, name, type, parent_id, is_public, storage_key`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanFile maps a row onto a models.File, translating NULL parent_id to the
// root sentinel and NULL storage_key (folders) to the empty string.
func scanFile(row rowScanner) (*models.File, error) {
	var (
		f          models.File
		parentID   sql.NullString
		storageKey sql.NullString
	)
	if err := row.Scan(&f.ID, &f.UserID, &f.Name, &f.Kind, &parentID, &f.IsPublic, &storageKey); err != nil {
		return nil, err
	}
	f.ParentID = models.RootParentID
	if parentID.Valid {
		f.ParentID = parentID.String
	}
	f.StorageKey = storageKey.String
	return &f, nil
}

// nullableParent converts the API-level root sentinel to a NULL column value.
func nullableParent(parentID string) any {
	if parentID == "" || parentID == models.RootParentID {
		return nil
	}
	return parentID
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {

	query :=
		`INSERT INTO files (user_id, name, type, parent_id, is_public, storage_key)
         VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.UserID, file.Name, file.Kind, nullableParent(file.ParentID),
		file.IsPublic, file.StorageKey).Scan(&file.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`

	f, err := scanFile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) GetOwned(ctx context.Context, userID, id string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1 AND user_id = $2`

	f, err := scanFile(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Existing-but-foreign and nonexistent are indistinguishable.
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) GetForServing(ctx context.Context, viewerID, id string) (*models.File, error) {
	var (
		f   *models.File
		err error
	)
	if viewerID == "" {
		query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1 AND is_public = true`
		f, err = scanFile(r.db.QueryRowContext(ctx, query, id))
	} else {
		query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1 AND (is_public = true OR user_id = $2)`
		f, err = scanFile(r.db.QueryRowContext(ctx, query, id, viewerID))
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) ListChildren(ctx context.Context, userID, parentID string, offset, limit int) ([]*models.File, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID == "" || parentID == models.RootParentID {
		query := `SELECT ` + fileColumns + ` FROM files
		 WHERE user_id = $1 AND parent_id IS NULL
		 ORDER BY created_at, id
		 LIMIT $2 OFFSET $3`
		rows, err = r.db.QueryContext(ctx, query, userID, limit, offset)
	} else {
		query := `SELECT ` + fileColumns + ` FROM files
		 WHERE user_id = $1 AND parent_id = $2
		 ORDER BY created_at, id
		 LIMIT $3 OFFSET $4`
		rows, err = r.db.QueryContext(ctx, query, userID, parentID, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}

	result := []*models.File{}

	defer rows.Close()
	for rows.Next() {
		item, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) SetPublic(ctx context.Context, userID, id string, isPublic bool) (*models.File, error) {
	query := `UPDATE files SET is_public = $1
		 WHERE id = $2 AND user_id = $3
		 RETURNING ` + fileColumns

	f, err := scanFile(r.db.QueryRowContext(ctx, query, isPublic, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

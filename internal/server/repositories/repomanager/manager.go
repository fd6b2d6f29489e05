package repomanager

import (
	"context"
	"database/sql"

	"github.com/LeadConsult/alx-files-manager/internal/dbx"
	"github.com/LeadConsult/alx-files-manager/internal/server/repositories/files"
	"github.com/LeadConsult/alx-files-manager/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
}

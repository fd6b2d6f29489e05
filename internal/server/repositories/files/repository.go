package files

import (
	"context"

	"github.com/LeadConsult/alx-files-manager/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	// Get loads a file regardless of ownership. Worker-side use only;
	// request paths must go through GetOwned or GetForServing.
	Get(ctx context.Context, id string) (*models.File, error)
	GetOwned(ctx context.Context, userID, id string) (*models.File, error)
	// GetForServing returns the file if it is public or owned by viewerID.
	// An empty viewerID means an anonymous viewer.
	GetForServing(ctx context.Context, viewerID, id string) (*models.File, error)
	ListChildren(ctx context.Context, userID, parentID string, offset, limit int) ([]*models.File, error)
	SetPublic(ctx context.Context, userID, id string, isPublic bool) (*models.File, error)
	Count(ctx context.Context) (int64, error)
}

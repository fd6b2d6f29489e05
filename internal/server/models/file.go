package models

import "time"

// File kinds. Folders carry no content; images additionally get
// thumbnail variants generated for them.
const (
	KindFolder = "folder"
	KindFile   = "file"
	KindImage  = "image"
)

// RootParentID is the sentinel parent id exposed at the API boundary for
// entities living at the root of a user's tree. It is stored as NULL.
const RootParentID = "0"

// ThumbnailSizes are the fixed widths the worker produces for images.
var ThumbnailSizes = []int{500, 250, 100}

// File describes a file or folder owned by a user.
type File struct {
	// ID is the server-assigned identifier.
	ID string
	// UserID is the owner. Ownership never changes.
	UserID string
	// Name is the user-supplied display name. It is never used to derive
	// storage paths.
	Name string
	// Kind is one of KindFolder, KindFile, KindImage.
	Kind string
	// ParentID is the id of the containing folder, or RootParentID.
	ParentID string
	// IsPublic marks the file readable by anonymous viewers.
	IsPublic bool
	// StorageKey is the object-storage key of the content. Empty for folders.
	StorageKey string

	CreatedAt time.Time
}

// IsFolder reports whether the entity is a folder.
func (f *File) IsFolder() bool { return f.Kind == KindFolder }

// ValidKind reports whether k is one of the supported kinds.
func ValidKind(k string) bool {
	return k == KindFolder || k == KindFile || k == KindImage
}

// ValidThumbnailSize reports whether size is one of the generated widths.
func ValidThumbnailSize(size int) bool {
	for _, s := range ThumbnailSizes {
		if s == size {
			return true
		}
	}
	return false
}

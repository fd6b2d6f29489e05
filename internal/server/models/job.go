package models

// Job is the minimal unit of asynchronous thumbnail work. The worker
// re-derives everything else from the file store and blob storage.
type Job struct {
	UserID string `json:"user_id"`
	FileID string `json:"file_id"`
}

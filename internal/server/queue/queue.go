// Package queue moves thumbnail jobs between the upload path and the
// worker. Delivery is at-least-once; consumers must be idempotent.
package queue

import (
	"context"

	"github.com/LeadConsult/alx-files-manager/internal/server/models"
)

// Queue is a one-way job channel. Enqueue never waits for a consumer.
type Queue interface {
	// Enqueue appends a job. The caller gets no acknowledgement beyond
	// the push having been accepted.
	Enqueue(ctx context.Context, job models.Job) error

	// Dequeue blocks until a job is available or ctx is done.
	Dequeue(ctx context.Context) (models.Job, error)
}

// Package thumbs consumes thumbnail jobs and produces resized image
// variants. Generation is idempotent: reprocessing a job overwrites the
// same variant keys with the same bytes.
package thumbs

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/LeadConsult/alx-files-manager/internal/common"
	"github.com/LeadConsult/alx-files-manager/internal/logging"
	"github.com/LeadConsult/alx-files-manager/internal/server/blob"
	"github.com/LeadConsult/alx-files-manager/internal/server/models"
	"github.com/LeadConsult/alx-files-manager/internal/server/queue"
	"github.com/LeadConsult/alx-files-manager/internal/server/repositories/files"
	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// Worker is a single queue consumer. Run several of them for a pool; each
// size of each job writes a distinct key, so consumers never conflict.
type Worker struct {
	files  files.Repository
	blobs  blob.Storage
	queue  queue.Queue
	logger logging.Logger
}

func NewWorker(f files.Repository, b blob.Storage, q queue.Queue, l logging.Logger) *Worker {
	return &Worker{
		files:  f,
		blobs:  b,
		queue:  q,
		logger: l.With("module", "thumbnail_worker"),
	}
}

// Run consumes jobs until ctx is done. Jobs whose original bytes are
// missing go back on the queue; jobs for deleted files are dropped.
func (w *Worker) Run(ctx context.Context) {
	for {
		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error(ctx, "dequeue failed", "error", err.Error())
			// Avoid a hot loop while the queue backend is down.
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		if err := w.Process(ctx, job); err != nil {
			w.logger.Error(ctx, "thumbnail job failed, requeueing",
				"file_id", job.FileID, "error", err.Error())
			if err := w.queue.Enqueue(ctx, job); err != nil {
				w.logger.Error(ctx, "requeue failed", "file_id", job.FileID, "error", err.Error())
			}
		}
	}
}

// Process generates the three fixed-width variants for one job. A nil
// return means the job is finished and must not be retried; that includes
// jobs discarded because the file is gone or its bytes are not an image.
func (w *Worker) Process(ctx context.Context, job models.Job) error {
	file, err := w.files.Get(ctx, job.FileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// The file was deleted after the upload enqueued the job.
			w.logger.Debug(ctx, "discarding job for missing file", "file_id", job.FileID)
			return nil
		}
		return err
	}

	data, err := w.blobs.Read(ctx, file.StorageKey)
	if err != nil {
		return err
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		// Undecodable content never becomes decodable; retrying would
		// poison the queue.
		w.logger.Warn(ctx, "discarding undecodable image", "file_id", job.FileID, "error", err.Error())
		return nil
	}

	format, err := imaging.FormatFromFilename(file.Name)
	if err != nil {
		format = imaging.PNG
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, size := range models.ThumbnailSizes {
		size := size
		g.Go(func() error {
			resized := imaging.Resize(src, size, 0, imaging.Lanczos)

			var buf bytes.Buffer
			if err := imaging.Encode(&buf, resized, format); err != nil {
				return err
			}
			return w.blobs.WriteVariant(gctx, file.StorageKey, size, buf.Bytes())
		})
	}
	return g.Wait()
}

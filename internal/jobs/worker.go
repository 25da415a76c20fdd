package jobs

import (
	"context"

	"doctranslate/internal/markup"
	"doctranslate/pkg/logger"
)

// Run executes job through pipeline and persists the outcome. It is meant
// to be called from its own goroutine per job (internal/api enqueues one
// per POST /api/v1/jobs): the job store is the only thing shared across
// goroutines here, and gorm's *gorm.DB is safe for concurrent use.
func Run(ctx context.Context, store *Store, pipeline *markup.Pipeline, job *Job) {
	if err := store.MarkRunning(job.ID); err != nil {
		logger.Error("marking job running", "job", job.ID, "error", err)
		return
	}

	out, err := pipeline.Translate(ctx, job.SourceText)
	if err != nil {
		logger.Error("job translation failed", "job", job.ID, "error", err)
		if mErr := store.MarkFailed(job.ID, err); mErr != nil {
			logger.Error("marking job failed", "job", job.ID, "error", mErr)
		}
		return
	}

	if err := store.MarkDone(job.ID, out); err != nil {
		logger.Error("marking job done", "job", job.ID, "error", err)
	}
}

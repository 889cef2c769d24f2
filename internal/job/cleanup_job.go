package job

import (
	"context"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"todo-tracker-api/internal/metrics"
	"todo-tracker-api/internal/repository"
	"todo-tracker-api/internal/storage"
)

// CleanupJob removes files from the storage root that no attachment
// record references anymore. Files younger than the grace period are
// left alone so an upload in flight is never swept between writing the
// file and committing its database row.
type CleanupJob struct {
	attachmentRepo repository.AttachmentRepository
	store          *storage.LocalStore
	gracePeriod    time.Duration
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	attachmentRepo repository.AttachmentRepository,
	store *storage.LocalStore,
	gracePeriod time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		attachmentRepo: attachmentRepo,
		store:          store,
		gracePeriod:    gracePeriod,
		metrics:        m,
		logger:         logger,
	}
}

// Run executes one sweep. It satisfies cron.Job.
func (j *CleanupJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting orphan file cleanup")

	paths, err := j.attachmentRepo.FindAllPaths(ctx)
	if err != nil {
		j.logger.Error("Failed to load referenced attachment paths",
			zap.Error(err),
		)
		return
	}

	referenced := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		referenced[p] = struct{}{}
	}

	cutoff := time.Now().Add(-j.gracePeriod)
	scanned := 0
	swept := 0
	failed := 0

	err = j.store.Walk(func(key string, info fs.FileInfo) error {
		scanned++
		if _, ok := referenced[key]; ok {
			return nil
		}
		if info.ModTime().After(cutoff) {
			j.logger.Debug("Skipping recent unreferenced file",
				zap.String("key", key),
				zap.Time("mod_time", info.ModTime()),
			)
			return nil
		}

		if err := j.store.Remove(key); err != nil {
			j.logger.Error("Failed to remove orphan file",
				zap.String("key", key),
				zap.Error(err),
			)
			failed++
			return nil
		}

		swept++
		j.logger.Debug("Removed orphan file",
			zap.String("key", key),
		)
		return nil
	})
	if err != nil {
		j.logger.Error("Storage walk failed",
			zap.Error(err),
		)
		return
	}

	if j.metrics != nil && swept > 0 {
		j.metrics.AddOrphanFilesSwept(swept)
	}

	j.logger.Info("Orphan file cleanup completed",
		zap.Int("scanned", scanned),
		zap.Int("referenced", len(referenced)),
		zap.Int("swept", swept),
		zap.Int("failed", failed),
	)
}

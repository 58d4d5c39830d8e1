package worker_jobs

import (
	"context"
	"time"

	"github.com/riverqueue/river"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/usecases"
)

const (
	SESSION_CLEANUP_INTERVAL = 1 * time.Hour
	SESSION_CLEANUP_TIMEOUT  = 5 * time.Minute
	SESSION_CLEANUP_QUEUE    = "import_session_cleanup"
)

func NewSessionCleanupPeriodicJob() *river.PeriodicJob {
	return river.NewPeriodicJob(
		river.PeriodicInterval(SESSION_CLEANUP_INTERVAL),
		func() (river.JobArgs, *river.InsertOpts) {
			return models.SessionCleanupArgs{},
				&river.InsertOpts{
					Queue:    SESSION_CLEANUP_QUEUE,
					Priority: 4,
					UniqueOpts: river.UniqueOpts{
						ByQueue:  true,
						ByPeriod: SESSION_CLEANUP_INTERVAL,
					},
				}
		},
		&river.PeriodicJobOpts{RunOnStart: true},
	)
}

// SessionCleanupWorker purges import sessions past their expiry.
type SessionCleanupWorker struct {
	river.WorkerDefaults[models.SessionCleanupArgs]

	cleanupUsecase usecases.ImportSessionCleanupUsecase
}

func NewSessionCleanupWorker(cleanupUsecase usecases.ImportSessionCleanupUsecase) *SessionCleanupWorker {
	return &SessionCleanupWorker{
		cleanupUsecase: cleanupUsecase,
	}
}

func (w *SessionCleanupWorker) Timeout(job *river.Job[models.SessionCleanupArgs]) time.Duration {
	return SESSION_CLEANUP_TIMEOUT
}

func (w *SessionCleanupWorker) Work(ctx context.Context, job *river.Job[models.SessionCleanupArgs]) error {
	return w.cleanupUsecase.CleanupExpiredSessions(ctx)
}

package usecases

import (
	"context"
	"time"

	"github.com/stafflane/backoffice-backend/repositories"
	"github.com/stafflane/backoffice-backend/usecases/executor_factory"
	"github.com/stafflane/backoffice-backend/utils"
)

type sessionCleanupRepository interface {
	DeleteExpiredImportSessions(ctx context.Context, exec repositories.Executor, now time.Time) (int64, error)
}

// ImportSessionCleanupUsecase garbage-collects import sessions past their
// expiry, whatever state they are in. Retained raw rows can be large, so the
// periodic job keeps the table from growing without bound.
type ImportSessionCleanupUsecase struct {
	executorFactory   executor_factory.ExecutorFactory
	sessionRepository sessionCleanupRepository
}

func (u ImportSessionCleanupUsecase) CleanupExpiredSessions(ctx context.Context) error {
	deleted, err := u.sessionRepository.DeleteExpiredImportSessions(
		ctx, u.executorFactory.NewExecutor(), time.Now())
	if err != nil {
		return err
	}
	if deleted > 0 {
		utils.LoggerFromContext(ctx).InfoContext(ctx, "deleted expired import sessions",
			"count", deleted)
	}
	return nil
}

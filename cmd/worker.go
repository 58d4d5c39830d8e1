package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"

	"github.com/stafflane/backoffice-backend/infra"
	"github.com/stafflane/backoffice-backend/jobs"
	"github.com/stafflane/backoffice-backend/repositories"
	"github.com/stafflane/backoffice-backend/usecases"
	"github.com/stafflane/backoffice-backend/usecases/worker_jobs"
	"github.com/stafflane/backoffice-backend/utils"
)

func RunWorker() error {
	pgConfig := infra.PgConfig{
		ConnectionString:   utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:           "backoffice",
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
	workerConfig := struct {
		env           string
		loggingFormat string
		sentryDsn     string
		probePort     string
	}{
		env:           utils.GetEnv("ENV", "development"),
		loggingFormat: utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:     utils.GetEnv("SENTRY_DSN", ""),
		probePort:     utils.GetEnv("WORKER_PROBE_PORT", ""),
	}

	logger := utils.NewLogger(workerConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(workerConfig.sentryDsn, workerConfig.env)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	repositories := repositories.NewRepositories(pool)
	uc := usecases.NewUsecases(repositories)

	workers := river.NewWorkers()
	river.AddWorker(workers, worker_jobs.NewSessionCleanupWorker(uc.NewImportSessionCleanupUsecase()))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		FetchPollInterval:    100 * time.Millisecond,
		RescueStuckJobsAfter: 10 * time.Minute,
		Queues: map[string]river.QueueConfig{
			worker_jobs.SESSION_CLEANUP_QUEUE: {MaxWorkers: 1},
		},
		PeriodicJobs: []*river.PeriodicJob{
			worker_jobs.NewSessionCleanupPeriodicJob(),
		},
		WorkerMiddleware: []rivertype.WorkerMiddleware{
			jobs.NewSentryMiddleware(),
			jobs.NewLoggerMiddleware(logger),
			jobs.NewRecoveredMiddleware(),
		},
		Workers: workers,
	})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	if err := riverClient.Start(ctx); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	// basic http server so container orchestrators can probe the worker
	if workerConfig.probePort != "" {
		go func() {
			http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("OK"))
			})
			if err := http.ListenAndServe(":"+workerConfig.probePort, nil); err != nil {
				utils.LogAndReportSentryError(ctx, err)
			}
		}()
	}

	sigintOrTerm := make(chan os.Signal, 1)
	signal.Notify(sigintOrTerm, syscall.SIGINT, syscall.SIGTERM)

	go cleanStop(ctx, sigintOrTerm, riverClient)

	<-riverClient.Stopped()
	logger.InfoContext(ctx, "River client stopped")

	return nil
}

// cleanStop waits for SIGINT/SIGTERM and tries to stop gracefully, giving
// running jobs a chance to finish. A second signal cancels the context of
// all active jobs.
func cleanStop(ctx context.Context, sigintOrTerm chan os.Signal, riverClient *river.Client[pgx.Tx]) {
	logger := utils.LoggerFromContext(ctx)
	<-sigintOrTerm
	logger.InfoContext(ctx, "Received SIGINT/SIGTERM; initiating soft stop (try to wait for jobs to finish)")

	softStopCtx, softStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer softStopCtxCancel()

	go func() {
		select {
		case <-sigintOrTerm:
			logger.InfoContext(ctx, "Received SIGINT/SIGTERM again; initiating hard stop (cancel everything)")
			softStopCtxCancel()
		case <-softStopCtx.Done():
		}
	}()

	if err := riverClient.Stop(softStopCtx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			utils.LogAndReportSentryError(ctx, err)
		}

		hardStopCtx, hardStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
		defer hardStopCtxCancel()

		if err := riverClient.StopAndCancel(hardStopCtx); err != nil {
			utils.LogAndReportSentryError(ctx, err)
		}
	}
}

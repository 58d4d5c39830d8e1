package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/stafflane/backoffice-backend/api"
	"github.com/stafflane/backoffice-backend/infra"
	"github.com/stafflane/backoffice-backend/repositories"
	"github.com/stafflane/backoffice-backend/usecases"
	"github.com/stafflane/backoffice-backend/utils"
)

const apiVersion = "v1"

func RunServer() error {
	// This is where we read the environment variables and set up the configuration for the application.
	apiConfig := api.Configuration{
		Env:            utils.GetEnv("ENV", "development"),
		AppName:        "backoffice-backend",
		Port:           utils.GetRequiredEnv[string]("PORT"),
		ApiVersion:     apiVersion,
		AppUrl:         utils.GetEnv("BACKOFFICE_APP_URL", ""),
		MaxFileSize:    int64(utils.GetEnv("MAX_IMPORT_FILE_SIZE", 30*1024*1024)),
		DefaultTimeout: time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 5)) * time.Second,
		ExecuteTimeout: time.Duration(utils.GetEnv("IMPORT_EXECUTE_TIMEOUT_SECOND", 55)) * time.Second,
	}
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
	serverConfig := struct {
		loggingFormat   string
		sentryDsn       string
		sessionTTLHours int
	}{
		loggingFormat:   utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:       utils.GetEnv("SENTRY_DSN", ""),
		sessionTTLHours: utils.GetEnv("IMPORT_SESSION_TTL_HOURS", 24),
	}

	logger := utils.NewLogger(serverConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	repositories := repositories.NewRepositories(pool)

	uc := usecases.NewUsecases(repositories,
		usecases.WithApiVersion(apiVersion),
		usecases.WithImportSessionTTL(time.Duration(serverConfig.sessionTTLHours)*time.Hour),
	)

	router := api.InitRouterMiddlewares(ctx, apiConfig)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while shutting down the server"))
		return err
	}

	return nil
}

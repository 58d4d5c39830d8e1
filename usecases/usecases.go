package usecases

import (
	"time"

	"github.com/stafflane/backoffice-backend/repositories"
	"github.com/stafflane/backoffice-backend/usecases/executor_factory"
	"github.com/stafflane/backoffice-backend/usecases/import_targets"
)

type Usecases struct {
	Repositories repositories.Repositories
	apiVersion   string
	sessionTTL   time.Duration
}

type Option func(*options)

func WithApiVersion(apiVersion string) Option {
	return func(o *options) {
		o.apiVersion = apiVersion
	}
}

func WithImportSessionTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.sessionTTL = ttl
	}
}

type options struct {
	apiVersion string
	sessionTTL time.Duration
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{
		sessionTTL: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(o)
	}
	return Usecases{
		Repositories: repositories,
		apiVersion:   o.apiVersion,
		sessionTTL:   o.sessionTTL,
	}
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewVersionUsecase() VersionUsecase {
	return VersionUsecase{
		ApiVersion: usecases.apiVersion,
	}
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		executorFactory:    usecases.NewExecutorFactory(),
		livenessRepository: usecases.Repositories.BackofficeDbRepository,
	}
}

func (usecases *Usecases) NewImportUsecase() ImportUsecase {
	return ImportUsecase{
		executorFactory:    usecases.NewExecutorFactory(),
		transactionFactory: usecases.NewTransactionFactory(),
		sessionRepository:  usecases.Repositories.BackofficeDbRepository,
		targets:            import_targets.NewRegistry(usecases.Repositories.BackofficeDbRepository),
		sessionTTL:         usecases.sessionTTL,
	}
}

func (usecases *Usecases) NewImportSessionCleanupUsecase() ImportSessionCleanupUsecase {
	return ImportSessionCleanupUsecase{
		executorFactory:   usecases.NewExecutorFactory(),
		sessionRepository: usecases.Repositories.BackofficeDbRepository,
	}
}

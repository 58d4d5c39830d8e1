package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BackofficeDbRepository hosts every query against the backoffice database.
type BackofficeDbRepository struct{}

type Repositories struct {
	ExecutorGetter         ExecutorGetter
	BackofficeDbRepository *BackofficeDbRepository
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		ExecutorGetter:         NewExecutorGetter(pool),
		BackofficeDbRepository: &BackofficeDbRepository{},
	}
}

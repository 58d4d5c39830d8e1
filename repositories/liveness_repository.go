package repositories

import (
	"context"
)

func (repo *BackofficeDbRepository) Liveness(ctx context.Context, exec Executor) error {
	var one int
	return exec.QueryRow(ctx, "SELECT 1").Scan(&one)
}

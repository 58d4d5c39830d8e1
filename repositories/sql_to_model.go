package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/pure_utils"
)

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func ExecBuilder(ctx context.Context, exec Executor, builder squirrel.Sqlizer) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "can't build sql query")
	}

	_, err = exec.Exec(ctx, query, args...)
	return err
}

// ExecBuilderCountAffected is ExecBuilder exposing the number of rows the
// statement touched, for conditional updates used as optimistic locks.
func ExecBuilderCountAffected(ctx context.Context, exec Executor, builder squirrel.Sqlizer) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	tag, err := exec.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func SqlToListOfModels[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) ([]Model, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	dbModels, err := pgx.CollectRows(rows, pgx.RowToStructByName[DBModel])
	if err != nil {
		return nil, errors.Wrap(err, "error while collecting rows")
	}

	return pure_utils.MapErr(dbModels, adapter)
}

func SqlToModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (Model, error) {
	var zero Model
	sql, args, err := query.ToSql()
	if err != nil {
		return zero, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	dbModel, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[DBModel])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, errors.Wrap(models.NotFoundError, err.Error())
	} else if err != nil {
		return zero, errors.Wrap(err, "error while collecting row")
	}

	return adapter(dbModel)
}

// SqlToOptionalModel returns nil without error when the query matches no row.
func SqlToOptionalModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (*Model, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	dbModel, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[DBModel])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "error while collecting row")
	}

	model, err := adapter(dbModel)
	if err != nil {
		return nil, err
	}
	return &model, nil
}

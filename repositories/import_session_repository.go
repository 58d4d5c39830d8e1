package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories/dbmodels"
)

func (repo *BackofficeDbRepository) CreateImportSession(ctx context.Context, exec Executor,
	session models.ImportSession,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_IMPORT_SESSIONS).
			Columns(
				"id",
				"entity_type",
				"status",
				"file_name",
				"raw_headers",
				"raw_rows",
				"created_at",
				"expires_at",
			).
			Values(
				session.Id,
				string(session.EntityType),
				string(session.Status),
				session.FileName,
				session.RawHeaders,
				session.RawRows,
				session.CreatedAt,
				session.ExpiresAt,
			),
	)
}

func (repo *BackofficeDbRepository) GetImportSession(ctx context.Context, exec Executor,
	sessionId string,
) (models.ImportSession, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().Select(dbmodels.SelectImportSessionColumn...).
			From(dbmodels.TABLE_IMPORT_SESSIONS).
			Where(squirrel.Eq{"id": sessionId}),
		dbmodels.AdaptImportSession,
	)
}

// AttachImportSessionMapping persists the mapping and moves the session from
// uploaded to mapped. The conditional update on the current status is the
// only mutation point of the mapping: a session that already left the
// uploaded state is not overwritten and the method reports false.
func (repo *BackofficeDbRepository) AttachImportSessionMapping(ctx context.Context, exec Executor,
	sessionId string, mapping models.FieldMapping,
) (bool, error) {
	affected, err := ExecBuilderCountAffected(
		ctx,
		exec,
		NewQueryBuilder().Update(dbmodels.TABLE_IMPORT_SESSIONS).
			Set("mapping", dbmodels.AdaptDBFieldBindings(mapping)).
			Set("status", string(models.ImportSessionMapped)).
			Where(squirrel.Eq{"id": sessionId}).
			Where(squirrel.Eq{"status": []string{
				string(models.ImportSessionUploaded),
				string(models.ImportSessionMapped),
			}}),
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ClaimImportSessionExecution transitions mapped -> executing. Only one
// caller wins the claim; concurrent executions of the same session lose it.
func (repo *BackofficeDbRepository) ClaimImportSessionExecution(ctx context.Context, exec Executor,
	sessionId string, startedAt time.Time,
) (bool, error) {
	affected, err := ExecBuilderCountAffected(
		ctx,
		exec,
		NewQueryBuilder().Update(dbmodels.TABLE_IMPORT_SESSIONS).
			Set("status", string(models.ImportSessionExecuting)).
			Set("started_at", startedAt).
			Where(squirrel.Eq{"id": sessionId}).
			Where(squirrel.Eq{"status": string(models.ImportSessionMapped)}),
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (repo *BackofficeDbRepository) FinishImportSession(ctx context.Context, exec Executor,
	sessionId string, status models.ImportSessionStatus, summary models.ImportSummary, finishedAt time.Time,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Update(dbmodels.TABLE_IMPORT_SESSIONS).
			Set("status", string(status)).
			Set("rows_created", summary.Created).
			Set("rows_updated", summary.Updated).
			Set("rows_skipped", summary.Skipped).
			Set("row_errors", dbmodels.AdaptDBRowErrors(summary.Errors)).
			Set("cancelled", summary.Cancelled).
			Set("finished_at", finishedAt).
			Where(squirrel.Eq{"id": sessionId}),
	)
}

func (repo *BackofficeDbRepository) DeleteExpiredImportSessions(ctx context.Context, exec Executor,
	now time.Time,
) (int64, error) {
	return ExecBuilderCountAffected(
		ctx,
		exec,
		NewQueryBuilder().Delete(dbmodels.TABLE_IMPORT_SESSIONS).
			Where(squirrel.Lt{"expires_at": now}),
	)
}

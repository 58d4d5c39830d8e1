package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories/dbmodels"
)

// FindCheckInOut looks up a check-in/out record by its composite natural
// key. Returns nil when no record matches.
func (repo *BackofficeDbRepository) FindCheckInOut(ctx context.Context, exec Executor,
	employeeNumber string, recordedAt time.Time,
) (*models.CheckInOut, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().Select(dbmodels.SelectCheckInOutColumn...).
			From(dbmodels.TABLE_CHECK_IN_OUTS).
			Where(squirrel.Eq{"employee_number": employeeNumber}).
			Where(squirrel.Eq{"recorded_at": recordedAt}),
		dbmodels.AdaptCheckInOut,
	)
}

func (repo *BackofficeDbRepository) CreateCheckInOut(ctx context.Context, exec Executor,
	attributes models.UpsertCheckInOutAttributes, newCheckInOutId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_CHECK_IN_OUTS).
			Columns(
				"id",
				"employee_number",
				"recorded_at",
				"direction",
			).
			Values(
				newCheckInOutId,
				attributes.EmployeeNumber,
				attributes.RecordedAt,
				string(attributes.Direction),
			),
	)
}

func (repo *BackofficeDbRepository) UpdateCheckInOut(ctx context.Context, exec Executor,
	checkInOutId string, attributes models.UpsertCheckInOutAttributes,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Update(dbmodels.TABLE_CHECK_IN_OUTS).
			Set("direction", string(attributes.Direction)).
			Where(squirrel.Eq{"id": checkInOutId}),
	)
}

package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories/dbmodels"
)

// FindEmployeeByEmail returns nil when no employee matches.
func (repo *BackofficeDbRepository) FindEmployeeByEmail(ctx context.Context, exec Executor,
	email string,
) (*models.Employee, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().Select(dbmodels.SelectEmployeeColumn...).
			From(dbmodels.TABLE_EMPLOYEES).
			Where(squirrel.Eq{"email": strings.ToLower(email)}),
		dbmodels.AdaptEmployee,
	)
}

func (repo *BackofficeDbRepository) CreateEmployee(ctx context.Context, exec Executor,
	attributes models.UpsertEmployeeAttributes, newEmployeeId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_EMPLOYEES).
			Columns(
				"id",
				"email",
				"first_name",
				"last_name",
				"employee_number",
				"position",
				"department",
				"hired_on",
			).
			Values(
				newEmployeeId,
				strings.ToLower(attributes.Email),
				attributes.FirstName,
				attributes.LastName,
				nullableString(attributes.EmployeeNumber),
				attributes.Position,
				attributes.Department,
				attributes.HiredOn,
			),
	)
}

func (repo *BackofficeDbRepository) UpdateEmployee(ctx context.Context, exec Executor,
	employeeId string, attributes models.UpsertEmployeeAttributes,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Update(dbmodels.TABLE_EMPLOYEES).
			Set("first_name", attributes.FirstName).
			Set("last_name", attributes.LastName).
			Set("employee_number", nullableString(attributes.EmployeeNumber)).
			Set("position", attributes.Position).
			Set("department", attributes.Department).
			Set("hired_on", attributes.HiredOn).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": employeeId}),
	)
}

// nullableString maps the empty string to NULL, so that partial unique
// indexes on optional business identifiers behave.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories/dbmodels"
)

// FindLeadByEmail returns nil when no lead matches.
func (repo *BackofficeDbRepository) FindLeadByEmail(ctx context.Context, exec Executor,
	email string,
) (*models.Lead, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().Select(dbmodels.SelectLeadColumn...).
			From(dbmodels.TABLE_LEADS).
			Where(squirrel.Eq{"email": strings.ToLower(email)}),
		dbmodels.AdaptLead,
	)
}

func (repo *BackofficeDbRepository) CreateLead(ctx context.Context, exec Executor,
	attributes models.UpsertLeadAttributes, newLeadId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_LEADS).
			Columns(
				"id",
				"email",
				"first_name",
				"last_name",
				"company",
				"phone",
				"status",
				"source",
			).
			Values(
				newLeadId,
				strings.ToLower(attributes.Email),
				attributes.FirstName,
				attributes.LastName,
				attributes.Company,
				attributes.Phone,
				attributes.Status,
				attributes.Source,
			),
	)
}

func (repo *BackofficeDbRepository) UpdateLead(ctx context.Context, exec Executor,
	leadId string, attributes models.UpsertLeadAttributes,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Update(dbmodels.TABLE_LEADS).
			Set("first_name", attributes.FirstName).
			Set("last_name", attributes.LastName).
			Set("company", attributes.Company).
			Set("phone", attributes.Phone).
			Set("status", attributes.Status).
			Set("source", attributes.Source).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": leadId}),
	)
}

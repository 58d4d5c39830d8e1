package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories/dbmodels"
)

// FindCandidateByEmail returns nil when no candidate matches.
func (repo *BackofficeDbRepository) FindCandidateByEmail(ctx context.Context, exec Executor,
	email string,
) (*models.Candidate, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().Select(dbmodels.SelectCandidateColumn...).
			From(dbmodels.TABLE_CANDIDATES).
			Where(squirrel.Eq{"email": strings.ToLower(email)}),
		dbmodels.AdaptCandidate,
	)
}

func (repo *BackofficeDbRepository) CreateCandidate(ctx context.Context, exec Executor,
	attributes models.UpsertCandidateAttributes, newCandidateId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_CANDIDATES).
			Columns(
				"id",
				"email",
				"first_name",
				"last_name",
				"position_applied",
				"stage",
				"expected_salary",
			).
			Values(
				newCandidateId,
				strings.ToLower(attributes.Email),
				attributes.FirstName,
				attributes.LastName,
				attributes.PositionApplied,
				attributes.Stage,
				attributes.ExpectedSalary,
			),
	)
}

func (repo *BackofficeDbRepository) UpdateCandidate(ctx context.Context, exec Executor,
	candidateId string, attributes models.UpsertCandidateAttributes,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Update(dbmodels.TABLE_CANDIDATES).
			Set("first_name", attributes.FirstName).
			Set("last_name", attributes.LastName).
			Set("position_applied", attributes.PositionApplied).
			Set("stage", attributes.Stage).
			Set("expected_salary", attributes.ExpectedSalary).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": candidateId}),
	)
}

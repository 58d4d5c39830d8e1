package import_targets

import (
	"context"

	"github.com/google/uuid"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories"
)

type CandidateTarget struct {
	repository *repositories.BackofficeDbRepository
}

func (t CandidateTarget) EntityType() models.ImportEntityType {
	return models.ImportEntityCandidate
}

func (t CandidateTarget) FieldSchema() []models.ImportField {
	return []models.ImportField{
		{Key: "email", Label: "Email", Required: true, Type: models.FieldTypeString},
		{Key: "first_name", Label: "First name", Type: models.FieldTypeString},
		{Key: "last_name", Label: "Last name", Type: models.FieldTypeString},
		{Key: "position_applied", Label: "Position applied", Type: models.FieldTypeString},
		{Key: "stage", Label: "Stage", Type: models.FieldTypeEnum, EnumValues: models.CandidateStages},
		{Key: "expected_salary", Label: "Expected salary", Type: models.FieldTypeNumber},
	}
}

func (t CandidateTarget) Validate(record models.ImportRecord) error {
	_, err := normalizeEmail(record.StringField("email"))
	return err
}

func (t CandidateTarget) NaturalKeyOf(record models.ImportRecord) (string, error) {
	return normalizeEmail(record.StringField("email"))
}

func (t CandidateTarget) FindByKey(ctx context.Context, exec repositories.Executor, key string) (string, error) {
	candidate, err := t.repository.FindCandidateByEmail(ctx, exec, key)
	if err != nil || candidate == nil {
		return "", err
	}
	return candidate.Id, nil
}

func (t CandidateTarget) Create(ctx context.Context, exec repositories.Executor, record models.ImportRecord) (string, error) {
	newCandidateId := uuid.NewString()
	err := t.repository.CreateCandidate(ctx, exec, adaptCandidateAttributes(record), newCandidateId)
	return newCandidateId, err
}

func (t CandidateTarget) Update(ctx context.Context, exec repositories.Executor, existingId string, record models.ImportRecord) error {
	return t.repository.UpdateCandidate(ctx, exec, existingId, adaptCandidateAttributes(record))
}

func adaptCandidateAttributes(record models.ImportRecord) models.UpsertCandidateAttributes {
	attributes := models.UpsertCandidateAttributes{
		Email:           record.StringField("email"),
		FirstName:       record.StringField("first_name"),
		LastName:        record.StringField("last_name"),
		PositionApplied: record.StringField("position_applied"),
		Stage:           record.StringField("stage"),
	}
	if attributes.Stage == "" {
		attributes.Stage = "APPLIED"
	}
	if salary, ok := record.NumberField("expected_salary"); ok {
		attributes.ExpectedSalary = &salary
	}
	return attributes
}

package import_targets

import (
	"context"

	"github.com/google/uuid"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories"
)

type LeadTarget struct {
	repository *repositories.BackofficeDbRepository
}

func (t LeadTarget) EntityType() models.ImportEntityType {
	return models.ImportEntityLead
}

func (t LeadTarget) FieldSchema() []models.ImportField {
	return []models.ImportField{
		{Key: "email", Label: "Email", Required: true, Type: models.FieldTypeString},
		{Key: "first_name", Label: "First name", Type: models.FieldTypeString},
		{Key: "last_name", Label: "Last name", Type: models.FieldTypeString},
		{Key: "company", Label: "Company", Type: models.FieldTypeString},
		{Key: "phone", Label: "Phone", Type: models.FieldTypeString},
		{Key: "status", Label: "Status", Type: models.FieldTypeEnum, EnumValues: models.LeadStatuses},
		{Key: "source", Label: "Source", Type: models.FieldTypeString},
	}
}

func (t LeadTarget) Validate(record models.ImportRecord) error {
	_, err := normalizeEmail(record.StringField("email"))
	return err
}

func (t LeadTarget) NaturalKeyOf(record models.ImportRecord) (string, error) {
	return normalizeEmail(record.StringField("email"))
}

func (t LeadTarget) FindByKey(ctx context.Context, exec repositories.Executor, key string) (string, error) {
	lead, err := t.repository.FindLeadByEmail(ctx, exec, key)
	if err != nil || lead == nil {
		return "", err
	}
	return lead.Id, nil
}

func (t LeadTarget) Create(ctx context.Context, exec repositories.Executor, record models.ImportRecord) (string, error) {
	newLeadId := uuid.NewString()
	err := t.repository.CreateLead(ctx, exec, adaptLeadAttributes(record), newLeadId)
	return newLeadId, err
}

func (t LeadTarget) Update(ctx context.Context, exec repositories.Executor, existingId string, record models.ImportRecord) error {
	return t.repository.UpdateLead(ctx, exec, existingId, adaptLeadAttributes(record))
}

func adaptLeadAttributes(record models.ImportRecord) models.UpsertLeadAttributes {
	attributes := models.UpsertLeadAttributes{
		Email:     record.StringField("email"),
		FirstName: record.StringField("first_name"),
		LastName:  record.StringField("last_name"),
		Company:   record.StringField("company"),
		Phone:     record.StringField("phone"),
		Status:    record.StringField("status"),
		Source:    record.StringField("source"),
	}
	if attributes.Status == "" {
		attributes.Status = "NEW"
	}
	return attributes
}

package import_targets

import (
	"context"

	"github.com/google/uuid"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories"
)

type EmployeeTarget struct {
	repository *repositories.BackofficeDbRepository
}

func (t EmployeeTarget) EntityType() models.ImportEntityType {
	return models.ImportEntityEmployee
}

func (t EmployeeTarget) FieldSchema() []models.ImportField {
	return []models.ImportField{
		{Key: "email", Label: "Email", Required: true, Type: models.FieldTypeString},
		{Key: "first_name", Label: "First name", Required: true, Type: models.FieldTypeString},
		{Key: "last_name", Label: "Last name", Required: true, Type: models.FieldTypeString},
		{Key: "employee_number", Label: "Employee number", Type: models.FieldTypeString},
		{Key: "position", Label: "Position", Type: models.FieldTypeString},
		{Key: "department", Label: "Department", Type: models.FieldTypeString},
		{Key: "hired_on", Label: "Hired on", Type: models.FieldTypeDate},
	}
}

func (t EmployeeTarget) Validate(record models.ImportRecord) error {
	_, err := normalizeEmail(record.StringField("email"))
	return err
}

func (t EmployeeTarget) NaturalKeyOf(record models.ImportRecord) (string, error) {
	return normalizeEmail(record.StringField("email"))
}

func (t EmployeeTarget) FindByKey(ctx context.Context, exec repositories.Executor, key string) (string, error) {
	employee, err := t.repository.FindEmployeeByEmail(ctx, exec, key)
	if err != nil || employee == nil {
		return "", err
	}
	return employee.Id, nil
}

func (t EmployeeTarget) Create(ctx context.Context, exec repositories.Executor, record models.ImportRecord) (string, error) {
	newEmployeeId := uuid.NewString()
	err := t.repository.CreateEmployee(ctx, exec, adaptEmployeeAttributes(record), newEmployeeId)
	return newEmployeeId, err
}

func (t EmployeeTarget) Update(ctx context.Context, exec repositories.Executor, existingId string, record models.ImportRecord) error {
	return t.repository.UpdateEmployee(ctx, exec, existingId, adaptEmployeeAttributes(record))
}

func adaptEmployeeAttributes(record models.ImportRecord) models.UpsertEmployeeAttributes {
	attributes := models.UpsertEmployeeAttributes{
		Email:          record.StringField("email"),
		FirstName:      record.StringField("first_name"),
		LastName:       record.StringField("last_name"),
		EmployeeNumber: record.StringField("employee_number"),
		Position:       record.StringField("position"),
		Department:     record.StringField("department"),
	}
	if hiredOn, ok := record.DateField("hired_on"); ok {
		attributes.HiredOn = &hiredOn
	}
	return attributes
}

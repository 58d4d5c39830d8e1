package import_targets

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories"
)

type CheckInOutTarget struct {
	repository *repositories.BackofficeDbRepository
}

func (t CheckInOutTarget) EntityType() models.ImportEntityType {
	return models.ImportEntityCheckInOut
}

func (t CheckInOutTarget) FieldSchema() []models.ImportField {
	return []models.ImportField{
		{Key: "employee_number", Label: "Employee number", Required: true, Type: models.FieldTypeString},
		{Key: "timestamp", Label: "Timestamp", Required: true, Type: models.FieldTypeDate},
		{
			Key: "direction", Label: "Direction", Required: true, Type: models.FieldTypeEnum,
			EnumValues: []string{string(models.CheckIn), string(models.CheckOut)},
		},
	}
}

func (t CheckInOutTarget) Validate(record models.ImportRecord) error {
	// Required presence and enum membership are enforced during projection,
	// nothing entity-specific left to check.
	return nil
}

// NaturalKeyOf builds the composite dedupe key for a check-in/out event.
// The "@" separator is safe because employee numbers never contain it and
// the timestamp part has a fixed format.
func (t CheckInOutTarget) NaturalKeyOf(record models.ImportRecord) (string, error) {
	recordedAt, ok := record.DateField("timestamp")
	if !ok {
		return "", errors.New("missing timestamp")
	}
	return record.StringField("employee_number") + "@" + recordedAt.UTC().Format(time.RFC3339), nil
}

func (t CheckInOutTarget) FindByKey(ctx context.Context, exec repositories.Executor, key string) (string, error) {
	sep := strings.LastIndex(key, "@")
	if sep < 0 {
		return "", errors.Newf("malformed check-in/out key %q", key)
	}
	recordedAt, err := time.Parse(time.RFC3339, key[sep+1:])
	if err != nil {
		return "", errors.Wrapf(err, "malformed check-in/out key %q", key)
	}
	checkInOut, err := t.repository.FindCheckInOut(ctx, exec, key[:sep], recordedAt)
	if err != nil || checkInOut == nil {
		return "", err
	}
	return checkInOut.Id, nil
}

func (t CheckInOutTarget) Create(ctx context.Context, exec repositories.Executor, record models.ImportRecord) (string, error) {
	newCheckInOutId := uuid.NewString()
	err := t.repository.CreateCheckInOut(ctx, exec, adaptCheckInOutAttributes(record), newCheckInOutId)
	return newCheckInOutId, err
}

func (t CheckInOutTarget) Update(ctx context.Context, exec repositories.Executor, existingId string, record models.ImportRecord) error {
	return t.repository.UpdateCheckInOut(ctx, exec, existingId, adaptCheckInOutAttributes(record))
}

func adaptCheckInOutAttributes(record models.ImportRecord) models.UpsertCheckInOutAttributes {
	recordedAt, _ := record.DateField("timestamp")
	return models.UpsertCheckInOutAttributes{
		EmployeeNumber: record.StringField("employee_number"),
		RecordedAt:     recordedAt.UTC(),
		Direction:      models.CheckDirection(record.StringField("direction")),
	}
}

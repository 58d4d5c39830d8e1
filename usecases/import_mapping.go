package usecases

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/stafflane/backoffice-backend/models"
)

// dateLayouts are tried in order when coercing a date cell. The formats
// cover ISO exports and the day-first layout common in HR spreadsheets.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// validateMapping checks an operator-supplied mapping against the entity's
// field schema before anything is persisted: every required field is bound,
// every source column is within the header range and every literal conforms
// to the declared field type. All offending fields are collected so the
// operator can fix the mapping in one pass.
func validateMapping(fields []models.ImportField, mapping models.FieldMapping, headerCount int) error {
	knownFields := make(map[string]struct{}, len(fields))
	var invalidKeys []string

	for _, field := range fields {
		knownFields[field.Key] = struct{}{}

		binding, bound := mapping.BindingFor(field.Key)
		if !bound {
			if field.Required {
				invalidKeys = append(invalidKeys, field.Key)
			}
			continue
		}

		switch {
		case binding.SourceColumn != nil:
			if *binding.SourceColumn < 0 || *binding.SourceColumn >= headerCount {
				invalidKeys = append(invalidKeys, field.Key)
			}
		case binding.Literal != nil:
			if _, err := coerceValue(field, *binding.Literal); err != nil {
				invalidKeys = append(invalidKeys, field.Key)
			}
		default:
			invalidKeys = append(invalidKeys, field.Key)
		}
	}

	for _, binding := range mapping.Bindings {
		if _, ok := knownFields[binding.TargetField]; !ok {
			invalidKeys = append(invalidKeys, binding.TargetField)
		}
	}

	if len(invalidKeys) > 0 {
		return models.InvalidMappingError{FieldKeys: invalidKeys}
	}
	return nil
}

// projectRow resolves every schema field of one raw row through the mapping
// into a typed record: the bound cell value, falling back to the per-field
// default when the cell is blank, coerced per the declared field type. Rows
// shorter than the header are read as blank in the missing columns.
func projectRow(
	fields []models.ImportField,
	mapping models.FieldMapping,
	row []string,
	defaults map[string]string,
) (models.ImportRecord, error) {
	record := models.ImportRecord{}

	for _, field := range fields {
		raw := ""
		if binding, bound := mapping.BindingFor(field.Key); bound {
			switch {
			case binding.SourceColumn != nil:
				if *binding.SourceColumn < len(row) {
					raw = strings.TrimSpace(row[*binding.SourceColumn])
				}
			case binding.Literal != nil:
				raw = strings.TrimSpace(*binding.Literal)
			}
		}
		if raw == "" {
			raw = strings.TrimSpace(defaults[field.Key])
		}

		if raw == "" {
			if field.Required {
				return nil, errors.Newf("missing required field %s", field.Key)
			}
			continue
		}

		value, err := coerceValue(field, raw)
		if err != nil {
			return nil, err
		}
		record[field.Key] = value
	}

	return record, nil
}

func coerceValue(field models.ImportField, raw string) (any, error) {
	switch field.Type {
	case models.FieldTypeString:
		return raw, nil

	case models.FieldTypeNumber:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Newf("field %s: %q is not a number", field.Key, raw)
		}
		return value, nil

	case models.FieldTypeDate:
		for _, layout := range dateLayouts {
			if value, err := time.Parse(layout, raw); err == nil {
				return value, nil
			}
		}
		return nil, errors.Newf("field %s: %q is not a recognized date", field.Key, raw)

	case models.FieldTypeEnum:
		for _, allowed := range field.EnumValues {
			if strings.EqualFold(raw, allowed) {
				return allowed, nil
			}
		}
		return nil, errors.Newf("field %s: %q is not one of %s",
			field.Key, raw, strings.Join(field.EnumValues, ", "))
	}

	return nil, errors.Newf("field %s has unknown type %s", field.Key, field.Type)
}

package models

import "time"

type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
	FieldTypeEnum   FieldType = "enum"
)

// ImportField describes one importable field of an entity schema. The set
// of ImportFields per entity is static configuration consumed by the
// pipeline, which has no other entity-specific knowledge.
type ImportField struct {
	Key        string
	Label      string
	Required   bool
	Type       FieldType
	EnumValues []string
}

// ImportRecord is one parsed row projected through the field mapping and
// coerced to typed values: string, float64 or time.Time depending on the
// field type. Fields left blank by the row and the defaults are absent.
type ImportRecord map[string]any

func (r ImportRecord) StringField(key string) string {
	v, _ := r[key].(string)
	return v
}

func (r ImportRecord) NumberField(key string) (float64, bool) {
	v, ok := r[key].(float64)
	return v, ok
}

func (r ImportRecord) DateField(key string) (time.Time, bool) {
	v, ok := r[key].(time.Time)
	return v, ok
}

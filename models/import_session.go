package models

import (
	"time"
)

type ImportEntityType string

const (
	ImportEntityLead       ImportEntityType = "LEAD"
	ImportEntityEmployee   ImportEntityType = "EMPLOYEE"
	ImportEntityCandidate  ImportEntityType = "CANDIDATE"
	ImportEntityCheckInOut ImportEntityType = "CHECK_IN_OUT"
)

func ImportEntityTypeFrom(s string) (ImportEntityType, error) {
	switch ImportEntityType(s) {
	case ImportEntityLead, ImportEntityEmployee, ImportEntityCandidate, ImportEntityCheckInOut:
		return ImportEntityType(s), nil
	}
	return "", ErrUnknownEntityType
}

type ImportSessionStatus string

const (
	ImportSessionUploaded  ImportSessionStatus = "uploaded"
	ImportSessionMapped    ImportSessionStatus = "mapped"
	ImportSessionExecuting ImportSessionStatus = "executing"
	ImportSessionCompleted ImportSessionStatus = "completed"
	ImportSessionFailed    ImportSessionStatus = "failed"
)

// ImportSession holds the server-side state of one uploaded file between
// upload and execution. RawRows is fixed at upload time: mapping and
// execution never mutate it.
type ImportSession struct {
	Id         string
	EntityType ImportEntityType
	Status     ImportSessionStatus
	FileName   string
	RawHeaders []string
	RawRows    [][]string
	Mapping    *FieldMapping
	Summary    *ImportSummary
	CreatedAt  time.Time
	ExpiresAt  time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
}

func (s ImportSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// FieldBinding binds one target entity field to either a source column of
// the uploaded file or a literal default value. Exactly one of SourceColumn
// and Literal is set.
type FieldBinding struct {
	TargetField  string
	SourceColumn *int
	Literal      *string
}

type FieldMapping struct {
	Bindings []FieldBinding
}

func (m FieldMapping) BindingFor(targetField string) (FieldBinding, bool) {
	for _, b := range m.Bindings {
		if b.TargetField == targetField {
			return b, true
		}
	}
	return FieldBinding{}, false
}

// ExecutionOptions control the conflict policy of one execution run.
type ExecutionOptions struct {
	// UpdateExisting makes a dedupe match update the existing record instead
	// of skipping the row.
	UpdateExisting bool
	// Defaults are fallback values applied per field when the mapped column
	// is blank for a given row.
	Defaults map[string]string
}

package models

type RowErrorReason string

const (
	RowErrorFieldValidation       RowErrorReason = "FieldValidation"
	RowErrorBusinessRuleViolation RowErrorReason = "BusinessRuleViolation"
	RowErrorStoreRejected         RowErrorReason = "StoreRejected"
)

// RowError is a failure isolated to one input row. It never aborts the batch.
type RowError struct {
	RowIndex int
	Reason   RowErrorReason
	Detail   string
}

// ImportSummary aggregates per-row outcomes of one execution run.
// Invariant: Created + Updated + Skipped + len(Errors) accounts for every
// processed row exactly once.
type ImportSummary struct {
	Created   int
	Updated   int
	Skipped   int
	Errors    []RowError
	Cancelled bool
}

func (s ImportSummary) RowsAccounted() int {
	return s.Created + s.Updated + s.Skipped + len(s.Errors)
}

func (s *ImportSummary) RecordCreated() { s.Created++ }
func (s *ImportSummary) RecordUpdated() { s.Updated++ }
func (s *ImportSummary) RecordSkipped() { s.Skipped++ }
func (s *ImportSummary) RecordError(rowIndex int, reason RowErrorReason, detail string) {
	s.Errors = append(s.Errors, RowError{RowIndex: rowIndex, Reason: reason, Detail: detail})
}

package dto

import (
	"time"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/pure_utils"
	"github.com/stafflane/backoffice-backend/usecases/file_parser"
)

type APIImportSession struct {
	Id         string            `json:"id"`
	EntityType string            `json:"entity_type"`
	Status     string            `json:"status"`
	FileName   string            `json:"file_name"`
	TotalRows  int               `json:"total_rows"`
	CreatedAt  time.Time         `json:"created_at"`
	ExpiresAt  time.Time         `json:"expires_at"`
	StartedAt  *time.Time        `json:"started_at,omitempty"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
	Summary    *APIImportSummary `json:"summary,omitempty"`
}

func AdaptImportSessionDto(session models.ImportSession) APIImportSession {
	out := APIImportSession{
		Id:         session.Id,
		EntityType: string(session.EntityType),
		Status:     string(session.Status),
		FileName:   session.FileName,
		TotalRows:  len(session.RawRows),
		CreatedAt:  session.CreatedAt,
		ExpiresAt:  session.ExpiresAt,
		StartedAt:  session.StartedAt,
		FinishedAt: session.FinishedAt,
	}
	if session.Summary != nil {
		summary := AdaptImportSummaryDto(*session.Summary)
		out.Summary = &summary
	}
	return out
}

type APIColumnSample struct {
	Headers     []string   `json:"headers"`
	PreviewRows [][]string `json:"preview_rows"`
	TotalRows   int        `json:"total_rows"`
}

func AdaptColumnSampleDto(sample file_parser.Sample) APIColumnSample {
	return APIColumnSample{
		Headers:     sample.Headers,
		PreviewRows: sample.PreviewRows,
		TotalRows:   sample.TotalRows,
	}
}

type FieldBindingBody struct {
	TargetField  string  `json:"target_field" binding:"required"`
	SourceColumn *int    `json:"source_column"`
	Literal      *string `json:"literal"`
}

type SaveMappingBody struct {
	Bindings []FieldBindingBody `json:"bindings" binding:"required,dive"`
}

func AdaptFieldMapping(body SaveMappingBody) models.FieldMapping {
	return models.FieldMapping{
		Bindings: pure_utils.Map(body.Bindings, func(b FieldBindingBody) models.FieldBinding {
			return models.FieldBinding{
				TargetField:  b.TargetField,
				SourceColumn: b.SourceColumn,
				Literal:      b.Literal,
			}
		}),
	}
}

type ExecuteBody struct {
	UpdateExisting bool              `json:"update_existing"`
	Defaults       map[string]string `json:"defaults"`
}

func AdaptExecutionOptions(body ExecuteBody) models.ExecutionOptions {
	return models.ExecutionOptions{
		UpdateExisting: body.UpdateExisting,
		Defaults:       body.Defaults,
	}
}

type APIRowError struct {
	RowIndex int    `json:"row_index"`
	Reason   string `json:"reason"`
	Detail   string `json:"detail"`
}

type APIImportSummary struct {
	Created   int           `json:"created"`
	Updated   int           `json:"updated"`
	Skipped   int           `json:"skipped"`
	Errors    []APIRowError `json:"errors"`
	Cancelled bool          `json:"cancelled"`
}

func AdaptImportSummaryDto(summary models.ImportSummary) APIImportSummary {
	errors := pure_utils.Map(summary.Errors, func(e models.RowError) APIRowError {
		return APIRowError{
			RowIndex: e.RowIndex,
			Reason:   string(e.Reason),
			Detail:   e.Detail,
		}
	})
	if errors == nil {
		errors = []APIRowError{}
	}
	return APIImportSummary{
		Created:   summary.Created,
		Updated:   summary.Updated,
		Skipped:   summary.Skipped,
		Errors:    errors,
		Cancelled: summary.Cancelled,
	}
}

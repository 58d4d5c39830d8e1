package dbmodels

import (
	"time"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/pure_utils"
	"github.com/stafflane/backoffice-backend/utils"
)

const TABLE_IMPORT_SESSIONS = "import_sessions"

type DBImportSession struct {
	Id          string           `db:"id"`
	EntityType  string           `db:"entity_type"`
	Status      string           `db:"status"`
	FileName    string           `db:"file_name"`
	RawHeaders  []string         `db:"raw_headers"`
	RawRows     [][]string       `db:"raw_rows"`
	Mapping     []DBFieldBinding `db:"mapping"`
	RowsCreated *int             `db:"rows_created"`
	RowsUpdated *int             `db:"rows_updated"`
	RowsSkipped *int             `db:"rows_skipped"`
	RowErrors   []DBRowError     `db:"row_errors"`
	Cancelled   bool             `db:"cancelled"`
	CreatedAt   time.Time        `db:"created_at"`
	ExpiresAt   time.Time        `db:"expires_at"`
	StartedAt   *time.Time       `db:"started_at"`
	FinishedAt  *time.Time       `db:"finished_at"`
}

// DBFieldBinding is the jsonb shape of one mapping entry.
type DBFieldBinding struct {
	TargetField  string  `json:"target_field"`
	SourceColumn *int    `json:"source_column,omitempty"`
	Literal      *string `json:"literal,omitempty"`
}

type DBRowError struct {
	RowIndex int    `json:"row_index"`
	Reason   string `json:"reason"`
	Detail   string `json:"detail,omitempty"`
}

var SelectImportSessionColumn = utils.ColumnList[DBImportSession]()

func AdaptImportSession(db DBImportSession) (models.ImportSession, error) {
	session := models.ImportSession{
		Id:         db.Id,
		EntityType: models.ImportEntityType(db.EntityType),
		Status:     models.ImportSessionStatus(db.Status),
		FileName:   db.FileName,
		RawHeaders: db.RawHeaders,
		RawRows:    db.RawRows,
		CreatedAt:  db.CreatedAt,
		ExpiresAt:  db.ExpiresAt,
		StartedAt:  db.StartedAt,
		FinishedAt: db.FinishedAt,
	}

	if db.Mapping != nil {
		session.Mapping = &models.FieldMapping{
			Bindings: pure_utils.Map(db.Mapping, adaptFieldBinding),
		}
	}

	if db.RowsCreated != nil && db.RowsUpdated != nil && db.RowsSkipped != nil {
		session.Summary = &models.ImportSummary{
			Created:   *db.RowsCreated,
			Updated:   *db.RowsUpdated,
			Skipped:   *db.RowsSkipped,
			Cancelled: db.Cancelled,
			Errors: pure_utils.Map(db.RowErrors, func(e DBRowError) models.RowError {
				return models.RowError{
					RowIndex: e.RowIndex,
					Reason:   models.RowErrorReason(e.Reason),
					Detail:   e.Detail,
				}
			}),
		}
	}

	return session, nil
}

func adaptFieldBinding(db DBFieldBinding) models.FieldBinding {
	return models.FieldBinding{
		TargetField:  db.TargetField,
		SourceColumn: db.SourceColumn,
		Literal:      db.Literal,
	}
}

func AdaptDBFieldBindings(mapping models.FieldMapping) []DBFieldBinding {
	return pure_utils.Map(mapping.Bindings, func(b models.FieldBinding) DBFieldBinding {
		return DBFieldBinding{
			TargetField:  b.TargetField,
			SourceColumn: b.SourceColumn,
			Literal:      b.Literal,
		}
	})
}

func AdaptDBRowErrors(rowErrors []models.RowError) []DBRowError {
	return pure_utils.Map(rowErrors, func(e models.RowError) DBRowError {
		return DBRowError{
			RowIndex: e.RowIndex,
			Reason:   string(e.Reason),
			Detail:   e.Detail,
		}
	})
}

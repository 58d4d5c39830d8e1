package usecases

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories"
	"github.com/stafflane/backoffice-backend/usecases/executor_factory"
	"github.com/stafflane/backoffice-backend/usecases/file_parser"
	"github.com/stafflane/backoffice-backend/usecases/import_targets"
	"github.com/stafflane/backoffice-backend/utils"
)

type importSessionRepository interface {
	CreateImportSession(ctx context.Context, exec repositories.Executor, session models.ImportSession) error
	GetImportSession(ctx context.Context, exec repositories.Executor, sessionId string) (models.ImportSession, error)
	AttachImportSessionMapping(ctx context.Context, exec repositories.Executor,
		sessionId string, mapping models.FieldMapping) (bool, error)
	ClaimImportSessionExecution(ctx context.Context, exec repositories.Executor,
		sessionId string, startedAt time.Time) (bool, error)
	FinishImportSession(ctx context.Context, exec repositories.Executor,
		sessionId string, status models.ImportSessionStatus, summary models.ImportSummary,
		finishedAt time.Time) error
}

type ImportUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	sessionRepository  importSessionRepository
	targets            import_targets.Registry
	sessionTTL         time.Duration
}

// UploadResult is the operator-facing outcome of the upload phase: the new
// session plus a bounded preview of the parsed file.
type UploadResult struct {
	Session models.ImportSession
	Sample  file_parser.Sample
}

// Upload parses the file, retains the raw rows against a new session and
// returns a column sample for the operator to build the mapping from.
func (usecase ImportUsecase) Upload(ctx context.Context,
	entityType string, fileName string, file io.Reader, contentType string,
) (UploadResult, error) {
	parsedEntityType, err := models.ImportEntityTypeFrom(entityType)
	if err != nil {
		return UploadResult{}, errors.Wrapf(err, "entity type %q", entityType)
	}
	if _, err := usecase.targets.TargetFor(parsedEntityType); err != nil {
		return UploadResult{}, err
	}

	headers, rows, err := file_parser.Parse(file, contentType)
	if err != nil {
		return UploadResult{}, err
	}

	now := time.Now()
	session := models.ImportSession{
		Id:         uuid.NewString(),
		EntityType: parsedEntityType,
		Status:     models.ImportSessionUploaded,
		FileName:   fileName,
		RawHeaders: headers,
		RawRows:    rows,
		CreatedAt:  now,
		ExpiresAt:  now.Add(usecase.sessionTTL),
	}

	exec := usecase.executorFactory.NewExecutor()
	if err := usecase.sessionRepository.CreateImportSession(ctx, exec, session); err != nil {
		return UploadResult{}, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "created import session",
		"session_id", session.Id,
		"entity_type", session.EntityType,
		"rows", len(rows))

	return UploadResult{
		Session: session,
		Sample:  file_parser.SampleColumns(headers, rows, file_parser.DefaultPreviewRows),
	}, nil
}

// SaveMapping validates the mapping against the entity's field schema and
// persists it, moving the session to the mapped state. An invalid mapping
// leaves the session untouched.
func (usecase ImportUsecase) SaveMapping(ctx context.Context,
	sessionId string, mapping models.FieldMapping,
) (models.ImportSession, error) {
	exec := usecase.executorFactory.NewExecutor()

	session, err := usecase.getLiveSession(ctx, exec, sessionId)
	if err != nil {
		return models.ImportSession{}, err
	}

	target, err := usecase.targets.TargetFor(session.EntityType)
	if err != nil {
		return models.ImportSession{}, err
	}

	if err := validateMapping(target.FieldSchema(), mapping, len(session.RawHeaders)); err != nil {
		return models.ImportSession{}, err
	}

	attached, err := usecase.sessionRepository.AttachImportSessionMapping(ctx, exec, sessionId, mapping)
	if err != nil {
		return models.ImportSession{}, err
	}
	if !attached {
		return models.ImportSession{}, usecase.sessionUnavailable(ctx, exec, sessionId)
	}

	session.Status = models.ImportSessionMapped
	session.Mapping = &mapping
	return session, nil
}

// Execute consumes a mapped session: it claims the session, streams every
// retained row through the mapping and the record store and persists the
// aggregate summary. Row-level failures never abort the run.
func (usecase ImportUsecase) Execute(ctx context.Context,
	sessionId string, options models.ExecutionOptions,
) (models.ImportSummary, error) {
	exec := usecase.executorFactory.NewExecutor()

	session, err := usecase.getLiveSession(ctx, exec, sessionId)
	if err != nil {
		return models.ImportSummary{}, err
	}
	if session.Status == models.ImportSessionUploaded {
		return models.ImportSummary{}, errors.Wrapf(models.ErrSessionNotMapped, "session %s", sessionId)
	}

	target, err := usecase.targets.TargetFor(session.EntityType)
	if err != nil {
		return models.ImportSummary{}, err
	}

	claimed, err := usecase.sessionRepository.ClaimImportSessionExecution(ctx, exec, sessionId, time.Now())
	if err != nil {
		return models.ImportSummary{}, err
	}
	if !claimed {
		return models.ImportSummary{}, usecase.sessionUnavailable(ctx, exec, sessionId)
	}

	summary := usecase.executeRows(ctx, target, session, options)

	status := models.ImportSessionCompleted
	if summary.Cancelled {
		status = models.ImportSessionFailed
	}

	// The summary must be persisted even when ctx was cancelled mid-run.
	finishCtx := context.WithoutCancel(ctx)
	if err := usecase.sessionRepository.FinishImportSession(
		finishCtx, exec, sessionId, status, summary, time.Now(),
	); err != nil {
		return models.ImportSummary{}, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "finished import session",
		"session_id", sessionId,
		"status", status,
		"created", summary.Created,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", len(summary.Errors),
		"cancelled", summary.Cancelled)

	return summary, nil
}

// executeRows processes the retained rows in file order. Every row ends up
// in exactly one summary bucket. Each row runs in its own transaction so a
// store rejection rolls back that row alone.
func (usecase ImportUsecase) executeRows(ctx context.Context,
	target import_targets.Target, session models.ImportSession, options models.ExecutionOptions,
) models.ImportSummary {
	summary := models.ImportSummary{}
	fields := target.FieldSchema()

	for rowIndex, row := range session.RawRows {
		if ctx.Err() != nil {
			summary.Cancelled = true
			break
		}

		record, err := projectRow(fields, *session.Mapping, row, options.Defaults)
		if err != nil {
			summary.RecordError(rowIndex, models.RowErrorFieldValidation, err.Error())
			continue
		}

		if err := target.Validate(record); err != nil {
			summary.RecordError(rowIndex, models.RowErrorBusinessRuleViolation, err.Error())
			continue
		}

		naturalKey, err := target.NaturalKeyOf(record)
		if err != nil {
			summary.RecordError(rowIndex, models.RowErrorBusinessRuleViolation, err.Error())
			continue
		}

		outcome, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
			func(tx repositories.Transaction) (rowOutcome, error) {
				return usecase.executeRow(ctx, tx, target, naturalKey, record, options)
			})
		if err != nil {
			detail := err.Error()
			if repositories.IsUniqueViolationError(err) {
				detail = fmt.Sprintf("record with key %q already exists", naturalKey)
			}
			summary.RecordError(rowIndex, models.RowErrorStoreRejected, detail)
			continue
		}

		switch outcome {
		case rowCreated:
			summary.RecordCreated()
		case rowUpdated:
			summary.RecordUpdated()
		case rowSkipped:
			summary.RecordSkipped()
		}
	}

	return summary
}

type rowOutcome int

const (
	rowCreated rowOutcome = iota
	rowUpdated
	rowSkipped
)

func (usecase ImportUsecase) executeRow(ctx context.Context, tx repositories.Transaction,
	target import_targets.Target, naturalKey string, record models.ImportRecord,
	options models.ExecutionOptions,
) (rowOutcome, error) {
	existingId, err := target.FindByKey(ctx, tx, naturalKey)
	if err != nil {
		return rowSkipped, err
	}

	if existingId != "" {
		if !options.UpdateExisting {
			return rowSkipped, nil
		}
		if err := target.Update(ctx, tx, existingId, record); err != nil {
			return rowSkipped, err
		}
		return rowUpdated, nil
	}

	if _, err := target.Create(ctx, tx, record); err != nil {
		return rowSkipped, err
	}
	return rowCreated, nil
}

// GetImportSession returns the current session state, including the summary
// once execution finished.
func (usecase ImportUsecase) GetImportSession(ctx context.Context,
	sessionId string,
) (models.ImportSession, error) {
	exec := usecase.executorFactory.NewExecutor()
	return usecase.getSession(ctx, exec, sessionId)
}

func (usecase ImportUsecase) getSession(ctx context.Context, exec repositories.Executor,
	sessionId string,
) (models.ImportSession, error) {
	session, err := usecase.sessionRepository.GetImportSession(ctx, exec, sessionId)
	if errors.Is(err, models.NotFoundError) {
		return models.ImportSession{}, errors.Wrapf(models.ErrSessionNotFound, "session %s", sessionId)
	} else if err != nil {
		return models.ImportSession{}, err
	}
	return session, nil
}

// getLiveSession rejects sessions that passed their expiry, even when the
// cleanup job has not collected them yet.
func (usecase ImportUsecase) getLiveSession(ctx context.Context, exec repositories.Executor,
	sessionId string,
) (models.ImportSession, error) {
	session, err := usecase.getSession(ctx, exec, sessionId)
	if err != nil {
		return models.ImportSession{}, err
	}
	if session.Expired(time.Now()) {
		return models.ImportSession{}, errors.Wrapf(models.ErrSessionExpired, "session %s", sessionId)
	}
	return session, nil
}

// sessionUnavailable re-reads the session after a lost conditional update
// and classifies why the transition was refused.
func (usecase ImportUsecase) sessionUnavailable(ctx context.Context, exec repositories.Executor,
	sessionId string,
) error {
	session, err := usecase.getSession(ctx, exec, sessionId)
	if err != nil {
		return err
	}
	switch session.Status {
	case models.ImportSessionExecuting:
		return errors.Wrapf(models.ErrSessionBusy, "session %s", sessionId)
	case models.ImportSessionCompleted, models.ImportSessionFailed:
		return errors.Wrapf(models.ErrSessionConsumed, "session %s", sessionId)
	case models.ImportSessionUploaded:
		return errors.Wrapf(models.ErrSessionNotMapped, "session %s", sessionId)
	}
	return errors.Newf("session %s in unexpected status %s", sessionId, session.Status)
}

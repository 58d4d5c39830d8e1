package usecases

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafflane/backoffice-backend/models"
	"github.com/stafflane/backoffice-backend/repositories"
	"github.com/stafflane/backoffice-backend/usecases/executor_factory"
	"github.com/stafflane/backoffice-backend/usecases/import_targets"
)

// fakeSessionStore implements the session repository against a map, keeping
// the same conditional-transition semantics as the sql implementation.
type fakeSessionStore struct {
	sessions map[string]*models.ImportSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*models.ImportSession{}}
}

func (s *fakeSessionStore) CreateImportSession(ctx context.Context, exec repositories.Executor,
	session models.ImportSession,
) error {
	stored := session
	s.sessions[session.Id] = &stored
	return nil
}

func (s *fakeSessionStore) GetImportSession(ctx context.Context, exec repositories.Executor,
	sessionId string,
) (models.ImportSession, error) {
	session, ok := s.sessions[sessionId]
	if !ok {
		return models.ImportSession{}, errors.Wrap(models.NotFoundError, "import session")
	}
	return *session, nil
}

func (s *fakeSessionStore) AttachImportSessionMapping(ctx context.Context, exec repositories.Executor,
	sessionId string, mapping models.FieldMapping,
) (bool, error) {
	session, ok := s.sessions[sessionId]
	if !ok {
		return false, nil
	}
	if session.Status != models.ImportSessionUploaded && session.Status != models.ImportSessionMapped {
		return false, nil
	}
	session.Mapping = &mapping
	session.Status = models.ImportSessionMapped
	return true, nil
}

func (s *fakeSessionStore) ClaimImportSessionExecution(ctx context.Context, exec repositories.Executor,
	sessionId string, startedAt time.Time,
) (bool, error) {
	session, ok := s.sessions[sessionId]
	if !ok || session.Status != models.ImportSessionMapped {
		return false, nil
	}
	session.Status = models.ImportSessionExecuting
	session.StartedAt = &startedAt
	return true, nil
}

func (s *fakeSessionStore) FinishImportSession(ctx context.Context, exec repositories.Executor,
	sessionId string, status models.ImportSessionStatus, summary models.ImportSummary,
	finishedAt time.Time,
) error {
	session, ok := s.sessions[sessionId]
	if !ok {
		return errors.Wrap(models.NotFoundError, "import session")
	}
	session.Status = status
	session.Summary = &summary
	session.FinishedAt = &finishedAt
	return nil
}

// fakeTarget is an in-memory record store for one entity type.
type fakeTarget struct {
	records   map[string]string // natural key -> record id
	updates   int
	createErr error
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{records: map[string]string{}}
}

func (t *fakeTarget) EntityType() models.ImportEntityType {
	return models.ImportEntityLead
}

func (t *fakeTarget) FieldSchema() []models.ImportField {
	return []models.ImportField{
		{Key: "email", Required: true, Type: models.FieldTypeString},
		{Key: "name", Type: models.FieldTypeString},
		{Key: "status", Type: models.FieldTypeEnum, EnumValues: []string{"NEW", "CONTACTED"}},
	}
}

func (t *fakeTarget) Validate(record models.ImportRecord) error {
	if !strings.Contains(record.StringField("email"), "@") {
		return errors.New("invalid email address")
	}
	return nil
}

func (t *fakeTarget) NaturalKeyOf(record models.ImportRecord) (string, error) {
	return strings.ToLower(record.StringField("email")), nil
}

func (t *fakeTarget) FindByKey(ctx context.Context, exec repositories.Executor, key string) (string, error) {
	return t.records[key], nil
}

func (t *fakeTarget) Create(ctx context.Context, exec repositories.Executor, record models.ImportRecord) (string, error) {
	if t.createErr != nil {
		return "", t.createErr
	}
	key, _ := t.NaturalKeyOf(record)
	id := fmt.Sprintf("record-%d", len(t.records)+1)
	t.records[key] = id
	return id, nil
}

func (t *fakeTarget) Update(ctx context.Context, exec repositories.Executor, existingId string, record models.ImportRecord) error {
	t.updates++
	return nil
}

type importTestBench struct {
	usecase ImportUsecase
	store   *fakeSessionStore
	target  *fakeTarget
}

func newImportTestBench(t *testing.T) importTestBench {
	t.Helper()
	store := newFakeSessionStore()
	target := newFakeTarget()
	stub := executor_factory.NewExecutorFactoryStub()

	return importTestBench{
		usecase: ImportUsecase{
			executorFactory:    stub,
			transactionFactory: stub,
			sessionRepository:  store,
			targets:            import_targets.NewRegistryOf(target),
			sessionTTL:         time.Hour,
		},
		store:  store,
		target: target,
	}
}

func (b importTestBench) seedSession(status models.ImportSessionStatus,
	mapping *models.FieldMapping, rows [][]string,
) string {
	session := &models.ImportSession{
		Id:         "7bdb8be1-73a9-4c2a-9a54-4933a2082937",
		EntityType: models.ImportEntityLead,
		Status:     status,
		FileName:   "leads.csv",
		RawHeaders: []string{"email", "name", "status"},
		RawRows:    rows,
		Mapping:    mapping,
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	b.store.sessions[session.Id] = session
	return session.Id
}

func fullMapping() *models.FieldMapping {
	return &models.FieldMapping{Bindings: []models.FieldBinding{
		{TargetField: "email", SourceColumn: col(0)},
		{TargetField: "name", SourceColumn: col(1)},
		{TargetField: "status", SourceColumn: col(2)},
	}}
}

func TestImportUpload(t *testing.T) {
	bench := newImportTestBench(t)

	file := "email,name,status\nalice@acme.com,Alice,NEW\nbob@acme.com,Bob,CONTACTED\n"
	result, err := bench.usecase.Upload(context.Background(),
		"LEAD", "leads.csv", strings.NewReader(file), "text/csv")
	require.NoError(t, err)

	assert.Equal(t, models.ImportSessionUploaded, result.Session.Status)
	assert.Equal(t, models.ImportEntityLead, result.Session.EntityType)
	assert.Equal(t, 2, result.Sample.TotalRows)
	assert.Equal(t, []string{"email", "name", "status"}, result.Sample.Headers)

	stored, ok := bench.store.sessions[result.Session.Id]
	require.True(t, ok)
	assert.Len(t, stored.RawRows, 2)
	assert.True(t, stored.ExpiresAt.After(time.Now()))
}

func TestImportUploadUnknownEntityType(t *testing.T) {
	bench := newImportTestBench(t)

	_, err := bench.usecase.Upload(context.Background(),
		"SPACESHIP", "f.csv", strings.NewReader("a\n1\n"), "text/csv")
	assert.ErrorIs(t, err, models.ErrUnknownEntityType)
}

func TestImportSaveMapping(t *testing.T) {
	bench := newImportTestBench(t)
	sessionId := bench.seedSession(models.ImportSessionUploaded, nil, [][]string{
		{"alice@acme.com", "Alice", "NEW"},
	})

	session, err := bench.usecase.SaveMapping(context.Background(), sessionId, *fullMapping())
	require.NoError(t, err)

	assert.Equal(t, models.ImportSessionMapped, session.Status)
	assert.Equal(t, models.ImportSessionMapped, bench.store.sessions[sessionId].Status)
	require.NotNil(t, bench.store.sessions[sessionId].Mapping)
}

func TestImportSaveMappingInvalidKeepsSessionUploaded(t *testing.T) {
	bench := newImportTestBench(t)
	sessionId := bench.seedSession(models.ImportSessionUploaded, nil, nil)

	_, err := bench.usecase.SaveMapping(context.Background(), sessionId,
		models.FieldMapping{Bindings: []models.FieldBinding{
			{TargetField: "name", SourceColumn: col(1)},
		}})

	var invalidMapping models.InvalidMappingError
	require.True(t, errors.As(err, &invalidMapping))
	assert.Equal(t, []string{"email"}, invalidMapping.FieldKeys)
	assert.Equal(t, models.ImportSessionUploaded, bench.store.sessions[sessionId].Status)
	assert.Nil(t, bench.store.sessions[sessionId].Mapping)
}

func TestImportSaveMappingSessionNotFound(t *testing.T) {
	bench := newImportTestBench(t)

	_, err := bench.usecase.SaveMapping(context.Background(),
		"3e2fbed9-3c70-40d9-b131-b8382b72a3e5", *fullMapping())
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestImportSaveMappingSessionExpired(t *testing.T) {
	bench := newImportTestBench(t)
	sessionId := bench.seedSession(models.ImportSessionUploaded, nil, nil)
	bench.store.sessions[sessionId].ExpiresAt = time.Now().Add(-time.Minute)

	_, err := bench.usecase.SaveMapping(context.Background(), sessionId, *fullMapping())
	assert.ErrorIs(t, err, models.ErrSessionExpired)
}

func TestImportExecuteCreatesRecords(t *testing.T) {
	bench := newImportTestBench(t)
	sessionId := bench.seedSession(models.ImportSessionMapped, fullMapping(), [][]string{
		{"alice@acme.com", "Alice", "NEW"},
		{"bob@acme.com", "Bob", "CONTACTED"},
		{"carol@acme.com", "Carol", ""},
	})

	summary, err := bench.usecase.Execute(context.Background(), sessionId, models.ExecutionOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Created)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 0, summary.Skipped)
	assert.Empty(t, summary.Errors)
	assert.Equal(t, 3, summary.RowsAccounted())

	stored := bench.store.sessions[sessionId]
	assert.Equal(t, models.ImportSessionCompleted, stored.Status)
	require.NotNil(t, stored.Summary)
	assert.NotNil(t, stored.FinishedAt)
}

func TestImportExecuteDedupe(t *testing.T) {
	rows := [][]string{
		{"alice@acme.com", "Alice", "NEW"},
		{"ALICE@acme.com", "Alice again", "NEW"},
		{"bob@acme.com", "Bob", "NEW"},
	}

	t.Run("skip existing by default", func(t *testing.T) {
		bench := newImportTestBench(t)
		bench.target.records["alice@acme.com"] = "existing-1"
		sessionId := bench.seedSession(models.ImportSessionMapped, fullMapping(), rows)

		summary, err := bench.usecase.Execute(context.Background(), sessionId, models.ExecutionOptions{})
		require.NoError(t, err)

		// both alice rows hit the same key, case-insensitively
		assert.Equal(t, 1, summary.Created)
		assert.Equal(t, 2, summary.Skipped)
		assert.Equal(t, 0, bench.target.updates)
		assert.Equal(t, 3, summary.RowsAccounted())
	})

	t.Run("update existing when requested", func(t *testing.T) {
		bench := newImportTestBench(t)
		bench.target.records["alice@acme.com"] = "existing-1"
		sessionId := bench.seedSession(models.ImportSessionMapped, fullMapping(), rows)

		summary, err := bench.usecase.Execute(context.Background(), sessionId,
			models.ExecutionOptions{UpdateExisting: true})
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Created)
		assert.Equal(t, 2, summary.Updated)
		assert.Equal(t, 0, summary.Skipped)
	})
}

func TestImportExecuteRowFailureIsolation(t *testing.T) {
	bench := newImportTestBench(t)
	sessionId := bench.seedSession(models.ImportSessionMapped, fullMapping(), [][]string{
		{"alice@acme.com", "Alice", "NEW"},
		{"", "No Email", "NEW"},
		{"carol@acme.com", "Carol", "NOT_A_STATUS"},
		{"dave", "Bad Address", "NEW"},
		{"erin@acme.com", "Erin", "NEW"},
	})

	summary, err := bench.usecase.Execute(context.Background(), sessionId, models.ExecutionOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Created)
	require.Len(t, summary.Errors, 3)
	assert.Equal(t, 5, summary.RowsAccounted())

	// errors are ordered by row index, with the failure reason per row
	assert.Equal(t, 1, summary.Errors[0].RowIndex)
	assert.Equal(t, models.RowErrorFieldValidation, summary.Errors[0].Reason)
	assert.Equal(t, 2, summary.Errors[1].RowIndex)
	assert.Equal(t, models.RowErrorFieldValidation, summary.Errors[1].Reason)
	assert.Equal(t, 3, summary.Errors[2].RowIndex)
	assert.Equal(t, models.RowErrorBusinessRuleViolation, summary.Errors[2].Reason)

	assert.Equal(t, models.ImportSessionCompleted, bench.store.sessions[sessionId].Status)
}

func TestImportExecuteStoreRejected(t *testing.T) {
	bench := newImportTestBench(t)
	bench.target.createErr = errors.New("unique constraint violation")
	sessionId := bench.seedSession(models.ImportSessionMapped, fullMapping(), [][]string{
		{"alice@acme.com", "Alice", "NEW"},
	})

	summary, err := bench.usecase.Execute(context.Background(), sessionId, models.ExecutionOptions{})
	require.NoError(t, err)

	require.Len(t, summary.Errors, 1)
	assert.Equal(t, models.RowErrorStoreRejected, summary.Errors[0].Reason)
	assert.Equal(t, 1, summary.RowsAccounted())
}

func TestImportExecuteDefaults(t *testing.T) {
	bench := newImportTestBench(t)
	sessionId := bench.seedSession(models.ImportSessionMapped, fullMapping(), [][]string{
		{"alice@acme.com", "Alice", ""},
	})

	summary, err := bench.usecase.Execute(context.Background(), sessionId,
		models.ExecutionOptions{Defaults: map[string]string{"status": "NEW"}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
}

func TestImportExecuteSessionBusy(t *testing.T) {
	bench := newImportTestBench(t)
	sessionId := bench.seedSession(models.ImportSessionExecuting, fullMapping(), nil)

	_, err := bench.usecase.Execute(context.Background(), sessionId, models.ExecutionOptions{})
	assert.ErrorIs(t, err, models.ErrSessionBusy)
	assert.ErrorIs(t, err, models.ConflictError)
}

func TestImportExecuteSessionConsumed(t *testing.T) {
	bench := newImportTestBench(t)
	sessionId := bench.seedSession(models.ImportSessionCompleted, fullMapping(), nil)

	_, err := bench.usecase.Execute(context.Background(), sessionId, models.ExecutionOptions{})
	assert.ErrorIs(t, err, models.ErrSessionConsumed)
}

func TestImportExecuteSessionNotMapped(t *testing.T) {
	bench := newImportTestBench(t)
	sessionId := bench.seedSession(models.ImportSessionUploaded, nil, nil)

	_, err := bench.usecase.Execute(context.Background(), sessionId, models.ExecutionOptions{})
	assert.ErrorIs(t, err, models.ErrSessionNotMapped)
}

func TestImportExecuteCancellation(t *testing.T) {
	bench := newImportTestBench(t)
	sessionId := bench.seedSession(models.ImportSessionMapped, fullMapping(), [][]string{
		{"alice@acme.com", "Alice", "NEW"},
		{"bob@acme.com", "Bob", "NEW"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := bench.usecase.Execute(ctx, sessionId, models.ExecutionOptions{})
	require.NoError(t, err)

	assert.True(t, summary.Cancelled)
	assert.Equal(t, models.ImportSessionFailed, bench.store.sessions[sessionId].Status)
	require.NotNil(t, bench.store.sessions[sessionId].Summary)
	assert.True(t, bench.store.sessions[sessionId].Summary.Cancelled)
}

func TestImportGetSession(t *testing.T) {
	bench := newImportTestBench(t)
	sessionId := bench.seedSession(models.ImportSessionUploaded, nil, nil)

	session, err := bench.usecase.GetImportSession(context.Background(), sessionId)
	require.NoError(t, err)
	assert.Equal(t, sessionId, session.Id)

	_, err = bench.usecase.GetImportSession(context.Background(),
		"b0a4f2a6-f04e-4a52-8e19-45d6b4a2e6c1")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

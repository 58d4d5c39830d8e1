package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafflane/backoffice-backend/models"
)

func TestClaimImportSessionExecution(t *testing.T) {
	repo := &BackofficeDbRepository{}

	t.Run("claim won", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE import_sessions").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		claimed, err := repo.ClaimImportSessionExecution(context.Background(), mock,
			"session-1", time.Now())
		require.NoError(t, err)
		assert.True(t, claimed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("claim lost when no longer mapped", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE import_sessions").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		claimed, err := repo.ClaimImportSessionExecution(context.Background(), mock,
			"session-1", time.Now())
		require.NoError(t, err)
		assert.False(t, claimed)
	})
}

func TestAttachImportSessionMapping(t *testing.T) {
	repo := &BackofficeDbRepository{}
	mapping := models.FieldMapping{Bindings: []models.FieldBinding{
		{TargetField: "email"},
	}}

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE import_sessions").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	attached, err := repo.AttachImportSessionMapping(context.Background(), mock,
		"session-1", mapping)
	require.NoError(t, err)
	assert.False(t, attached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredImportSessions(t *testing.T) {
	repo := &BackofficeDbRepository{}

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM import_sessions").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	deleted, err := repo.DeleteExpiredImportSessions(context.Background(), mock, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

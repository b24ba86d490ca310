package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/shortdash/internal/repository"
	"go.uber.org/zap"
)

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sessions").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS sessions_user_id_idx").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS sessions_expires_at_idx").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS user_settings").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sessions").WillReturnError(errors.New("permission denied"))

	assert.EqualError(t, Migrate(context.Background(), db), "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_HandlePing(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(db *repository.MockDatabase)
		expected int
	}{
		{
			name: "Database available",
			setup: func(db *repository.MockDatabase) {
				db.EXPECT().PingContext(gomock.Any()).Return(nil)
			},
			expected: http.StatusOK,
		},
		{
			name: "Database unavailable",
			setup: func(db *repository.MockDatabase) {
				db.EXPECT().PingContext(gomock.Any()).Return(errors.New("connection refused"))
			},
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := repository.NewMockDatabase(ctrl)
			tt.setup(db)

			appInstance := NewApp(nil, db, zap.NewNop())
			rr := httptest.NewRecorder()
			appInstance.HandlePing(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

			assert.Equal(t, tt.expected, rr.Code)
		})
	}
}

package pgkv_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoi/internal/kv/pgkv"
)

var (
	selectQuery = regexp.QuoteMeta(`SELECT value FROM kv_records WHERE key = $1`)
	upsertQuery = regexp.QuoteMeta(`INSERT INTO kv_records`)
	createQuery = regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS kv_records`)
)

func newStore(t *testing.T) (*pgkv.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return pgkv.New(db), mock
}

func TestStore_Get(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantValue []byte
		wantFound bool
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectQuery).
					WithArgs("current-invoice").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"version":1}`)))
			},
			wantValue: []byte(`{"version":1}`),
			wantFound: true,
		},
		{
			name: "No Rows Is Not Found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectQuery).
					WithArgs("current-invoice").
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
			},
			wantFound: false,
		},
		{
			name: "Query Error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectQuery).
					WithArgs("current-invoice").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)
			tt.setupMock(mock)

			value, found, err := s.Get(context.Background(), "current-invoice")

			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, found)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestStore_Put(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(upsertQuery).
		WithArgs("current-invoice", []byte("doc")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Put(context.Background(), "current-invoice", []byte("doc")))
}

func TestStore_PutError(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(upsertQuery).
		WithArgs("current-invoice", []byte("doc")).
		WillReturnError(errors.New("disk full"))

	err := s.Put(context.Background(), "current-invoice", []byte("doc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestStore_EnsureSchema(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(createQuery).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.EnsureSchema(context.Background()))
}

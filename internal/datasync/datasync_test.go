package datasync

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_storage "github.com/at-ishikawa/langcards/internal/mocks/storage"
	"github.com/at-ishikawa/langcards/internal/storage"
)

func newStore(t *testing.T, entries map[string]string) *storage.Memory {
	t.Helper()
	kv := storage.NewMemory()
	for key, value := range entries {
		require.NoError(t, kv.Set(context.Background(), key, []byte(value)))
	}
	return kv
}

func get(t *testing.T, kv storage.KeyValue, key string) string {
	t.Helper()
	contents, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	if !ok {
		return ""
	}
	return string(contents)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"words-42", "flashcards-42"}, Keys("42"))
}

func TestSyncer_Sync(t *testing.T) {
	source := map[string]string{
		"words-1":      `[{"id":"1","word":"casa"}]`,
		"flashcards-1": `[]`,
		"words-2":      `[{"id":"9","word":"gato"}]`,
	}

	tests := []struct {
		name       string
		target     map[string]string
		userIDs    []string
		opts       SyncOptions
		want       *SyncResult
		wantTarget map[string]string
		wantOutput []string
	}{
		{
			name:    "empty target receives every collection",
			target:  map[string]string{},
			userIDs: []string{"1"},
			want:    &SyncResult{New: 2},
			wantTarget: map[string]string{
				"words-1":      `[{"id":"1","word":"casa"}]`,
				"flashcards-1": `[]`,
			},
			wantOutput: []string{"[NEW]  words-1", "[NEW]  flashcards-1"},
		},
		{
			name:    "missing source collection is reported",
			target:  map[string]string{},
			userIDs: []string{"2"},
			want:    &SyncResult{New: 1, Missing: 1},
			wantTarget: map[string]string{
				"words-2":      `[{"id":"9","word":"gato"}]`,
				"flashcards-2": "",
			},
			wantOutput: []string{"[NEW]  words-2", "[MISSING]  flashcards-2"},
		},
		{
			name: "different target collection is kept by default",
			target: map[string]string{
				"words-1":      `[]`,
				"flashcards-1": `[]`,
			},
			userIDs: []string{"1"},
			want:    &SyncResult{Skipped: 1, Unchanged: 1},
			wantTarget: map[string]string{
				"words-1": `[]`,
			},
			wantOutput: []string{"[SKIP]  words-1"},
		},
		{
			name: "update existing overwrites the target",
			target: map[string]string{
				"words-1": `[]`,
			},
			userIDs: []string{"1"},
			opts:    SyncOptions{UpdateExisting: true},
			want:    &SyncResult{New: 1, Updated: 1},
			wantTarget: map[string]string{
				"words-1": `[{"id":"1","word":"casa"}]`,
			},
			wantOutput: []string{"[UPDATE]  words-1", "[NEW]  flashcards-1"},
		},
		{
			name: "dry run writes nothing",
			target: map[string]string{
				"words-1": `[]`,
			},
			userIDs: []string{"1"},
			opts:    SyncOptions{DryRun: true, UpdateExisting: true},
			want:    &SyncResult{New: 1, Updated: 1},
			wantTarget: map[string]string{
				"words-1":      `[]`,
				"flashcards-1": "",
			},
			wantOutput: []string{"[UPDATE]  words-1", "[NEW]  flashcards-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newStore(t, source)
			dst := newStore(t, tt.target)
			var output bytes.Buffer

			got, err := NewSyncer(src, dst, &output).Sync(context.Background(), tt.userIDs, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for key, want := range tt.wantTarget {
				assert.Equal(t, want, get(t, dst, key), key)
			}
			for _, line := range tt.wantOutput {
				assert.Contains(t, output.String(), line)
			}
		})
	}
}

func TestSyncer_Sync_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid source collection", func(t *testing.T) {
		src := newStore(t, map[string]string{"words-1": "not json"})
		_, err := NewSyncer(src, storage.NewMemory(), &bytes.Buffer{}).Sync(ctx, []string{"1"}, SyncOptions{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("source read failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := mock_storage.NewMockKeyValue(ctrl)
		wantErr := errors.New("connection lost")
		src.EXPECT().Get(gomock.Any(), "words-1").Return(nil, false, wantErr)

		_, err := NewSyncer(src, storage.NewMemory(), &bytes.Buffer{}).Sync(ctx, []string{"1"}, SyncOptions{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("target write failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dst := mock_storage.NewMockKeyValue(ctrl)
		wantErr := errors.New("read only")
		dst.EXPECT().Get(gomock.Any(), "words-1").Return(nil, false, nil)
		dst.EXPECT().Set(gomock.Any(), "words-1", []byte(`[]`)).Return(wantErr)

		src := newStore(t, map[string]string{"words-1": `[]`})
		_, err := NewSyncer(src, dst, &bytes.Buffer{}).Sync(ctx, []string{"1"}, SyncOptions{})
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestSyncer_Sync_SQLTargetWritesUserInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	target := storage.NewSQLStore(sqlx.NewDb(db, "sqlite3"))

	for _, key := range []string{"words-1", "flashcards-1"} {
		mock.ExpectQuery("SELECT entry_value FROM kv_entries").
			WithArgs(key).
			WillReturnRows(sqlmock.NewRows([]string{"entry_value"}))
	}
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("words-1", `[{"id":"w"}]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("flashcards-1", `[]`, sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	src := newStore(t, map[string]string{
		"words-1":      `[{"id":"w"}]`,
		"flashcards-1": `[]`,
	})
	var out bytes.Buffer
	_, err = NewSyncer(src, target, &out).Sync(context.Background(), []string{"1"}, SyncOptions{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "save flashcards-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

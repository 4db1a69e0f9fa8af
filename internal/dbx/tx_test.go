package dbx

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "dbx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func rows(t *testing.T, q Querier) int {
	t.Helper()
	var n int
	require.NoError(t, q.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM kv`).Scan(&n))
	return n
}

func insert(ctx context.Context, q Querier, k string) error {
	_, err := q.ExecContext(ctx, `INSERT INTO kv(k, v) VALUES (?, 'x')`, k)
	return err
}

func TestInTx(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		fn       func(ctx context.Context) func(Querier) error
		wantErr  error
		wantRows int
	}{
		{
			name: "commit",
			fn: func(ctx context.Context) func(Querier) error {
				return func(q Querier) error { return insert(ctx, q, "a") }
			},
			wantRows: 1,
		},
		{
			name: "fn error rolls back",
			fn: func(ctx context.Context) func(Querier) error {
				return func(q Querier) error {
					if err := insert(ctx, q, "a"); err != nil {
						return err
					}
					return boom
				}
			},
			wantErr:  boom,
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openDB(t)
			ctx := context.Background()

			err := InTx(ctx, db, tt.fn(ctx))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantRows, rows(t, db))
		})
	}
}

func TestInTx_SeesItsOwnWrites(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	require.NoError(t, InTx(ctx, db, func(q Querier) error {
		if err := insert(ctx, q, "a"); err != nil {
			return err
		}
		assert.Equal(t, 1, rows(t, q))
		return nil
	}))
}

func TestInTx_PanicRollsBackAndPropagates(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	assert.PanicsWithValue(t, "kaput", func() {
		_ = InTx(ctx, db, func(q Querier) error {
			require.NoError(t, insert(ctx, q, "a"))
			panic("kaput")
		})
	})
	assert.Equal(t, 0, rows(t, db))
}

func TestInTx_BeginError(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Close())

	called := false
	err := InTx(context.Background(), db, func(Querier) error {
		called = true
		return nil
	})
	require.ErrorContains(t, err, "begin tx")
	assert.False(t, called)
}

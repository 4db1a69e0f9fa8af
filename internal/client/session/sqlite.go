package session

import (
	"context"
	"database/sql"

	"github.com/elducche/mddcli/internal/client/storage"
	"github.com/elducche/mddcli/internal/logging"
)

// SQLiteStore keeps the token in the local client database, so a session
// survives restarts of the CLI.
type SQLiteStore struct {
	kv  *storage.KV
	log logging.Logger
}

func NewSQLiteStore(db *sql.DB, log logging.Logger) *SQLiteStore {
	return &SQLiteStore{kv: storage.NewKV(db), log: log}
}

func (s *SQLiteStore) Load(ctx context.Context) (string, bool, error) {
	return s.kv.Get(ctx, TokenKey)
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	_, replaced, err := s.kv.Swap(ctx, TokenKey, token)
	if err != nil {
		return err
	}
	if replaced {
		s.log.Debug(ctx, "replaced stored session token")
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, TokenKey)
}

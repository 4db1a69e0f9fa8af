package cli

import (
	"context"
	"fmt"

	"github.com/elducche/mddcli/internal/client/config"
	"github.com/elducche/mddcli/internal/client/session"
	"github.com/elducche/mddcli/internal/client/storage"
	"github.com/elducche/mddcli/internal/logging"
)

// redisKeyPrefix namespaces the token key in a shared redis.
const redisKeyPrefix = "mdd:"

// openSessionStore builds the configured token store and a func releasing
// whatever backs it.
func openSessionStore(ctx context.Context, c *config.Config, log logging.Logger) (session.Store, func() error, error) {
	switch c.SessionBackend {
	case config.SessionMemory:
		return session.NewMemoryStore(), nil, nil

	case config.SessionRedis:
		rdb, err := session.DialRedis(ctx, c.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(rdb, redisKeyPrefix), rdb.Close, nil

	case config.SessionSQLite, "":
		db, err := storage.Open(ctx, c.DBPath)
		if err != nil {
			log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
			return nil, nil, err
		}
		return session.NewSQLiteStore(db, log), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
}

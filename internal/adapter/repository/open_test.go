package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/debtnet/internal/infrastructure/config"
)

func TestOpen_Backends(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "memory", cfg: config.Config{StoreBackend: config.BackendMemory}},
		{name: "file", cfg: config.Config{StoreBackend: config.BackendFile, DataDir: filepath.Join(dir, "files")}},
		{name: "sqlite", cfg: config.Config{StoreBackend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "debtnet.db")}},
		{name: "redis", cfg: config.Config{StoreBackend: config.BackendRedis, RedisURL: fmt.Sprintf("redis://%s", mr.Addr())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv, closeFn, err := Open(ctx, &tt.cfg, zerolog.Nop())
			require.NoError(t, err)
			require.NotNil(t, closeFn)
			defer closeFn()

			require.NoError(t, kv.Set(ctx, "SavedDebts", []byte(`[]`)))
			got, err := kv.Get(ctx, "SavedDebts")
			require.NoError(t, err)
			assert.Equal(t, "[]", string(got))
		})
	}
}

func TestOpen_Failures(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "unknown", cfg: config.Config{StoreBackend: "etcd"}},
		{name: "redis down", cfg: config.Config{StoreBackend: config.BackendRedis, RedisURL: "redis://" + addr, ConnectTimeout: 200 * time.Millisecond}},
		{name: "postgres bad url", cfg: config.Config{StoreBackend: config.BackendPostgres, DatabaseURL: "://bad"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, closeFn, err := Open(context.Background(), &tt.cfg, zerolog.Nop())
			assert.Error(t, err)
			assert.Nil(t, kv)
			assert.NotNil(t, closeFn)
		})
	}
}

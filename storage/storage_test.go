package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/storage/database/dummy"
	"github.com/trezcool/studyhub/storage/database/sqlx"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		storage core.StorageConfig
		db      core.DatabaseConfig
		want    interface{}
		wantErr string
	}{
		{name: "memory", storage: core.StorageConfig{Backend: core.StorageMemory}, want: &dummydb.Store{}},
		{
			name:    "sqlite",
			storage: core.StorageConfig{Backend: core.StorageDatabase},
			db:      core.DatabaseConfig{Engine: core.EngineSQLite, Path: ":memory:"},
			want:    &sqlxrepos.Store{},
		},
		{name: "unknown backend", storage: core.StorageConfig{Backend: "redis"}, wantErr: `unsupported storage backend "redis"`},
		{
			name:    "unknown engine",
			storage: core.StorageConfig{Backend: core.StorageDatabase},
			db:      core.DatabaseConfig{Engine: "oracle"},
			wantErr: `unsupported database engine "oracle"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeFn, err := Open(&core.Config{Storage: tt.storage, Database: tt.db})
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeFn()) }()

			assert.IsType(t, tt.want, store)
			courses, err := store.ListCourses(context.Background(), 1)
			require.NoError(t, err, "the backend is ready to use")
			assert.Empty(t, courses)
		})
	}
}

// Package storage picks the study.Storage backend the app runs on.
package storage

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
	"github.com/trezcool/studyhub/storage/database"
	"github.com/trezcool/studyhub/storage/database/dummy"
	"github.com/trezcool/studyhub/storage/database/sqlx"
)

// Open returns the backend named by conf.Storage.Backend and the func that releases it.
// The database backend is migrated before being returned.
func Open(conf *core.Config) (study.Storage, func() error, error) {
	switch conf.Storage.Backend {
	case core.StorageMemory:
		db, err := dummydb.Open()
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening memory storage")
		}
		return dummydb.NewStore(db), func() error { return nil }, nil

	case core.StorageDatabase:
		db, err := database.Open(conf)
		if err != nil {
			return nil, nil, err
		}
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return sqlxrepos.NewStore(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", conf.Storage.Backend)
	}
}

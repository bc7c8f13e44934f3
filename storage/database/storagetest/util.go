// Package storagetest holds the behaviour every study.Storage backend must share, plus test helpers.
package storagetest

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/user"
	"github.com/trezcool/studyhub/storage/database"
)

// PrepareDB returns a migrated in-memory SQLite database, closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conf := &core.Config{Database: core.DatabaseConfig{Engine: core.EngineSQLite, Path: ":memory:"}}
	db, err := database.Open(conf)
	require.NoError(t, err, "PrepareDB() failed to open database")
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db), "PrepareDB() failed to migrate database")
	return db
}

func CreateUser(t *testing.T, repo user.Repository, uname, email, pwd string) user.User {
	t.Helper()
	usr := user.User{
		Username:  uname,
		FirstName: "John",
		LastName:  "Doe",
		Email:     email,
		Program:   "Computer Science",
	}
	if pwd != "" {
		require.NoError(t, usr.SetPassword(pwd), "CreateUser() failed")
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	require.NoError(t, err, "CreateUser() failed")
	return usr
}

package main

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/trezcool/studyhub/core/user"
	"github.com/trezcool/studyhub/storage/database"
	"github.com/trezcool/studyhub/storage/database/sqlx"
	"github.com/trezcool/studyhub/storage/database/storagetest"
	"github.com/trezcool/studyhub/storage/seed"
)

func setup(t *testing.T) *commandLine {
	db := storagetest.PrepareDB(t)
	return newCommandLine(db, sqlxrepos.NewStore(db), newValidator())
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantErrAs  interface{} // error type
	extra      interface{}
}

func (tt cliTest) check(t *testing.T, err error) {
	switch {
	case tt.wantErr != nil:
		if err != tt.wantErr {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	case tt.wantErrAs != nil:
		assert.IsType(t, tt.wantErrAs, err)
	case tt.wantErrStr != "":
		if err == nil || err.Error() != tt.wantErrStr {
			t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
		}
	case err != nil:
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	var ran []string
	gooseRunFunc = func(db *sqlx.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		ran = append(ran, command)
		return nil
	}
	t.Cleanup(func() { gooseRunFunc = database.RunMigrations })

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "0"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}
	assert.Equal(t, []string{"up", "up-by-one", "up-to", "down", "down-to", "redo", "reset", "status", "version"}, ran)
}

func Test_commandLine_migrateRunsGoose(t *testing.T) {
	cli := setup(t)
	assert.NoError(t, cli.run([]string{"admin", "migrate", "status"}))
	assert.NoError(t, cli.run([]string{"admin", "migrate", "up"}), "already up to date")
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()
	t.Cleanup(func() { readPasswordFunc = term.ReadPassword })

	type extra struct {
		pwd string
	}
	flags := func(uname, email string) []string {
		return []string{"adduser", "-username", uname, "-email", email, "-firstname", "Jane", "-lastname", "Roe", "-program", "Biology"}
	}
	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "username but no email", args: []string{"adduser", "-username", "jane"}, wantErr: errHelp},
		{name: "no password", args: flags("jane", "jane@example.com"), wantErr: errHelp},
		{name: "weak password", args: flags("jane", "jane@example.com"), extra: extra{pwd: "12345678"}, wantErrAs: validator.ValidationErrors{}},
		{name: "created", args: flags("Jane", "Jane@Example.com"), extra: extra{pwd: "K33p!Learning#"}},
		{name: "username taken", args: flags("jane", "other@example.com"), extra: extra{pwd: "K33p!Learning#"}, wantErrStr: user.ErrUsernameExists.Error()},
		{name: "email taken", args: flags("other", "jane@example.com"), extra: extra{pwd: "K33p!Learning#"}, wantErrStr: user.ErrEmailExists.Error()},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}

	usr, err := cli.usrSvc.Authenticate(ctx, "jane@example.com", "K33p!Learning#")
	require.NoError(t, err)
	assert.Equal(t, "jane", usr.Username)
	assert.Equal(t, "Biology", usr.Program)
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	require.NoError(t, cli.run([]string{"admin", "seed"}))
	require.NoError(t, cli.run([]string{"admin", "seed"}), "seeding twice is a no-op")

	usr, err := cli.usrSvc.Authenticate(ctx, seed.DemoUsername, seed.DemoPassword)
	require.NoError(t, err)
	courses, err := cli.store.ListCourses(ctx, usr.ID)
	require.NoError(t, err)
	assert.Len(t, courses, 4)
}

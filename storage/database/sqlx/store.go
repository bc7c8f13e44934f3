package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
	"github.com/trezcool/studyhub/core/user"
)

// Store implements study.Storage on top of PostgreSQL or SQLite.
// Every method runs independent statements: there are no transactions spanning several writes.
type Store struct {
	db   *sqlx.DB
	sb   sq.StatementBuilderType
	like string // case-insensitive LIKE operator of the engine
}

var _ study.Storage = (*Store)(nil) // interface compliance check

func NewStore(db *sqlx.DB) *Store {
	s := &Store{
		db:   db,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Question),
		like: "LIKE", // ASCII-only case folding on SQLite
	}
	if db.DriverName() == core.EnginePostgres {
		s.sb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		s.like = "ILIKE"
	}
	return s
}

func (s *Store) selectFrom(table string) sq.SelectBuilder {
	return s.sb.Select("*").From(table)
}

// get returns the first row matched by q, or nil.
func get[T any](ctx context.Context, s *Store, q sq.SelectBuilder, what string) (*T, error) {
	query, args, err := q.Limit(1).ToSql()
	if err != nil {
		return nil, errors.Wrapf(err, "building %s query", what)
	}
	var rec T
	if err = s.db.GetContext(ctx, &rec, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "selecting %s", what)
	}
	return &rec, nil
}

func list[T any](ctx context.Context, s *Store, q sq.SelectBuilder, what string) ([]T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, errors.Wrapf(err, "building %s query", what)
	}
	recs := make([]T, 0)
	if err = s.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, errors.Wrapf(err, "selecting %s", what)
	}
	return recs, nil
}

// insertQuery returns a named INSERT ... RETURNING * statement for the given columns.
func insertQuery(table string, cols ...string) string {
	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = quote(col)
		params[i] = ":" + col
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(quoted, ", "), strings.Join(params, ", "),
	)
}

func insert[T any](ctx context.Context, s *Store, namedQuery string, arg interface{}, what string) (T, error) {
	var rec T
	query, args, err := sqlx.Named(namedQuery, arg)
	if err != nil {
		return rec, errors.Wrapf(err, "binding %s", what)
	}
	if err = s.db.QueryRowxContext(ctx, s.db.Rebind(query), args...).StructScan(&rec); err != nil {
		return rec, errors.Wrapf(err, "inserting %s", what)
	}
	return rec, nil
}

// update sets the given columns on the rows matched by where and returns the first updated row, or nil.
func update[T any](ctx context.Context, s *Store, table string, where sq.Sqlizer, set map[string]interface{}, what string) (*T, error) {
	if len(set) == 0 {
		return get[T](ctx, s, s.selectFrom(table).Where(where), what)
	}
	query, args, err := s.sb.Update(table).SetMap(set).Where(where).Suffix("RETURNING *").ToSql()
	if err != nil {
		return nil, errors.Wrapf(err, "building %s update", what)
	}
	var rec T
	if err = s.db.QueryRowxContext(ctx, query, args...).StructScan(&rec); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "updating %s", what)
	}
	return &rec, nil
}

func (s *Store) delete(ctx context.Context, table string, where sq.Sqlizer, what string) (bool, error) {
	query, args, err := s.sb.Delete(table).Where(where).ToSql()
	if err != nil {
		return false, errors.Wrapf(err, "building %s delete", what)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrapf(err, "deleting %s", what)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, "deleting %s", what)
	}
	return n > 0, nil
}

// touched returns the next updated_at of the row matched by where (see study.Touch), or false when there is no row.
func (s *Store) touched(ctx context.Context, table string, where sq.Sqlizer) (time.Time, bool, error) {
	query, args, err := s.sb.Select("updated_at").From(table).Where(where).Limit(1).ToSql()
	if err != nil {
		return time.Time{}, false, errors.Wrap(err, "building updated_at query")
	}
	var prev time.Time
	if err = s.db.GetContext(ctx, &prev, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, errors.Wrapf(err, "selecting %s.updated_at", table)
	}
	return study.Touch(prev.UTC(), core.Now()), true, nil
}

func quote(col string) string {
	if col == "interval" {
		return `"interval"`
	}
	return col
}

func byID(id int) sq.Eq { return sq.Eq{"id": id} }

// set adds col to m when v is set.
func set[T any](m map[string]interface{}, col string, v *T) {
	if v != nil {
		m[quote(col)] = *v
	}
}

// Users

var insertUserQuery = insertQuery("users", "username", "password", "first_name", "last_name", "email", "program", "avatar")

func (s *Store) GetUser(ctx context.Context, id int) (*user.User, error) {
	return get[user.User](ctx, s, s.selectFrom("users").Where(byID(id)), "user")
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	return get[user.User](ctx, s, s.selectFrom("users").Where(sq.Eq{"username": username}), "user")
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return get[user.User](ctx, s, s.selectFrom("users").Where(sq.Eq{"email": email}), "user")
}

func (s *Store) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	return insert[user.User](ctx, s, insertUserQuery, usr, "user")
}

// Dashboard

func (s *Store) GetDashboardStats(ctx context.Context, userID int) (study.DashboardStats, error) {
	assignments, err := s.ListAssignments(ctx, userID)
	if err != nil {
		return study.DashboardStats{}, err
	}
	courses, err := s.ListCourses(ctx, userID)
	if err != nil {
		return study.DashboardStats{}, err
	}
	sessions, err := s.ListStudySessions(ctx, userID)
	if err != nil {
		return study.DashboardStats{}, err
	}
	return study.ComputeDashboardStats(core.Now(), assignments, courses, sessions), nil
}

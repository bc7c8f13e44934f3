package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
	"github.com/trezcool/studyhub/core/user"
)

// ErrUniqueViolation mirrors the unique constraints of the relational schema.
var ErrUniqueViolation = errors.New("unique constraint violation")

type Store struct {
	db *DB
}

var _ study.Storage = (*Store)(nil) // interface compliance check

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Users

func (s *Store) GetUser(_ context.Context, id int) (*user.User, error) {
	usr, _ := s.db.users.get(id)
	return usr, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*user.User, error) {
	usr, _ := s.db.users.find(func(u user.User) bool { return u.Username == username })
	return usr, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	usr, _ := s.db.users.find(func(u user.User) bool { return u.Email == email })
	return usr, nil
}

func (s *Store) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	// check & insert under one lock so two identical usernames cannot both get in
	s.db.users.Lock()
	defer s.db.users.Unlock()

	for _, u := range s.db.users.rows {
		if u.Username == usr.Username || u.Email == usr.Email {
			return user.User{}, errors.Wrap(ErrUniqueViolation, "inserting user")
		}
	}
	usr.ID = s.db.nextID()
	s.db.users.rows[usr.ID] = usr
	return usr, nil
}

// Courses

func (s *Store) ListCourses(_ context.Context, userID int) ([]study.Course, error) {
	return s.db.courses.filter(func(c study.Course) bool { return c.UserID == userID }), nil
}

func (s *Store) GetCourse(_ context.Context, id int) (*study.Course, error) {
	c, _ := s.db.courses.get(id)
	return c, nil
}

func (s *Store) CreateCourse(_ context.Context, nc study.NewCourse) (study.Course, error) {
	c := nc.Build()
	c.ID = s.db.nextID()
	return s.db.courses.insert(c.ID, c), nil
}

func (s *Store) UpdateCourse(_ context.Context, id int, upd study.CourseUpdate) (*study.Course, error) {
	c, _ := s.db.courses.update(id, upd.Apply)
	return c, nil
}

func (s *Store) DeleteCourse(_ context.Context, id int) (bool, error) {
	return s.db.courses.delete(id), nil
}

// Assignments

func (s *Store) ListAssignments(_ context.Context, userID int) ([]study.Assignment, error) {
	return s.db.assignments.filter(func(a study.Assignment) bool { return a.UserID == userID }), nil
}

func (s *Store) ListAssignmentsByCourse(_ context.Context, courseID int) ([]study.Assignment, error) {
	return s.db.assignments.filter(func(a study.Assignment) bool { return a.CourseID == courseID }), nil
}

func (s *Store) ListUpcomingAssignments(_ context.Context, userID, limit int) ([]study.Assignment, error) {
	now := core.Now()
	upcoming := s.db.assignments.filter(func(a study.Assignment) bool {
		return a.UserID == userID && a.Status != study.StatusCompleted && a.DueDate.After(now)
	})
	sort.SliceStable(upcoming, func(i, j int) bool { // stable: ties stay ordered by id
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})
	return truncate(upcoming, limit), nil
}

func (s *Store) GetAssignment(_ context.Context, id int) (*study.Assignment, error) {
	a, _ := s.db.assignments.get(id)
	return a, nil
}

func (s *Store) CreateAssignment(_ context.Context, na study.NewAssignment) (study.Assignment, error) {
	a := na.Build(core.Now())
	a.ID = s.db.nextID()
	return s.db.assignments.insert(a.ID, a), nil
}

func (s *Store) UpdateAssignment(_ context.Context, id int, upd study.AssignmentUpdate) (*study.Assignment, error) {
	a, _ := s.db.assignments.update(id, upd.Apply)
	return a, nil
}

func (s *Store) DeleteAssignment(_ context.Context, id int) (bool, error) {
	return s.db.assignments.delete(id), nil
}

// Notes

func (s *Store) ListNotes(_ context.Context, userID int) ([]study.Note, error) {
	return s.db.notes.filter(func(n study.Note) bool { return n.UserID == userID }), nil
}

func (s *Store) ListNotesByCourse(_ context.Context, courseID int) ([]study.Note, error) {
	return s.db.notes.filter(func(n study.Note) bool { return n.CourseID.Valid && n.CourseID.Int == courseID }), nil
}

func (s *Store) ListRecentNotes(_ context.Context, userID, limit int) ([]study.Note, error) {
	notes := s.db.notes.filter(func(n study.Note) bool { return n.UserID == userID })
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].UpdatedAt.Equal(notes[j].UpdatedAt) {
			return notes[i].ID > notes[j].ID
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	return truncate(notes, limit), nil
}

func (s *Store) SearchNotes(_ context.Context, userID int, query string) ([]study.Note, error) {
	q := strings.ToLower(query)
	return s.db.notes.filter(func(n study.Note) bool {
		return n.UserID == userID &&
			(strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q))
	}), nil
}

func (s *Store) GetNote(_ context.Context, id int) (*study.Note, error) {
	n, _ := s.db.notes.get(id)
	return n, nil
}

func (s *Store) CreateNote(_ context.Context, nn study.NewNote) (study.Note, error) {
	n := nn.Build(core.Now())
	n.ID = s.db.nextID()
	return s.db.notes.insert(n.ID, n), nil
}

func (s *Store) UpdateNote(_ context.Context, id int, upd study.NoteUpdate) (*study.Note, error) {
	now := core.Now()
	n, _ := s.db.notes.update(id, func(n *study.Note) { upd.Apply(n, now) })
	return n, nil
}

func (s *Store) DeleteNote(_ context.Context, id int) (bool, error) {
	return s.db.notes.delete(id), nil
}

// Study Sessions

func (s *Store) ListStudySessions(_ context.Context, userID int) ([]study.StudySession, error) {
	return s.db.studySessions.filter(func(ss study.StudySession) bool { return ss.UserID == userID }), nil
}

func (s *Store) CreateStudySession(_ context.Context, ns study.NewStudySession) (study.StudySession, error) {
	ss := ns.Build()
	ss.ID = s.db.nextID()
	return s.db.studySessions.insert(ss.ID, ss), nil
}

// Dashboard

func (s *Store) GetDashboardStats(ctx context.Context, userID int) (study.DashboardStats, error) {
	assignments, _ := s.ListAssignments(ctx, userID)
	courses, _ := s.ListCourses(ctx, userID)
	sessions, _ := s.ListStudySessions(ctx, userID)
	return study.ComputeDashboardStats(core.Now(), assignments, courses, sessions), nil
}

func truncate[T any](recs []T, limit int) []T {
	if limit = study.Limit(limit); len(recs) > limit {
		return recs[:limit]
	}
	return recs
}

package sqlxrepos

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

// Courses

var insertCourseQuery = insertQuery("courses", "user_id", "name", "code", "color", "credits", "instructor", "semester", "year")

func (s *Store) ListCourses(ctx context.Context, userID int) ([]study.Course, error) {
	return list[study.Course](ctx, s, s.selectFrom("courses").Where(sq.Eq{"user_id": userID}).OrderBy("id"), "courses")
}

func (s *Store) GetCourse(ctx context.Context, id int) (*study.Course, error) {
	return get[study.Course](ctx, s, s.selectFrom("courses").Where(byID(id)), "course")
}

func (s *Store) CreateCourse(ctx context.Context, nc study.NewCourse) (study.Course, error) {
	return insert[study.Course](ctx, s, insertCourseQuery, nc.Build(), "course")
}

func (s *Store) UpdateCourse(ctx context.Context, id int, upd study.CourseUpdate) (*study.Course, error) {
	m := make(map[string]interface{})
	set(m, "name", upd.Name)
	set(m, "code", upd.Code)
	set(m, "color", upd.Color)
	set(m, "credits", upd.Credits)
	set(m, "instructor", upd.Instructor)
	set(m, "semester", upd.Semester)
	set(m, "year", upd.Year)
	return update[study.Course](ctx, s, "courses", byID(id), m, "course")
}

func (s *Store) DeleteCourse(ctx context.Context, id int) (bool, error) {
	return s.delete(ctx, "courses", byID(id), "course")
}

// Assignments

var insertAssignmentQuery = insertQuery(
	"assignments",
	"user_id", "course_id", "title", "description", "due_date", "priority", "status", "grade", "max_points", "type", "created_at",
)

func (s *Store) ListAssignments(ctx context.Context, userID int) ([]study.Assignment, error) {
	return list[study.Assignment](ctx, s, s.selectFrom("assignments").Where(sq.Eq{"user_id": userID}).OrderBy("id"), "assignments")
}

func (s *Store) ListAssignmentsByCourse(ctx context.Context, courseID int) ([]study.Assignment, error) {
	return list[study.Assignment](ctx, s, s.selectFrom("assignments").Where(sq.Eq{"course_id": courseID}).OrderBy("id"), "assignments")
}

func (s *Store) ListUpcomingAssignments(ctx context.Context, userID, limit int) ([]study.Assignment, error) {
	q := s.selectFrom("assignments").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.NotEq{"status": study.StatusCompleted}).
		Where(sq.Gt{"due_date": core.Now()}).
		OrderBy("due_date", "id").
		Limit(uint64(study.Limit(limit)))
	return list[study.Assignment](ctx, s, q, "upcoming assignments")
}

func (s *Store) GetAssignment(ctx context.Context, id int) (*study.Assignment, error) {
	return get[study.Assignment](ctx, s, s.selectFrom("assignments").Where(byID(id)), "assignment")
}

func (s *Store) CreateAssignment(ctx context.Context, na study.NewAssignment) (study.Assignment, error) {
	return insert[study.Assignment](ctx, s, insertAssignmentQuery, na.Build(core.Now()), "assignment")
}

func (s *Store) UpdateAssignment(ctx context.Context, id int, upd study.AssignmentUpdate) (*study.Assignment, error) {
	m := make(map[string]interface{})
	set(m, "course_id", upd.CourseID)
	set(m, "title", upd.Title)
	set(m, "description", upd.Description)
	if upd.DueDate != nil {
		m["due_date"] = study.Timestamp(*upd.DueDate)
	}
	set(m, "priority", upd.Priority)
	set(m, "status", upd.Status)
	set(m, "grade", upd.Grade)
	set(m, "max_points", upd.MaxPoints)
	set(m, "type", upd.Type)
	return update[study.Assignment](ctx, s, "assignments", byID(id), m, "assignment")
}

func (s *Store) DeleteAssignment(ctx context.Context, id int) (bool, error) {
	return s.delete(ctx, "assignments", byID(id), "assignment")
}

// Notes

// noteRow maps the tags array column.
type noteRow struct {
	study.Note
	Tags pq.StringArray `db:"tags"`
}

func newNoteRow(n study.Note) noteRow {
	return noteRow{Note: n, Tags: n.Tags}
}

func (r noteRow) note() study.Note {
	n := r.Note
	n.Tags = r.Tags
	return n
}

func notes(rows []noteRow) []study.Note {
	ns := make([]study.Note, len(rows))
	for i, r := range rows {
		ns[i] = r.note()
	}
	return ns
}

func notePtr(r *noteRow) *study.Note {
	if r == nil {
		return nil
	}
	n := r.note()
	return &n
}

var insertNoteQuery = insertQuery("notes", "user_id", "course_id", "title", "content", "tags", "is_shared", "created_at", "updated_at")

func (s *Store) listNotes(ctx context.Context, q sq.SelectBuilder, what string) ([]study.Note, error) {
	rows, err := list[noteRow](ctx, s, q, what)
	if err != nil {
		return nil, err
	}
	return notes(rows), nil
}

func (s *Store) ListNotes(ctx context.Context, userID int) ([]study.Note, error) {
	return s.listNotes(ctx, s.selectFrom("notes").Where(sq.Eq{"user_id": userID}).OrderBy("id"), "notes")
}

func (s *Store) ListNotesByCourse(ctx context.Context, courseID int) ([]study.Note, error) {
	return s.listNotes(ctx, s.selectFrom("notes").Where(sq.Eq{"course_id": courseID}).OrderBy("id"), "notes")
}

func (s *Store) ListRecentNotes(ctx context.Context, userID, limit int) ([]study.Note, error) {
	q := s.selectFrom("notes").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id DESC").
		Limit(uint64(study.Limit(limit)))
	return s.listNotes(ctx, q, "recent notes")
}

func (s *Store) SearchNotes(ctx context.Context, userID int, query string) ([]study.Note, error) {
	pattern := "%" + escapeLike(query) + "%"
	q := s.selectFrom("notes").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Or{
			sq.Expr("title "+s.like+` ? ESCAPE '\'`, pattern),
			sq.Expr("content "+s.like+` ? ESCAPE '\'`, pattern),
		}).
		OrderBy("id")
	return s.listNotes(ctx, q, "notes")
}

func (s *Store) GetNote(ctx context.Context, id int) (*study.Note, error) {
	r, err := get[noteRow](ctx, s, s.selectFrom("notes").Where(byID(id)), "note")
	if err != nil {
		return nil, err
	}
	return notePtr(r), nil
}

func (s *Store) CreateNote(ctx context.Context, nn study.NewNote) (study.Note, error) {
	r, err := insert[noteRow](ctx, s, insertNoteQuery, newNoteRow(nn.Build(core.Now())), "note")
	if err != nil {
		return study.Note{}, err
	}
	return r.note(), nil
}

func (s *Store) UpdateNote(ctx context.Context, id int, upd study.NoteUpdate) (*study.Note, error) {
	updatedAt, ok, err := s.touched(ctx, "notes", byID(id))
	if err != nil || !ok {
		return nil, err
	}
	m := map[string]interface{}{"updated_at": updatedAt}
	set(m, "course_id", upd.CourseID)
	set(m, "title", upd.Title)
	set(m, "content", upd.Content)
	if upd.Tags != nil {
		m["tags"] = pq.StringArray(*upd.Tags)
	}
	set(m, "is_shared", upd.IsShared)
	r, err := update[noteRow](ctx, s, "notes", byID(id), m, "note")
	if err != nil {
		return nil, err
	}
	return notePtr(r), nil
}

func (s *Store) DeleteNote(ctx context.Context, id int) (bool, error) {
	return s.delete(ctx, "notes", byID(id), "note")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the LIKE wildcards of s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Study sessions

var insertStudySessionQuery = insertQuery("study_sessions", "user_id", "course_id", "duration", "date", "notes")

func (s *Store) ListStudySessions(ctx context.Context, userID int) ([]study.StudySession, error) {
	return list[study.StudySession](ctx, s, s.selectFrom("study_sessions").Where(sq.Eq{"user_id": userID}).OrderBy("id"), "study sessions")
}

func (s *Store) CreateStudySession(ctx context.Context, ns study.NewStudySession) (study.StudySession, error) {
	return insert[study.StudySession](ctx, s, insertStudySessionQuery, ns.Build(), "study session")
}

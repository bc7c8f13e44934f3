package echoapi_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

func TestStudyApi_courses(t *testing.T) {
	app := setup(t)
	_, token := app.createUser(t, "alice")
	_, bobToken := app.createUser(t, "bob")

	var course study.Course
	code := app.do(t, http.MethodPost, "/v1/courses", token, study.NewCourse{
		Name: "Introduction to Computer Science", Code: "CS101", Semester: "Fall", Year: 2024,
	}, &course)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, study.DefaultCourseColor, course.Color)
	assert.Equal(t, study.DefaultCourseCredits, course.Credits)

	path := "/v1/courses/" + strconv.Itoa(course.ID)
	renamed := course
	renamed.Name = "CS Basics"

	tests := []httpTest{
		{
			name: "create: invalid", method: http.MethodPost, path: "/v1/courses", token: token,
			body: []byte(`{"color": "blue"}`), wantCode: http.StatusBadRequest,
			wantData: []byte(`{
				"name": "this field is required",
				"code": "this field is required",
				"color": "color must be a valid HEX color",
				"semester": "this field is required",
				"year": "this field is required"
			}`),
		},
		{name: "list", path: "/v1/courses", token: token, wantCode: http.StatusOK, wantData: marchallList(t, course)},
		{name: "list (other user)", path: "/v1/courses", token: bobToken, wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "get", path: path, token: token, wantCode: http.StatusOK, wantData: marchallObj(t, course)},
		{name: "get (other user)", path: path, token: bobToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "get (bad id)", path: "/v1/courses/abc", token: token, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{
			name: "update: blank name", method: http.MethodPut, path: path, token: token,
			body: []byte(`{"name": "  "}`), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name": "name cannot be blank"}`),
		},
		{
			name: "update (other user)", method: http.MethodPut, path: path, token: bobToken,
			body: []byte(`{"name": "mine"}`), wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "update", method: http.MethodPut, path: path, token: token,
			body: []byte(`{"name": "CS Basics"}`), wantCode: http.StatusOK, wantData: marchallObj(t, renamed),
		},
		{name: "course assignments", path: path + "/assignments", token: token, wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "delete (other user)", method: http.MethodDelete, path: path, token: bobToken, wantCode: http.StatusNotFound},
		{name: "delete", method: http.MethodDelete, path: path, token: token, wantCode: http.StatusNoContent},
		{name: "delete (gone)", method: http.MethodDelete, path: path, token: token, wantCode: http.StatusNotFound},
	}
	app.run(t, tests)
}

func TestStudyApi_assignments(t *testing.T) {
	app := setup(t)
	alice, token := app.createUser(t, "alice")
	ctx := context.Background()

	course, err := app.svc.CreateCourse(ctx, alice.ID, study.NewCourse{Name: "Calculus", Code: "MATH201", Semester: "Fall", Year: 2024})
	require.NoError(t, err)

	now := core.Now()
	newAssignment := func(title string, due time.Duration, status string) study.Assignment {
		a, err := app.svc.CreateAssignment(ctx, alice.ID, study.NewAssignment{
			CourseID: course.ID, Title: title, DueDate: now.Add(due), Status: status,
		})
		require.NoError(t, err)
		return a
	}
	late := newAssignment("Problem Set 1", -24*time.Hour, "")
	soon := newAssignment("Problem Set 2", 24*time.Hour, "")
	later := newAssignment("Midterm", 72*time.Hour, "")
	done := newAssignment("Quiz", 48*time.Hour, study.StatusCompleted)

	completed := soon
	completed.Status = study.StatusCompleted
	graded := completed
	graded.Grade = null.Float64From(90)

	tests := []httpTest{
		{name: "list", path: "/v1/assignments", token: token, wantCode: http.StatusOK, wantData: marchallList(t, late, soon, later, done)},
		{name: "upcoming", path: "/v1/assignments/upcoming", token: token, wantCode: http.StatusOK, wantData: marchallList(t, soon, later)},
		{name: "upcoming (limit)", path: "/v1/assignments/upcoming?limit=1", token: token, wantCode: http.StatusOK, wantData: marchallList(t, soon)},
		{
			name: "by course", path: "/v1/courses/" + strconv.Itoa(course.ID) + "/assignments", token: token,
			wantCode: http.StatusOK, wantData: marchallList(t, late, soon, later, done),
		},
		{
			name: "create: bad priority", method: http.MethodPost, path: "/v1/assignments", token: token,
			body: marchallObj(t, study.NewAssignment{CourseID: course.ID, Title: "Essay", DueDate: now, Priority: "urgent"}),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"priority": "priority must be one of [low medium high]"}`),
		},
		{
			name: "complete", method: http.MethodPut, path: "/v1/assignments/" + strconv.Itoa(soon.ID), token: token,
			body: []byte(`{"status": "completed"}`), wantCode: http.StatusOK, wantData: marchallObj(t, completed),
		},
		{
			name: "grade", method: http.MethodPut, path: "/v1/assignments/" + strconv.Itoa(soon.ID), token: token,
			body: []byte(`{"grade": 90}`), wantCode: http.StatusOK, wantData: marchallObj(t, graded),
		},
		{
			name: "clear grade", method: http.MethodPut, path: "/v1/assignments/" + strconv.Itoa(soon.ID), token: token,
			body: []byte(`{"grade": null}`), wantCode: http.StatusOK, wantData: marchallObj(t, completed),
		},
		{name: "upcoming (after completion)", path: "/v1/assignments/upcoming", token: token, wantCode: http.StatusOK, wantData: marchallList(t, later)},
		{name: "delete", method: http.MethodDelete, path: "/v1/assignments/" + strconv.Itoa(late.ID), token: token, wantCode: http.StatusNoContent},
		{name: "get (deleted)", path: "/v1/assignments/" + strconv.Itoa(late.ID), token: token, wantCode: http.StatusNotFound},
	}
	app.run(t, tests)
}

func TestStudyApi_notes(t *testing.T) {
	app := setup(t)
	_, token := app.createUser(t, "alice")

	var python, chem study.Note
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/v1/notes", token,
		study.NewNote{Title: "Python Basics", Content: "Variables and loops", Tags: []string{"cs"}}, &python))
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/v1/notes", token,
		study.NewNote{Title: "Chemistry", Content: "Organic compounds"}, &chem))

	var edited study.Note
	require.Equal(t, http.StatusOK, app.do(t, http.MethodPut, "/v1/notes/"+strconv.Itoa(python.ID), token,
		study.NoteUpdate{Content: strPtr("Functions and classes")}, &edited))
	assert.Equal(t, "Functions and classes", edited.Content)
	assert.True(t, edited.UpdatedAt.After(python.UpdatedAt))

	tests := []httpTest{
		{name: "list", path: "/v1/notes", token: token, wantCode: http.StatusOK, wantData: marchallList(t, edited, chem)},
		{name: "recent", path: "/v1/notes/recent", token: token, wantCode: http.StatusOK, wantData: marchallList(t, edited, chem)},
		{name: "recent (limit)", path: "/v1/notes/recent?limit=1", token: token, wantCode: http.StatusOK, wantData: marchallList(t, edited)},
		{name: "search title", path: "/v1/notes/search?q=PYTHON", token: token, wantCode: http.StatusOK, wantData: marchallList(t, edited)},
		{name: "search content", path: "/v1/notes/search?q=organic", token: token, wantCode: http.StatusOK, wantData: marchallList(t, chem)},
		{name: "search blank", path: "/v1/notes/search?q=", token: token, wantCode: http.StatusOK, wantData: marchallList(t)},
		{
			name: "create: blank tag", method: http.MethodPost, path: "/v1/notes", token: token,
			body: []byte(`{"title": "t", "content": "c", "tags": [" "]}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"tags[0]": "tags[0] cannot be blank"}`),
		},
	}
	app.run(t, tests)
}

func TestStudyApi_dashboard(t *testing.T) {
	app := setup(t)
	alice, token := app.createUser(t, "alice")
	ctx := context.Background()

	tests := []httpTest{
		{
			name: "empty", path: "/v1/dashboard/stats", token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, study.DashboardStats{}),
		},
		{name: "progress (empty)", path: "/v1/progress", token: token, wantCode: http.StatusOK, wantData: marchallList(t)},
	}
	app.run(t, tests)

	course, err := app.svc.CreateCourse(ctx, alice.ID, study.NewCourse{Name: "Physics", Code: "PHYS101", Semester: "Fall", Year: 2024})
	require.NoError(t, err)
	_, err = app.svc.CreateStudySession(ctx, alice.ID, study.NewStudySession{Duration: 90, Date: core.Now().Add(-time.Hour)})
	require.NoError(t, err)

	var stats study.DashboardStats
	require.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/v1/dashboard/stats", token, nil, &stats))
	assert.Equal(t, study.DashboardStats{StudyHours: 1.5, ActiveCourses: 1, CompletedCredits: study.DefaultCourseCredits}, stats)

	var progress []study.CourseProgress
	require.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/v1/progress", token, nil, &progress))
	assert.Equal(t, []study.CourseProgress{{CourseID: course.ID}}, progress)
}

func TestStudyApi_studySessions(t *testing.T) {
	app := setup(t)
	_, token := app.createUser(t, "alice")

	var session study.StudySession
	code := app.do(t, http.MethodPost, "/v1/study-sessions", token, study.NewStudySession{Duration: 45, Date: core.Now()}, &session)
	require.Equal(t, http.StatusCreated, code)

	tests := []httpTest{
		{name: "list", path: "/v1/study-sessions", token: token, wantCode: http.StatusOK, wantData: marchallList(t, session)},
		{
			name: "create: invalid", method: http.MethodPost, path: "/v1/study-sessions", token: token,
			body: []byte(`{"duration": 0}`), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"duration": "this field is required", "date": "this field is required"}`),
		},
	}
	app.run(t, tests)
}

func strPtr(s string) *string { return &s }

package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

const day = 24 * time.Hour

// Run checks the behaviour shared by every study.Storage implementation.
// newStore must return an empty store; it is called once per subtest.
func Run(t *testing.T, newStore func(t *testing.T) study.Storage) {
	tests := []struct {
		name string
		test func(t *testing.T, s study.Storage)
	}{
		{"Users", testUsers},
		{"Courses", testCourses},
		{"Assignments", testAssignments},
		{"UpcomingAssignments", testUpcomingAssignments},
		{"Notes", testNotes},
		{"RecentNotes", testRecentNotes},
		{"SearchNotes", testSearchNotes},
		{"NoteUpdatedAtIncreases", testNoteUpdatedAtIncreases},
		{"StudyGroups", testStudyGroups},
		{"StudySessions", testStudySessions},
		{"DashboardStats", testDashboardStats},
		{"Gamification", testGamification},
		{"UserStats", testUserStats},
		{"Flashcards", testFlashcards},
		{"PomodoroSessions", testPomodoroSessions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.test(t, newStore(t))
		})
	}
}

func ptr[T any](v T) *T { return &v }

// tick makes core.Now advance by one second on every call until the test ends.
func tick(t *testing.T) {
	var mu sync.Mutex
	now := core.Now()
	origNow := core.Now
	core.Now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
	t.Cleanup(func() { core.Now = origNow })
}

func createCourse(t *testing.T, s study.Storage, userID int, code string) study.Course {
	t.Helper()
	c, err := s.CreateCourse(context.Background(), study.NewCourse{
		UserID: userID, Name: "Course " + code, Code: code, Semester: "Fall", Year: 2024,
	})
	require.NoError(t, err)
	return c
}

func createAssignment(t *testing.T, s study.Storage, na study.NewAssignment) study.Assignment {
	t.Helper()
	if na.Title == "" {
		na.Title = "Assignment"
	}
	a, err := s.CreateAssignment(context.Background(), na)
	require.NoError(t, err)
	return a
}

func createNote(t *testing.T, s study.Storage, userID int, title, content string, tags ...string) study.Note {
	t.Helper()
	n, err := s.CreateNote(context.Background(), study.NewNote{UserID: userID, Title: title, Content: content, Tags: tags})
	require.NoError(t, err)
	return n
}

func ids[T any](recs []T, id func(T) int) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = id(r)
	}
	return out
}

func testUsers(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")
	assert.NotZero(t, usr.ID)

	got, err := s.GetUser(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, &usr, got)

	got, err = s.GetUserByUsername(ctx, "student1")
	require.NoError(t, err)
	assert.Equal(t, &usr, got)

	got, err = s.GetUserByEmail(ctx, "student@example.com")
	require.NoError(t, err)
	assert.Equal(t, &usr, got)

	got, err = s.GetUser(ctx, usr.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = s.CreateUser(ctx, usr)
	assert.Error(t, err, "duplicate username and email must be rejected")
}

func testCourses(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")
	other := CreateUser(t, s, "student2", "other@example.com", "")

	courses, err := s.ListCourses(ctx, usr.ID)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	c := createCourse(t, s, usr.ID, "CS101")
	assert.NotZero(t, c.ID)
	assert.Equal(t, study.DefaultCourseColor, c.Color)
	assert.Equal(t, study.DefaultCourseCredits, c.Credits)
	assert.False(t, c.Instructor.Valid)

	c2, err := s.CreateCourse(ctx, study.NewCourse{
		UserID: usr.ID, Name: "Calculus II", Code: "MATH201", Color: "#10b981", Credits: ptr(4),
		Instructor: null.StringFrom("Prof. Johnson"), Semester: "Fall", Year: 2024,
	})
	require.NoError(t, err)
	assert.Equal(t, "#10b981", c2.Color)
	assert.Equal(t, 4, c2.Credits)
	createCourse(t, s, other.ID, "PHYS101")

	got, err := s.GetCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, &c, got)

	courses, err = s.ListCourses(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []study.Course{c, c2}, courses)

	// partial update keeps the other fields
	upd, err := s.UpdateCourse(ctx, c.ID, study.CourseUpdate{Name: ptr("Intro to CS"), Instructor: ptr(null.StringFrom("Dr. Smith"))})
	require.NoError(t, err)
	require.NotNil(t, upd)
	want := c
	want.Name = "Intro to CS"
	want.Instructor = null.StringFrom("Dr. Smith")
	assert.Equal(t, want, *upd)

	got, err = s.GetCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, upd, got)

	// an empty update is a no-op
	upd, err = s.UpdateCourse(ctx, c.ID, study.CourseUpdate{})
	require.NoError(t, err)
	assert.Equal(t, got, upd)

	// clearing a nullable column
	upd, err = s.UpdateCourse(ctx, c.ID, study.CourseUpdate{Instructor: ptr(null.String{})})
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.False(t, upd.Instructor.Valid)

	// updates never create
	upd, err = s.UpdateCourse(ctx, c.ID+1000, study.CourseUpdate{Name: ptr("ghost")})
	require.NoError(t, err)
	assert.Nil(t, upd)
	got, err = s.GetCourse(ctx, c.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := s.DeleteCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.DeleteCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err = s.GetCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testAssignments(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")
	c1 := createCourse(t, s, usr.ID, "CS101")
	c2 := createCourse(t, s, usr.ID, "MATH201")
	due := core.Now().Add(3 * day)

	a := createAssignment(t, s, study.NewAssignment{UserID: usr.ID, CourseID: c1.ID, Title: "Programming Assignment 1", DueDate: due})
	assert.Equal(t, study.PriorityMedium, a.Priority)
	assert.Equal(t, study.StatusPending, a.Status)
	assert.Equal(t, study.TypeAssignment, a.Type)
	assert.True(t, a.DueDate.Equal(due))
	assert.False(t, a.CreatedAt.IsZero())
	assert.False(t, a.Grade.Valid)

	exam := createAssignment(t, s, study.NewAssignment{
		UserID: usr.ID, CourseID: c2.ID, Title: "Midterm", DueDate: due, Priority: study.PriorityHigh,
		Type: study.TypeExam, MaxPoints: null.Float64From(50),
	})

	got, err := s.GetAssignment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, &a, got)

	list, err := s.ListAssignments(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []study.Assignment{a, exam}, list)

	list, err = s.ListAssignmentsByCourse(ctx, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, []study.Assignment{exam}, list)

	list, err = s.ListAssignmentsByCourse(ctx, c2.ID+1000)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	upd, err := s.UpdateAssignment(ctx, exam.ID, study.AssignmentUpdate{
		Status: ptr(study.StatusCompleted), Grade: ptr(null.Float64From(43.5)),
	})
	require.NoError(t, err)
	require.NotNil(t, upd)
	want := exam
	want.Status = study.StatusCompleted
	want.Grade = null.Float64From(43.5)
	assert.Equal(t, want, *upd)

	upd, err = s.UpdateAssignment(ctx, exam.ID+1000, study.AssignmentUpdate{Title: ptr("ghost")})
	require.NoError(t, err)
	assert.Nil(t, upd)

	deleted, err := s.DeleteAssignment(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.DeleteAssignment(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func testUpcomingAssignments(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")
	other := CreateUser(t, s, "student2", "other@example.com", "")
	c := createCourse(t, s, usr.ID, "CS101")
	now := core.Now()

	in5 := createAssignment(t, s, study.NewAssignment{UserID: usr.ID, CourseID: c.ID, DueDate: now.Add(5 * day)})
	in3 := createAssignment(t, s, study.NewAssignment{UserID: usr.ID, CourseID: c.ID, DueDate: now.Add(3 * day)})
	in3b := createAssignment(t, s, study.NewAssignment{
		UserID: usr.ID, CourseID: c.ID, DueDate: now.Add(3 * day), Status: study.StatusInProgress,
	})
	createAssignment(t, s, study.NewAssignment{UserID: usr.ID, CourseID: c.ID, DueDate: now.Add(-2 * day)})
	createAssignment(t, s, study.NewAssignment{
		UserID: usr.ID, CourseID: c.ID, DueDate: now.Add(day), Status: study.StatusCompleted,
	})
	createAssignment(t, s, study.NewAssignment{UserID: other.ID, CourseID: c.ID, DueDate: now.Add(day)})
	id := func(a study.Assignment) int { return a.ID }

	tests := []struct {
		name  string
		limit int
		want  []int
	}{
		{"default limit", 0, []int{in3.ID, in3b.ID, in5.ID}},
		{"negative limit", -1, []int{in3.ID, in3b.ID, in5.ID}},
		{"truncated", 2, []int{in3.ID, in3b.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListUpcomingAssignments(ctx, usr.ID, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got, id))
		})
	}

	got, err := s.ListUpcomingAssignments(ctx, usr.ID+1000, 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func testNotes(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")
	c := createCourse(t, s, usr.ID, "CS101")

	n := createNote(t, s, usr.ID, "Python Basics", "Variables, loops", "python", "basics")
	assert.Equal(t, []string{"python", "basics"}, n.Tags)
	assert.False(t, n.IsShared)
	assert.True(t, n.CreatedAt.Equal(n.UpdatedAt))

	bare := createNote(t, s, usr.ID, "Untagged", "no tags")
	assert.Empty(t, bare.Tags)

	shared, err := s.CreateNote(ctx, study.NewNote{
		UserID: usr.ID, CourseID: null.IntFrom(c.ID), Title: "Integration", Content: "by parts", IsShared: true, Tags: []string{},
	})
	require.NoError(t, err)
	assert.True(t, shared.IsShared)

	got, err := s.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, &n, got)

	// stored tags are not shared with callers
	got.Tags[0] = "mutated"
	got, err = s.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "python", got.Tags[0])

	list, err := s.ListNotesByCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{shared.ID}, ids(list, func(n study.Note) int { return n.ID }))

	list, err = s.ListNotes(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{n.ID, bare.ID, shared.ID}, ids(list, func(n study.Note) int { return n.ID }))

	upd, err := s.UpdateNote(ctx, n.ID, study.NoteUpdate{Content: ptr("Variables, loops, functions"), Tags: ptr([]string{"python"})})
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.Equal(t, n.Title, upd.Title)
	assert.Equal(t, "Variables, loops, functions", upd.Content)
	assert.Equal(t, []string{"python"}, upd.Tags)
	assert.True(t, upd.CreatedAt.Equal(n.CreatedAt))
	assert.True(t, upd.UpdatedAt.After(n.UpdatedAt))

	upd, err = s.UpdateNote(ctx, n.ID+1000, study.NoteUpdate{Title: ptr("ghost")})
	require.NoError(t, err)
	assert.Nil(t, upd)

	deleted, err := s.DeleteNote(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.DeleteNote(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func testRecentNotes(t *testing.T, s study.Storage) {
	ctx := context.Background()
	tick(t)
	usr := CreateUser(t, s, "student1", "student@example.com", "")
	other := CreateUser(t, s, "student2", "other@example.com", "")

	var notes []study.Note
	for _, title := range []string{"one", "two", "three", "four", "five", "six"} {
		notes = append(notes, createNote(t, s, usr.ID, title, "content"))
	}
	createNote(t, s, other.ID, "foreign", "content")

	// touching the oldest note moves it to the top
	_, err := s.UpdateNote(ctx, notes[0].ID, study.NoteUpdate{Title: ptr("one (edited)")})
	require.NoError(t, err)

	id := func(n study.Note) int { return n.ID }

	got, err := s.ListRecentNotes(ctx, usr.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{notes[0].ID, notes[5].ID, notes[4].ID, notes[3].ID, notes[2].ID}, ids(got, id))

	got, err = s.ListRecentNotes(ctx, usr.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{notes[0].ID, notes[5].ID}, ids(got, id))

	got, err = s.ListRecentNotes(ctx, usr.ID, 100)
	require.NoError(t, err)
	assert.Len(t, got, len(notes))
}

func testSearchNotes(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")
	other := CreateUser(t, s, "student2", "other@example.com", "")

	python := createNote(t, s, usr.ID, "Python Basics", "Variables and loops")
	calculus := createNote(t, s, usr.ID, "Integration Techniques", "Integration by PARTS, substitution")
	discount := createNote(t, s, usr.ID, "Budget", "50% off_peak")
	createNote(t, s, other.ID, "Python for others", "parts")
	id := func(n study.Note) int { return n.ID }

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"title match", "python", []int{python.ID}},
		{"content match, case insensitive", "parts", []int{calculus.ID}},
		{"title or content", "es", []int{python.ID, calculus.ID}},
		{"percent is literal", "50%", []int{discount.ID}},
		{"underscore is literal", "f_p", []int{discount.ID}},
		{"no match", "chemistry", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SearchNotes(ctx, usr.ID, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got, id))
		})
	}
}

func testNoteUpdatedAtIncreases(t *testing.T, s study.Storage) {
	ctx := context.Background()
	frozen := core.Now()
	origNow := core.Now
	core.Now = func() time.Time { return frozen }
	t.Cleanup(func() { core.Now = origNow })

	usr := CreateUser(t, s, "student1", "student@example.com", "")
	n := createNote(t, s, usr.ID, "Newton's Laws", "F = ma")
	prev := n.UpdatedAt
	for i := 0; i < 3; i++ {
		upd, err := s.UpdateNote(ctx, n.ID, study.NoteUpdate{})
		require.NoError(t, err)
		require.NotNil(t, upd)
		assert.True(t, upd.UpdatedAt.After(prev), "updatedAt must strictly increase within one clock tick")
		prev = upd.UpdatedAt
	}
}

func testStudyGroups(t *testing.T, s study.Storage) {
	ctx := context.Background()
	alice := CreateUser(t, s, "alice", "alice@example.com", "")
	bob := CreateUser(t, s, "bob", "bob@example.com", "")
	carol := CreateUser(t, s, "carol", "carol@example.com", "")

	g, err := s.CreateStudyGroup(ctx, study.NewStudyGroup{Name: "CS101 Study Group", CreatedBy: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, study.DefaultMaxMembers, g.MaxMembers)
	assert.True(t, g.IsActive)

	g2, err := s.CreateStudyGroup(ctx, study.NewStudyGroup{
		Name: "Physics", CreatedBy: bob.ID, MaxMembers: ptr(4), IsActive: ptr(false),
		Location: null.StringFrom("Library Room 204"),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, g2.MaxMembers)
	assert.False(t, g2.IsActive)

	leader, err := s.AddStudyGroupMember(ctx, study.NewStudyGroupMember{StudyGroupID: g.ID, UserID: alice.ID, Role: study.RoleLeader})
	require.NoError(t, err)
	assert.Equal(t, study.RoleLeader, leader.Role)
	member, err := s.AddStudyGroupMember(ctx, study.NewStudyGroupMember{StudyGroupID: g.ID, UserID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, study.RoleMember, member.Role)
	assert.False(t, member.JoinedAt.IsZero())

	members, err := s.ListStudyGroupMembers(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, []study.StudyGroupMember{leader, member}, members)

	id := func(g study.StudyGroup) int { return g.ID }

	// creator and member of g: listed once
	groups, err := s.ListStudyGroups(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{g.ID}, ids(groups, id))

	// member of g, creator of g2
	groups, err = s.ListStudyGroups(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{g.ID, g2.ID}, ids(groups, id))

	groups, err = s.ListStudyGroups(ctx, carol.ID)
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)

	upd, err := s.UpdateStudyGroup(ctx, g.ID, study.StudyGroupUpdate{MeetingSchedule: ptr(null.StringFrom("Wednesdays 6:00 PM"))})
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.Equal(t, g.Name, upd.Name)
	assert.Equal(t, "Wednesdays 6:00 PM", upd.MeetingSchedule.String)

	upd, err = s.UpdateStudyGroup(ctx, g.ID+1000, study.StudyGroupUpdate{Name: ptr("ghost")})
	require.NoError(t, err)
	assert.Nil(t, upd)

	removed, err := s.RemoveStudyGroupMember(ctx, g.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.RemoveStudyGroupMember(ctx, g.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	groups, err = s.ListStudyGroups(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{g2.ID}, ids(groups, id))

	deleted, err := s.DeleteStudyGroup(ctx, g2.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	got, err := s.GetStudyGroup(ctx, g2.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testStudySessions(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")
	date := core.Now().Add(-day)

	ss, err := s.CreateStudySession(ctx, study.NewStudySession{
		UserID: usr.ID, Duration: 120, Date: date, Notes: null.StringFrom("Reviewed loops"),
	})
	require.NoError(t, err)
	assert.NotZero(t, ss.ID)
	assert.True(t, ss.Date.Equal(date))
	assert.False(t, ss.CourseID.Valid)

	sessions, err := s.ListStudySessions(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []study.StudySession{ss}, sessions)

	sessions, err = s.ListStudySessions(ctx, usr.ID+1000)
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func testDashboardStats(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")
	other := CreateUser(t, s, "student2", "other@example.com", "")
	now := core.Now()

	stats, err := s.GetDashboardStats(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, study.DashboardStats{}, stats)

	c := createCourse(t, s, usr.ID, "CS101")
	createCourse(t, s, other.ID, "MATH201")
	createAssignment(t, s, study.NewAssignment{UserID: usr.ID, CourseID: c.ID, DueDate: now.Add(3 * day)})
	createAssignment(t, s, study.NewAssignment{
		UserID: usr.ID, CourseID: c.ID, DueDate: now.Add(-2 * day), Status: study.StatusCompleted,
		Grade: null.Float64From(90), MaxPoints: null.Float64From(100),
	})
	for _, ns := range []study.NewStudySession{
		{UserID: usr.ID, Duration: 120, Date: now.Add(-day)},
		{UserID: usr.ID, Duration: 90, Date: now.Add(-2 * day)},
		{UserID: usr.ID, Duration: 75, Date: now.Add(-3 * day)},
		{UserID: usr.ID, Duration: 600, Date: now.Add(-8 * day)}, // outside the 7 day window
		{UserID: other.ID, Duration: 60, Date: now.Add(-day)},
	} {
		_, err = s.CreateStudySession(ctx, ns)
		require.NoError(t, err)
	}

	stats, err = s.GetDashboardStats(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, study.DashboardStats{
		AssignmentsDue:   1,
		CurrentGPA:       3.6,
		StudyHours:       4.8,
		ActiveCourses:    1,
		CompletedCredits: 3,
		OverallGPA:       3.6,
		SemesterGPA:      3.6,
	}, stats)
}

func testGamification(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")
	now := core.Now()

	streak, err := s.CreateAchievement(ctx, study.NewAchievement{
		Name: "On Fire", Description: "Study 7 days in a row", Icon: "flame", Type: study.AchievementStreak,
		Requirement: 7, Points: 100,
	})
	require.NoError(t, err)
	assert.True(t, streak.IsActive)
	_, err = s.CreateAchievement(ctx, study.NewAchievement{
		Name: "Retired", Description: "no longer awarded", Icon: "x", Type: study.AchievementGrade, IsActive: ptr(false),
	})
	require.NoError(t, err)

	achievements, err := s.ListAchievements(ctx)
	require.NoError(t, err)
	assert.Equal(t, []study.Achievement{streak}, achievements)

	ua, err := s.CreateUserAchievement(ctx, study.NewUserAchievement{UserID: usr.ID, AchievementID: streak.ID, Progress: 3})
	require.NoError(t, err)
	assert.False(t, ua.IsUnlocked)
	assert.False(t, ua.UnlockedAt.Valid)

	unlockedAt := now.Add(-time.Hour)
	upd, err := s.UpdateUserAchievement(ctx, ua.ID, study.UserAchievementUpdate{
		Progress: ptr(7), IsUnlocked: ptr(true), UnlockedAt: ptr(null.TimeFrom(unlockedAt)),
	})
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.Equal(t, 7, upd.Progress)
	assert.True(t, upd.IsUnlocked)
	assert.True(t, upd.UnlockedAt.Time.Equal(unlockedAt))

	uas, err := s.ListUserAchievements(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []study.UserAchievement{*upd}, uas)

	upd, err = s.UpdateUserAchievement(ctx, ua.ID+1000, study.UserAchievementUpdate{Progress: ptr(1)})
	require.NoError(t, err)
	assert.Nil(t, upd)

	weekly, err := s.CreateChallenge(ctx, study.NewChallenge{
		Name: "Weekly Scholar", Description: "Study 10 hours this week", Type: study.ChallengeWeekly,
		Category: study.CategoryStudy, Target: 600, Points: 50, StartDate: now, EndDate: now.Add(7 * day),
	})
	require.NoError(t, err)
	past, err := s.CreateChallenge(ctx, study.NewChallenge{
		Name: "Old", Description: "expired", Type: study.ChallengeDaily, Category: study.CategoryNotes,
		StartDate: now.Add(-2 * day), EndDate: now.Add(-day), IsActive: ptr(false),
	})
	require.NoError(t, err)

	challenges, err := s.ListChallenges(ctx)
	require.NoError(t, err)
	assert.Equal(t, []study.Challenge{weekly, past}, challenges)

	challenges, err = s.ListActiveChallenges(ctx)
	require.NoError(t, err)
	assert.Equal(t, []study.Challenge{weekly}, challenges)

	uc, err := s.CreateUserChallenge(ctx, study.NewUserChallenge{UserID: usr.ID, ChallengeID: weekly.ID})
	require.NoError(t, err)
	ucUpd, err := s.UpdateUserChallenge(ctx, uc.ID, study.UserChallengeUpdate{Progress: ptr(600), IsCompleted: ptr(true)})
	require.NoError(t, err)
	require.NotNil(t, ucUpd)
	assert.Equal(t, 600, ucUpd.Progress)
	assert.True(t, ucUpd.IsCompleted)
	assert.False(t, ucUpd.CompletedAt.Valid)

	ucs, err := s.ListUserChallenges(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []study.UserChallenge{*ucUpd}, ucs)
}

func testUserStats(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")

	got, err := s.GetUserStats(ctx, usr.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	upd, err := s.UpdateUserStats(ctx, usr.ID, study.UserStatsUpdate{TotalPoints: ptr(10)})
	require.NoError(t, err)
	assert.Nil(t, upd, "updates never create")

	stats, err := s.CreateUserStats(ctx, study.NewUserStats{UserID: usr.ID})
	require.NoError(t, err)
	assert.Equal(t, study.DefaultLevel, stats.Level)
	assert.Zero(t, stats.TotalPoints)

	_, err = s.CreateUserStats(ctx, study.NewUserStats{UserID: usr.ID})
	assert.Error(t, err, "one stats row per user")

	upd, err = s.UpdateUserStats(ctx, usr.ID, study.UserStatsUpdate{TotalPoints: ptr(150), StudyStreak: ptr(3)})
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.Equal(t, 150, upd.TotalPoints)
	assert.Equal(t, 3, upd.StudyStreak)
	assert.Equal(t, stats.Level, upd.Level)
	assert.True(t, upd.UpdatedAt.After(stats.UpdatedAt))

	got, err = s.GetUserStats(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, upd, got)
}

func testFlashcards(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")

	f, err := s.CreateFlashcard(ctx, study.NewFlashcard{UserID: usr.ID, Front: "2 + 2", Back: "4", Tags: []string{"math"}})
	require.NoError(t, err)
	assert.Equal(t, study.DifficultyMedium, f.Difficulty)
	assert.Equal(t, study.DefaultInterval, f.Interval)
	assert.Equal(t, study.DefaultEaseFactor, f.EaseFactor)
	assert.True(t, f.NextReview.Equal(f.CreatedAt))
	assert.Equal(t, []string{"math"}, f.Tags)

	got, err := s.GetFlashcard(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, &f, got)

	upd, err := s.UpdateFlashcard(ctx, f.ID, study.FlashcardUpdate{
		ReviewCount: ptr(1), CorrectCount: ptr(1), Interval: ptr(3), Difficulty: ptr(study.DifficultyEasy),
	})
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.Equal(t, 1, upd.ReviewCount)
	assert.Equal(t, 1, upd.CorrectCount)
	assert.Equal(t, 3, upd.Interval)
	assert.Equal(t, study.DifficultyEasy, upd.Difficulty)
	assert.Equal(t, f.Front, upd.Front)
	assert.Equal(t, f.Tags, upd.Tags)
	assert.True(t, upd.UpdatedAt.After(f.UpdatedAt))

	cards, err := s.ListFlashcards(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []study.Flashcard{*upd}, cards)

	upd, err = s.UpdateFlashcard(ctx, f.ID+1000, study.FlashcardUpdate{Front: ptr("ghost")})
	require.NoError(t, err)
	assert.Nil(t, upd)

	deleted, err := s.DeleteFlashcard(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.DeleteFlashcard(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func testPomodoroSessions(t *testing.T, s study.Storage) {
	ctx := context.Background()
	usr := CreateUser(t, s, "student1", "student@example.com", "")
	start := core.Now().Add(-30 * time.Minute)

	p, err := s.CreatePomodoroSession(ctx, study.NewPomodoroSession{UserID: usr.ID, StartTime: start})
	require.NoError(t, err)
	assert.Equal(t, study.DefaultPomodoroDuration, p.Duration)
	assert.Equal(t, study.PomodoroWork, p.Type)
	assert.False(t, p.IsCompleted)
	assert.False(t, p.EndTime.Valid)

	got, err := s.GetPomodoroSession(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, &p, got)

	end := start.Add(25 * time.Minute)
	upd, err := s.UpdatePomodoroSession(ctx, p.ID, study.PomodoroSessionUpdate{
		IsCompleted: ptr(true), EndTime: ptr(null.TimeFrom(end)),
	})
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.True(t, upd.IsCompleted)
	assert.True(t, upd.EndTime.Time.Equal(end))

	sessions, err := s.ListPomodoroSessions(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []study.PomodoroSession{*upd}, sessions)

	upd, err = s.UpdatePomodoroSession(ctx, p.ID+1000, study.PomodoroSessionUpdate{IsCompleted: ptr(true)})
	require.NoError(t, err)
	assert.Nil(t, upd)
}

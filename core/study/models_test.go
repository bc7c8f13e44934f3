package study

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestBuildDefaults(t *testing.T) {
	now := time.Date(2024, 9, 1, 8, 30, 0, 0, time.UTC)
	due := time.Date(2024, 9, 10, 23, 59, 0, 0, time.FixedZone("WAT", 3600))

	t.Run("course", func(t *testing.T) {
		c := NewCourse{UserID: 1, Name: "Physics", Code: "PHYS101", Semester: "Fall", Year: 2024}.Build()
		assert.Equal(t, DefaultCourseColor, c.Color)
		assert.Equal(t, DefaultCourseCredits, c.Credits)

		zero := 0
		c = NewCourse{Color: "#000000", Credits: &zero}.Build()
		assert.Equal(t, "#000000", c.Color)
		assert.Equal(t, 0, c.Credits)
	})

	t.Run("assignment", func(t *testing.T) {
		a := NewAssignment{UserID: 1, CourseID: 2, Title: "Lab", DueDate: due}.Build(now)
		assert.Equal(t, PriorityMedium, a.Priority)
		assert.Equal(t, StatusPending, a.Status)
		assert.Equal(t, TypeAssignment, a.Type)
		assert.Equal(t, now, a.CreatedAt)
		assert.Equal(t, due.UTC(), a.DueDate)
		assert.False(t, a.Grade.Valid)
	})

	t.Run("note", func(t *testing.T) {
		tags := []string{"a"}
		n := NewNote{Title: "T", Content: "C", Tags: tags}.Build(now)
		assert.False(t, n.IsShared)
		assert.Equal(t, now, n.CreatedAt)
		assert.Equal(t, now, n.UpdatedAt)
		tags[0] = "changed"
		assert.Equal(t, []string{"a"}, n.Tags)
	})

	t.Run("study group & member", func(t *testing.T) {
		g := NewStudyGroup{Name: "G", CreatedBy: 1}.Build(now)
		assert.Equal(t, DefaultMaxMembers, g.MaxMembers)
		assert.True(t, g.IsActive)

		inactive := false
		g = NewStudyGroup{Name: "G", IsActive: &inactive}.Build(now)
		assert.False(t, g.IsActive)

		m := NewStudyGroupMember{StudyGroupID: 1, UserID: 2}.Build(now)
		assert.Equal(t, RoleMember, m.Role)
		assert.Equal(t, now, m.JoinedAt)
	})

	t.Run("gamification", func(t *testing.T) {
		assert.True(t, NewAchievement{Name: "A"}.Build().IsActive)
		assert.True(t, NewChallenge{Name: "C"}.Build().IsActive)

		ua := NewUserAchievement{UserID: 1, AchievementID: 2}.Build(now)
		assert.Equal(t, 0, ua.Progress)
		assert.False(t, ua.IsUnlocked)
		assert.Equal(t, now, ua.CreatedAt)

		s := NewUserStats{UserID: 1}.Build(now)
		assert.Equal(t, DefaultLevel, s.Level)
		assert.Equal(t, 0, s.TotalPoints)
		assert.Equal(t, now, s.UpdatedAt)
	})

	t.Run("flashcard", func(t *testing.T) {
		f := NewFlashcard{Front: "F", Back: "B"}.Build(now)
		assert.Equal(t, DifficultyMedium, f.Difficulty)
		assert.Equal(t, now, f.NextReview)
		assert.Equal(t, DefaultInterval, f.Interval)
		assert.Equal(t, DefaultEaseFactor, f.EaseFactor)
		assert.Equal(t, 0, f.ReviewCount)

		next := now.Add(48 * time.Hour)
		f = NewFlashcard{Front: "F", Back: "B", NextReview: null.TimeFrom(next)}.Build(now)
		assert.Equal(t, next, f.NextReview)
	})

	t.Run("pomodoro", func(t *testing.T) {
		p := NewPomodoroSession{StartTime: now}.Build(now)
		assert.Equal(t, DefaultPomodoroDuration, p.Duration)
		assert.Equal(t, PomodoroWork, p.Type)
		assert.False(t, p.IsCompleted)
		assert.False(t, p.EndTime.Valid)
	})
}

func TestUpdates(t *testing.T) {
	now := time.Date(2024, 9, 1, 8, 30, 0, 0, time.UTC)
	str := func(s string) *string { return &s }

	t.Run("course keeps unset fields", func(t *testing.T) {
		c := NewCourse{Name: "Physics", Code: "PHYS101", Semester: "Fall", Year: 2024}.Build()
		instructor := null.StringFrom("Dr. Who")
		CourseUpdate{Name: str("Physics II"), Instructor: &instructor}.Apply(&c)

		want := NewCourse{Name: "Physics II", Code: "PHYS101", Semester: "Fall", Year: 2024, Instructor: instructor}.Build()
		assert.Equal(t, want, c)
	})

	t.Run("assignment grade can be cleared", func(t *testing.T) {
		a := NewAssignment{Title: "Lab", Grade: null.Float64From(80)}.Build(now)
		cleared := null.Float64{}
		AssignmentUpdate{Grade: &cleared, Status: str(StatusCompleted)}.Apply(&a)
		assert.False(t, a.Grade.Valid)
		assert.Equal(t, StatusCompleted, a.Status)
	})

	t.Run("note always moves updatedAt forward", func(t *testing.T) {
		n := NewNote{Title: "T", Content: "C"}.Build(now)

		NoteUpdate{}.Apply(&n, now) // same tick
		assert.Equal(t, now.Add(time.Microsecond), n.UpdatedAt)
		assert.Equal(t, now, n.CreatedAt)

		later := now.Add(time.Minute)
		NoteUpdate{Title: str("T2")}.Apply(&n, later)
		assert.Equal(t, later, n.UpdatedAt)
		assert.Equal(t, "T2", n.Title)
		assert.Equal(t, "C", n.Content)
	})

	t.Run("flashcard tags are copied", func(t *testing.T) {
		f := NewFlashcard{Front: "F", Back: "B"}.Build(now)
		tags := []string{"x", "y"}
		FlashcardUpdate{Tags: &tags}.Apply(&f, now.Add(time.Second))
		tags[0] = "z"
		assert.Equal(t, []string{"x", "y"}, f.Tags)
	})
}

func TestTouch(t *testing.T) {
	prev := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{name: "later", now: prev.Add(time.Second), want: prev.Add(time.Second)},
		{name: "same tick", now: prev, want: prev.Add(time.Microsecond)},
		{name: "clock went back", now: prev.Add(-time.Second), want: prev.Add(time.Microsecond)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Touch(prev, tt.now))
		})
	}
}

func TestAssignment_IsOverdue(t *testing.T) {
	now := time.Now()
	assert.True(t, Assignment{Status: StatusPending, DueDate: now.Add(-time.Hour)}.IsOverdue(now))
	assert.False(t, Assignment{Status: StatusCompleted, DueDate: now.Add(-time.Hour)}.IsOverdue(now))
	assert.False(t, Assignment{Status: StatusPending, DueDate: now.Add(time.Hour)}.IsOverdue(now))
}

func TestLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, Limit(0))
	assert.Equal(t, DefaultListLimit, Limit(-3))
	assert.Equal(t, 2, Limit(2))
}

func TestUpdates_decodeJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantGrade *null.Float64
		wantTitle *string
	}{
		{"missing is unchanged", `{"title": "Lab 2"}`, nil, func() *string { s := "Lab 2"; return &s }()},
		{"null clears", `{"grade": null}`, &null.Float64{}, nil},
		{"value sets", `{"grade": 87.5}`, func() *null.Float64 { g := null.Float64From(87.5); return &g }(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u AssignmentUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &u))
			assert.Equal(t, tt.wantGrade, u.Grade)
			assert.Equal(t, tt.wantTitle, u.Title)
			assert.Nil(t, u.MaxPoints)
		})
	}

	t.Run("non-nullable null stays unchanged", func(t *testing.T) {
		var u CourseUpdate
		require.NoError(t, json.Unmarshal([]byte(`{"name": null, "instructor": null}`), &u))
		assert.Nil(t, u.Name)
		require.NotNil(t, u.Instructor)
		assert.False(t, u.Instructor.Valid)
	})

	t.Run("applied null clears the column", func(t *testing.T) {
		now := time.Date(2024, 9, 1, 8, 30, 0, 0, time.UTC)
		a := NewAssignment{Title: "Lab", Grade: null.Float64From(80)}.Build(now)
		var u AssignmentUpdate
		require.NoError(t, json.Unmarshal([]byte(`{"grade": null}`), &u))
		u.Apply(&a)
		assert.False(t, a.Grade.Valid)
	})

	t.Run("bad json", func(t *testing.T) {
		var u NoteUpdate
		assert.Error(t, json.Unmarshal([]byte(`{"courseId": "x"}`), &u))
	})
}

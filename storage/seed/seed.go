// Package seed loads the demo account and its study data into a storage backend.
package seed

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
	"github.com/trezcool/studyhub/core/user"
)

const (
	DemoUsername = "student1"
	DemoPassword = "password123"
)

var ErrAlreadySeeded = errors.New("demo data already loaded")

const day = 24 * time.Hour

// Demo creates the demo user with their courses, assignments, notes, study group and sessions,
// plus the achievements and challenges catalog. Dates are relative to core.Now().
// It returns ErrAlreadySeeded when the demo user exists.
func Demo(ctx context.Context, store study.Storage) (user.User, error) {
	existing, err := store.GetUserByUsername(ctx, DemoUsername)
	if err != nil {
		return user.User{}, errors.Wrap(err, "finding demo user")
	}
	if existing != nil {
		return *existing, ErrAlreadySeeded
	}

	usr := user.User{
		Username:  DemoUsername,
		FirstName: "John",
		LastName:  "Doe",
		Email:     "student@example.com",
		Program:   "Computer Science",
	}
	if err = usr.SetPassword(DemoPassword); err != nil {
		return user.User{}, errors.Wrap(err, "hashing password")
	}
	if usr, err = store.CreateUser(ctx, usr); err != nil {
		return user.User{}, errors.Wrap(err, "creating demo user")
	}

	courses, err := seedCourses(ctx, store, usr.ID)
	if err != nil {
		return user.User{}, err
	}
	now := core.Now()
	if err = seedAssignments(ctx, store, usr.ID, courses, now); err != nil {
		return user.User{}, err
	}
	if err = seedNotes(ctx, store, usr.ID, courses); err != nil {
		return user.User{}, err
	}
	if err = seedStudyGroup(ctx, store, usr.ID, courses[0]); err != nil {
		return user.User{}, err
	}
	if err = seedStudySessions(ctx, store, usr.ID, courses, now); err != nil {
		return user.User{}, err
	}
	if err = seedGamification(ctx, store, now); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func seedCourses(ctx context.Context, store study.Storage, userID int) ([]study.Course, error) {
	credits := func(n int) *int { return &n }
	ncs := []study.NewCourse{
		{Name: "Computer Science 101", Code: "CS101", Instructor: null.StringFrom("Dr. Smith"), Credits: credits(3), Color: "#3b82f6"},
		{Name: "Mathematics 201", Code: "MATH201", Instructor: null.StringFrom("Prof. Johnson"), Credits: credits(4), Color: "#10b981"},
		{Name: "Physics 101", Code: "PHYS101", Instructor: null.StringFrom("Dr. Williams"), Credits: credits(3), Color: "#f59e0b"},
		{Name: "English Literature", Code: "ENG201", Instructor: null.StringFrom("Prof. Brown"), Credits: credits(3), Color: "#ef4444"},
	}
	courses := make([]study.Course, 0, len(ncs))
	for _, nc := range ncs {
		nc.UserID = userID
		nc.Semester = "Fall 2024"
		nc.Year = 2024
		c, err := store.CreateCourse(ctx, nc)
		if err != nil {
			return nil, errors.Wrapf(err, "creating course %s", nc.Code)
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func seedAssignments(ctx context.Context, store study.Storage, userID int, courses []study.Course, now time.Time) error {
	nas := []study.NewAssignment{
		{
			CourseID: courses[0].ID, Title: "Programming Assignment 1",
			Description: null.StringFrom("Create a basic calculator using Python"),
			DueDate:     now.Add(3 * day), Priority: study.PriorityHigh, Status: study.StatusPending,
			MaxPoints: null.Float64From(100),
		},
		{
			CourseID: courses[1].ID, Title: "Calculus Problem Set 3",
			Description: null.StringFrom("Solve integration problems from chapter 5"),
			DueDate:     now.Add(5 * day), Priority: study.PriorityMedium, Status: study.StatusInProgress,
			MaxPoints: null.Float64From(50),
		},
		{
			CourseID: courses[2].ID, Title: "Lab Report: Motion Analysis",
			Description: null.StringFrom("Write a detailed report on the motion analysis experiment"),
			DueDate:     now.Add(7 * day), Priority: study.PriorityMedium, Status: study.StatusPending,
			MaxPoints: null.Float64From(75),
		},
		{
			CourseID: courses[3].ID, Title: "Essay: Shakespeare Analysis",
			Description: null.StringFrom("Write a 1500-word analysis of Hamlet"),
			DueDate:     now.Add(10 * day), Priority: study.PriorityLow, Status: study.StatusPending,
			MaxPoints: null.Float64From(100),
		},
		{
			CourseID: courses[0].ID, Title: "Midterm Exam", Type: study.TypeExam,
			Description: null.StringFrom("Comprehensive exam covering chapters 1-6"),
			DueDate:     now.Add(-2 * day), Priority: study.PriorityHigh, Status: study.StatusCompleted,
			MaxPoints: null.Float64From(100), Grade: null.Float64From(87),
		},
	}
	for _, na := range nas {
		na.UserID = userID
		if _, err := store.CreateAssignment(ctx, na); err != nil {
			return errors.Wrapf(err, "creating assignment %q", na.Title)
		}
	}
	return nil
}

func seedNotes(ctx context.Context, store study.Storage, userID int, courses []study.Course) error {
	nns := []study.NewNote{
		{
			CourseID: null.IntFrom(courses[0].ID), Title: "Python Basics",
			Content: "# Python Basics\n\n## Variables\n- Use descriptive names\n- Snake_case convention\n\n" +
				"## Functions\n```python\ndef calculate_area(radius):\n    return 3.14159 * radius ** 2\n```\n\n" +
				"## Key Points\n- Python is interpreted\n- Dynamic typing\n- Indentation matters",
			Tags: []string{"python", "programming", "basics"},
		},
		{
			CourseID: null.IntFrom(courses[1].ID), Title: "Integration Techniques",
			Content: "# Integration Techniques\n\n## By Parts\n∫ u dv = uv - ∫ v du\n\n" +
				"## Substitution\nLet u = g(x), then du = g'(x)dx\n\n" +
				"## Common Integrals\n- ∫ x^n dx = x^(n+1)/(n+1) + C\n- ∫ e^x dx = e^x + C\n- ∫ sin(x) dx = -cos(x) + C",
			Tags:     []string{"calculus", "integration", "math"},
			IsShared: true,
		},
		{
			CourseID: null.IntFrom(courses[2].ID), Title: "Newton's Laws",
			Content: "# Newton's Laws of Motion\n\n## First Law (Inertia)\nAn object at rest stays at rest, " +
				"an object in motion stays in motion, unless acted upon by an external force.\n\n" +
				"## Second Law (F = ma)\nThe acceleration of an object is directly proportional to the net force acting on it.\n\n" +
				"## Third Law (Action-Reaction)\nFor every action, there is an equal and opposite reaction.",
			Tags: []string{"physics", "mechanics", "newton"},
		},
		{
			CourseID: null.IntFrom(courses[3].ID), Title: "Hamlet Character Analysis",
			Content: "# Hamlet Character Analysis\n\n## Hamlet\n- Complex protagonist\n- Struggles with decision-making\n" +
				"- Philosophical nature\n\n## Key Themes\n- Revenge\n- Madness vs. sanity\n- Mortality\n- Corruption\n\n" +
				"## Important Quotes\n\"To be or not to be, that is the question\"\n\"Something is rotten in the state of Denmark\"",
			Tags:     []string{"literature", "shakespeare", "hamlet"},
			IsShared: true,
		},
	}
	for _, nn := range nns {
		nn.UserID = userID
		if _, err := store.CreateNote(ctx, nn); err != nil {
			return errors.Wrapf(err, "creating note %q", nn.Title)
		}
	}
	return nil
}

func seedStudyGroup(ctx context.Context, store study.Storage, userID int, course study.Course) error {
	maxMembers := 8
	g, err := store.CreateStudyGroup(ctx, study.NewStudyGroup{
		Name:            "CS101 Study Group",
		Description:     null.StringFrom("Weekly study sessions for Computer Science 101"),
		CourseID:        null.IntFrom(course.ID),
		CreatedBy:       userID,
		MaxMembers:      &maxMembers,
		MeetingSchedule: null.StringFrom("Wednesdays 6:00 PM"),
		Location:        null.StringFrom("Library Room 204"),
	})
	if err != nil {
		return errors.Wrap(err, "creating study group")
	}
	_, err = store.AddStudyGroupMember(ctx, study.NewStudyGroupMember{StudyGroupID: g.ID, UserID: userID, Role: study.RoleLeader})
	return errors.Wrap(err, "adding study group leader")
}

func seedStudySessions(ctx context.Context, store study.Storage, userID int, courses []study.Course, now time.Time) error {
	nss := []study.NewStudySession{
		{CourseID: null.IntFrom(courses[0].ID), Duration: 120, Date: now.Add(-1 * day), Notes: null.StringFrom("Reviewed Python syntax and worked on assignment 1")},
		{CourseID: null.IntFrom(courses[1].ID), Duration: 90, Date: now.Add(-2 * day), Notes: null.StringFrom("Practiced integration by parts problems")},
		{CourseID: null.IntFrom(courses[2].ID), Duration: 75, Date: now.Add(-3 * day), Notes: null.StringFrom("Lab work on motion analysis experiment")},
	}
	for _, ns := range nss {
		ns.UserID = userID
		if _, err := store.CreateStudySession(ctx, ns); err != nil {
			return errors.Wrap(err, "creating study session")
		}
	}
	return nil
}

func seedGamification(ctx context.Context, store study.Storage, now time.Time) error {
	nas := []study.NewAchievement{
		{Name: "First Steps", Description: "Complete your first assignment", Icon: "trophy", Type: study.AchievementCompletion, Requirement: 1, Points: 10},
		{Name: "Week Warrior", Description: "Study 7 days in a row", Icon: "flame", Type: study.AchievementStreak, Requirement: 7, Points: 50},
		{Name: "Marathon", Description: "Study for 10 hours in total", Icon: "clock", Type: study.AchievementTime, Requirement: 600, Points: 100},
		{Name: "Top of the Class", Description: "Score 90% or more on an assignment", Icon: "star", Type: study.AchievementGrade, Requirement: 90, Points: 75},
	}
	for _, na := range nas {
		if _, err := store.CreateAchievement(ctx, na); err != nil {
			return errors.Wrapf(err, "creating achievement %q", na.Name)
		}
	}

	today := now.Truncate(day)
	ncs := []study.NewChallenge{
		{
			Name: "Daily Focus", Description: "Study for 60 minutes today", Type: study.ChallengeDaily, Category: study.CategoryStudy,
			Target: 60, Points: 15, StartDate: today, EndDate: today.Add(day),
		},
		{
			Name: "Note Taker", Description: "Create 5 notes this week", Type: study.ChallengeWeekly, Category: study.CategoryNotes,
			Target: 5, Points: 30, StartDate: today, EndDate: today.Add(7 * day),
		},
		{
			Name: "Assignment Sprint", Description: "Complete 10 assignments this month", Type: study.ChallengeMonthly, Category: study.CategoryAssignments,
			Target: 10, Points: 100, StartDate: today, EndDate: today.Add(30 * day),
		},
	}
	for _, nc := range ncs {
		if _, err := store.CreateChallenge(ctx, nc); err != nil {
			return errors.Wrapf(err, "creating challenge %q", nc.Name)
		}
	}
	return nil
}

package study

import (
	"math"
	"time"
)

const (
	gpaScale         = 4.0
	defaultMaxPoints = 100.0
	studyHoursWindow = 7 * 24 * time.Hour
)

type DashboardStats struct {
	AssignmentsDue   int     `json:"assignmentsDue"`
	CurrentGPA       float64 `json:"currentGPA"`
	StudyHours       float64 `json:"studyHours"`
	ActiveCourses    int     `json:"activeCourses"`
	CompletedCredits int     `json:"completedCredits"`
	OverallGPA       float64 `json:"overallGPA"`
	SemesterGPA      float64 `json:"semesterGPA"`
}

type CourseProgress struct {
	CourseID  int     `json:"courseId"`
	Progress  int     `json:"progress"` // percent of completed assignments
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Grade     float64 `json:"grade"` // percent
}

// ComputeDashboardStats derives the dashboard figures of a user from their rows.
// Overall and semester GPA mirror the current GPA, and credits sum every course regardless of term.
func ComputeDashboardStats(now time.Time, assignments []Assignment, courses []Course, sessions []StudySession) DashboardStats {
	var due int
	for _, a := range assignments {
		if !a.IsCompleted() && a.DueDate.After(now) {
			due++
		}
	}

	gpa := round(gradeRatio(assignments)*gpaScale, 2)

	since := now.Add(-studyHoursWindow)
	var minutes int
	for _, s := range sessions {
		if s.Date.After(since) {
			minutes += s.Duration
		}
	}

	var credits int
	for _, c := range courses {
		credits += c.Credits
	}

	return DashboardStats{
		AssignmentsDue:   due,
		CurrentGPA:       gpa,
		StudyHours:       round(float64(minutes)/60, 1),
		ActiveCourses:    len(courses),
		CompletedCredits: credits,
		OverallGPA:       gpa,
		SemesterGPA:      gpa,
	}
}

// ComputeCourseProgress derives the progress of a course from the assignments given.
// Assignments of other courses are ignored.
func ComputeCourseProgress(course Course, assignments []Assignment) CourseProgress {
	cp := CourseProgress{CourseID: course.ID}

	own := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.CourseID != course.ID {
			continue
		}
		own = append(own, a)
		if a.IsCompleted() {
			cp.Completed++
		}
	}
	cp.Total = len(own)
	if cp.Total == 0 {
		return cp
	}

	cp.Progress = int(math.Round(float64(cp.Completed) / float64(cp.Total) * 100))
	cp.Grade = round(gradeRatio(own)*100, 2)
	return cp
}

// gradeRatio is Σgrade / Σ(maxPoints or 100) over completed, graded assignments; 0 when there are none.
func gradeRatio(assignments []Assignment) float64 {
	var earned, possible float64
	for _, a := range assignments {
		if !a.IsCompleted() || !a.Grade.Valid {
			continue
		}
		earned += a.Grade.Float64
		if a.MaxPoints.Valid && a.MaxPoints.Float64 != 0 {
			possible += a.MaxPoints.Float64
		} else {
			possible += defaultMaxPoints
		}
	}
	if possible == 0 {
		return 0
	}
	return earned / possible
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

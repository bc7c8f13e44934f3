package study

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// StudySession records time spent studying. Sessions are immutable once logged.
type StudySession struct {
	ID       int         `json:"id" db:"id"`
	UserID   int         `json:"userId" db:"user_id"`
	CourseID null.Int    `json:"courseId" db:"course_id"`
	Duration int         `json:"duration" db:"duration"` // minutes
	Date     time.Time   `json:"date" db:"date"`
	Notes    null.String `json:"notes" db:"notes"`
}

type NewStudySession struct {
	UserID   int         `json:"userId"`
	CourseID null.Int    `json:"courseId"`
	Duration int         `json:"duration" validate:"required,min=1"`
	Date     time.Time   `json:"date" validate:"required"`
	Notes    null.String `json:"notes"`
}

func (ns NewStudySession) Build() StudySession {
	return StudySession{
		UserID:   ns.UserID,
		CourseID: ns.CourseID,
		Duration: ns.Duration,
		Date:     Timestamp(ns.Date),
		Notes:    ns.Notes,
	}
}

package study

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Pomodoro session types
const (
	PomodoroWork       = "work"
	PomodoroShortBreak = "short_break"
	PomodoroLongBreak  = "long_break"
)

const DefaultPomodoroDuration = 25 // minutes

type PomodoroSession struct {
	ID          int         `json:"id" db:"id"`
	UserID      int         `json:"userId" db:"user_id"`
	CourseID    null.Int    `json:"courseId" db:"course_id"`
	Duration    int         `json:"duration" db:"duration"` // minutes
	Type        string      `json:"type" db:"type"`
	IsCompleted bool        `json:"isCompleted" db:"is_completed"`
	StartTime   time.Time   `json:"startTime" db:"start_time"`
	EndTime     null.Time   `json:"endTime" db:"end_time"`
	Notes       null.String `json:"notes" db:"notes"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}

type NewPomodoroSession struct {
	UserID      int         `json:"userId"`
	CourseID    null.Int    `json:"courseId"`
	Duration    *int        `json:"duration" validate:"omitempty,min=1"`
	Type        string      `json:"type" validate:"omitempty,oneof=work short_break long_break"`
	IsCompleted bool        `json:"isCompleted"`
	StartTime   time.Time   `json:"startTime" validate:"required"`
	EndTime     null.Time   `json:"endTime"`
	Notes       null.String `json:"notes"`
}

func (np NewPomodoroSession) Build(now time.Time) PomodoroSession {
	p := PomodoroSession{
		UserID:      np.UserID,
		CourseID:    np.CourseID,
		Duration:    DefaultPomodoroDuration,
		Type:        orDefault(np.Type, PomodoroWork),
		IsCompleted: np.IsCompleted,
		StartTime:   Timestamp(np.StartTime),
		EndTime:     NullTimestamp(np.EndTime),
		Notes:       np.Notes,
		CreatedAt:   now,
	}
	setIf(&p.Duration, np.Duration)
	return p
}

type PomodoroSessionUpdate struct {
	IsCompleted *bool        `json:"isCompleted"`
	EndTime     *null.Time   `json:"endTime"`
	Notes       *null.String `json:"notes"`
}

func (u PomodoroSessionUpdate) Apply(p *PomodoroSession) {
	setIf(&p.IsCompleted, u.IsCompleted)
	if u.EndTime != nil {
		p.EndTime = NullTimestamp(*u.EndTime)
	}
	setIf(&p.Notes, u.Notes)
}

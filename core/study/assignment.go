package study

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Assignment priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Assignment statuses.
// StatusOverdue is never written by this package: it is derived at display time (see Assignment.IsOverdue).
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusOverdue    = "overdue"
)

// Assignment types
const (
	TypeAssignment = "assignment"
	TypeExam       = "exam"
	TypeQuiz       = "quiz"
	TypeProject    = "project"
)

type Assignment struct {
	ID          int          `json:"id" db:"id"`
	UserID      int          `json:"userId" db:"user_id"`
	CourseID    int          `json:"courseId" db:"course_id"`
	Title       string       `json:"title" db:"title"`
	Description null.String  `json:"description" db:"description"`
	DueDate     time.Time    `json:"dueDate" db:"due_date"`
	Priority    string       `json:"priority" db:"priority"`
	Status      string       `json:"status" db:"status"`
	Grade       null.Float64 `json:"grade" db:"grade"`
	MaxPoints   null.Float64 `json:"maxPoints" db:"max_points"`
	Type        string       `json:"type" db:"type"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
}

// IsOverdue reports whether a not yet completed assignment is past its due date.
func (a Assignment) IsOverdue(now time.Time) bool {
	return a.Status != StatusCompleted && a.DueDate.Before(now)
}

func (a Assignment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	UserID      int          `json:"userId"`
	CourseID    int          `json:"courseId" validate:"required"`
	Title       string       `json:"title" validate:"required,notblank"`
	Description null.String  `json:"description"`
	DueDate     time.Time    `json:"dueDate" validate:"required"`
	Priority    string       `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      string       `json:"status" validate:"omitempty,oneof=pending completed overdue in_progress"`
	Grade       null.Float64 `json:"grade"`
	MaxPoints   null.Float64 `json:"maxPoints"`
	Type        string       `json:"type" validate:"omitempty,oneof=assignment exam quiz project"`
}

func (na NewAssignment) Build(now time.Time) Assignment {
	a := Assignment{
		UserID:      na.UserID,
		CourseID:    na.CourseID,
		Title:       na.Title,
		Description: na.Description,
		DueDate:     Timestamp(na.DueDate),
		Priority:    orDefault(na.Priority, PriorityMedium),
		Status:      orDefault(na.Status, StatusPending),
		Grade:       na.Grade,
		MaxPoints:   na.MaxPoints,
		Type:        orDefault(na.Type, TypeAssignment),
		CreatedAt:   now,
	}
	return a
}

// AssignmentUpdate holds the fields to change on an Assignment; nil fields are left untouched.
type AssignmentUpdate struct {
	CourseID    *int          `json:"courseId"`
	Title       *string       `json:"title" validate:"omitempty,notblank"`
	Description *null.String  `json:"description"`
	DueDate     *time.Time    `json:"dueDate"`
	Priority    *string       `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      *string       `json:"status" validate:"omitempty,oneof=pending completed overdue in_progress"`
	Grade       *null.Float64 `json:"grade"`
	MaxPoints   *null.Float64 `json:"maxPoints"`
	Type        *string       `json:"type" validate:"omitempty,oneof=assignment exam quiz project"`
}

func (u AssignmentUpdate) Apply(a *Assignment) {
	setIf(&a.CourseID, u.CourseID)
	setIf(&a.Title, u.Title)
	setIf(&a.Description, u.Description)
	if u.DueDate != nil {
		a.DueDate = Timestamp(*u.DueDate)
	}
	setIf(&a.Priority, u.Priority)
	setIf(&a.Status, u.Status)
	setIf(&a.Grade, u.Grade)
	setIf(&a.MaxPoints, u.MaxPoints)
	setIf(&a.Type, u.Type)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

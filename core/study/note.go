package study

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Note struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"userId" db:"user_id"`
	CourseID  null.Int  `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Tags      []string  `json:"tags" db:"-"` // array column, mapped by the SQL backend
	IsShared  bool      `json:"isShared" db:"is_shared"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NewNote contains information needed to create a new Note.
type NewNote struct {
	UserID   int      `json:"userId"`
	CourseID null.Int `json:"courseId"`
	Title    string   `json:"title" validate:"required,notblank"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags" validate:"omitempty,dive,notblank"`
	IsShared bool     `json:"isShared"`
}

func (nn NewNote) Build(now time.Time) Note {
	return Note{
		UserID:    nn.UserID,
		CourseID:  nn.CourseID,
		Title:     nn.Title,
		Content:   nn.Content,
		Tags:      copyTags(nn.Tags),
		IsShared:  nn.IsShared,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NoteUpdate holds the fields to change on a Note; nil fields are left untouched.
// UpdatedAt is always refreshed, even when nothing else changes.
type NoteUpdate struct {
	CourseID *null.Int `json:"courseId"`
	Title    *string   `json:"title" validate:"omitempty,notblank"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags" validate:"omitempty,dive,notblank"`
	IsShared *bool     `json:"isShared"`
}

// Apply changes n in place and moves UpdatedAt forward (see Touch).
func (u NoteUpdate) Apply(n *Note, now time.Time) {
	setIf(&n.CourseID, u.CourseID)
	setIf(&n.Title, u.Title)
	setIf(&n.Content, u.Content)
	if u.Tags != nil {
		n.Tags = copyTags(*u.Tags)
	}
	setIf(&n.IsShared, u.IsShared)
	n.UpdatedAt = Touch(n.UpdatedAt, now)
}

// Touch returns `now` unless it is not after `prev`, in which case it returns prev + 1µs.
// Keeps updatedAt strictly increasing when two writes land in the same clock tick.
func Touch(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}

// Timestamp brings t to storage precision: UTC, truncated to microseconds.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func NullTimestamp(t null.Time) null.Time {
	if !t.Valid {
		return t
	}
	return null.TimeFrom(Timestamp(t.Time))
}

func copyTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	cp := make([]string, len(tags))
	copy(cp, tags)
	return cp
}

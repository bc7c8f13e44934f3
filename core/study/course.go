package study

import "github.com/volatiletech/null/v8"

const (
	DefaultCourseColor   = "#6366f1"
	DefaultCourseCredits = 3
)

type Course struct {
	ID         int         `json:"id" db:"id"`
	UserID     int         `json:"userId" db:"user_id"`
	Name       string      `json:"name" db:"name"`
	Code       string      `json:"code" db:"code"`
	Color      string      `json:"color" db:"color"`
	Credits    int         `json:"credits" db:"credits"`
	Instructor null.String `json:"instructor" db:"instructor"`
	Semester   string      `json:"semester" db:"semester"`
	Year       int         `json:"year" db:"year"`
}

// NewCourse contains information needed to create a new Course.
// An empty Color and a nil Credits fall back to their defaults.
type NewCourse struct {
	UserID     int         `json:"userId"`
	Name       string      `json:"name" validate:"required,notblank"`
	Code       string      `json:"code" validate:"required,notblank"`
	Color      string      `json:"color" validate:"omitempty,hexcolor"`
	Credits    *int        `json:"credits" validate:"omitempty,min=0"`
	Instructor null.String `json:"instructor"`
	Semester   string      `json:"semester" validate:"required,notblank"`
	Year       int         `json:"year" validate:"required,min=1900,max=9999"`
}

func (nc NewCourse) Build() Course {
	c := Course{
		UserID:     nc.UserID,
		Name:       nc.Name,
		Code:       nc.Code,
		Color:      nc.Color,
		Credits:    DefaultCourseCredits,
		Instructor: nc.Instructor,
		Semester:   nc.Semester,
		Year:       nc.Year,
	}
	if c.Color == "" {
		c.Color = DefaultCourseColor
	}
	if nc.Credits != nil {
		c.Credits = *nc.Credits
	}
	return c
}

// CourseUpdate holds the fields to change on a Course; nil fields are left untouched.
type CourseUpdate struct {
	Name       *string      `json:"name" validate:"omitempty,notblank"`
	Code       *string      `json:"code" validate:"omitempty,notblank"`
	Color      *string      `json:"color" validate:"omitempty,hexcolor"`
	Credits    *int         `json:"credits" validate:"omitempty,min=0"`
	Instructor *null.String `json:"instructor"`
	Semester   *string      `json:"semester" validate:"omitempty,notblank"`
	Year       *int         `json:"year" validate:"omitempty,min=1900,max=9999"`
}

func (u CourseUpdate) Apply(c *Course) {
	setIf(&c.Name, u.Name)
	setIf(&c.Code, u.Code)
	setIf(&c.Color, u.Color)
	setIf(&c.Credits, u.Credits)
	setIf(&c.Instructor, u.Instructor)
	setIf(&c.Semester, u.Semester)
	setIf(&c.Year, u.Year)
}

// setIf copies *v into dst when v is set.
func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

package study

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Flashcard difficulties
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	DefaultInterval   = 1 // days
	DefaultEaseFactor = 2.5
)

// Flashcard carries spaced-repetition bookkeeping (NextReview, Interval, EaseFactor).
// Nothing schedules reviews from these fields: callers update them directly.
type Flashcard struct {
	ID           int       `json:"id" db:"id"`
	UserID       int       `json:"userId" db:"user_id"`
	CourseID     null.Int  `json:"courseId" db:"course_id"`
	Front        string    `json:"front" db:"front"`
	Back         string    `json:"back" db:"back"`
	Difficulty   string    `json:"difficulty" db:"difficulty"`
	NextReview   time.Time `json:"nextReview" db:"next_review"`
	Interval     int       `json:"interval" db:"interval"`
	EaseFactor   float64   `json:"easeFactor" db:"ease_factor"`
	ReviewCount  int       `json:"reviewCount" db:"review_count"`
	CorrectCount int       `json:"correctCount" db:"correct_count"`
	Tags         []string  `json:"tags" db:"-"` // array column, mapped by the SQL backend
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type NewFlashcard struct {
	UserID       int       `json:"userId"`
	CourseID     null.Int  `json:"courseId"`
	Front        string    `json:"front" validate:"required,notblank"`
	Back         string    `json:"back" validate:"required,notblank"`
	Difficulty   string    `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	NextReview   null.Time `json:"nextReview"`
	Interval     *int      `json:"interval" validate:"omitempty,min=0"`
	EaseFactor   *float64  `json:"easeFactor" validate:"omitempty,gt=0"`
	ReviewCount  int       `json:"reviewCount" validate:"min=0"`
	CorrectCount int       `json:"correctCount" validate:"min=0,ltefield=ReviewCount"`
	Tags         []string  `json:"tags" validate:"omitempty,dive,notblank"`
}

func (nf NewFlashcard) Build(now time.Time) Flashcard {
	f := Flashcard{
		UserID:       nf.UserID,
		CourseID:     nf.CourseID,
		Front:        nf.Front,
		Back:         nf.Back,
		Difficulty:   orDefault(nf.Difficulty, DifficultyMedium),
		NextReview:   now,
		Interval:     DefaultInterval,
		EaseFactor:   DefaultEaseFactor,
		ReviewCount:  nf.ReviewCount,
		CorrectCount: nf.CorrectCount,
		Tags:         copyTags(nf.Tags),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if nf.NextReview.Valid {
		f.NextReview = Timestamp(nf.NextReview.Time)
	}
	setIf(&f.Interval, nf.Interval)
	setIf(&f.EaseFactor, nf.EaseFactor)
	return f
}

// FlashcardUpdate holds the fields to change on a Flashcard; UpdatedAt is always refreshed.
type FlashcardUpdate struct {
	CourseID     *null.Int  `json:"courseId"`
	Front        *string    `json:"front" validate:"omitempty,notblank"`
	Back         *string    `json:"back" validate:"omitempty,notblank"`
	Difficulty   *string    `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	NextReview   *time.Time `json:"nextReview"`
	Interval     *int       `json:"interval" validate:"omitempty,min=0"`
	EaseFactor   *float64   `json:"easeFactor" validate:"omitempty,gt=0"`
	ReviewCount  *int       `json:"reviewCount" validate:"omitempty,min=0"`
	CorrectCount *int       `json:"correctCount" validate:"omitempty,min=0"`
	Tags         *[]string  `json:"tags" validate:"omitempty,dive,notblank"`
}

func (u FlashcardUpdate) Apply(f *Flashcard, now time.Time) {
	setIf(&f.CourseID, u.CourseID)
	setIf(&f.Front, u.Front)
	setIf(&f.Back, u.Back)
	setIf(&f.Difficulty, u.Difficulty)
	if u.NextReview != nil {
		f.NextReview = Timestamp(*u.NextReview)
	}
	setIf(&f.Interval, u.Interval)
	setIf(&f.EaseFactor, u.EaseFactor)
	setIf(&f.ReviewCount, u.ReviewCount)
	setIf(&f.CorrectCount, u.CorrectCount)
	if u.Tags != nil {
		f.Tags = copyTags(*u.Tags)
	}
	f.UpdatedAt = Touch(f.UpdatedAt, now)
}

// Accuracy is the share of correct reviews, in percent (0 before the first review).
func (f Flashcard) Accuracy() float64 {
	if f.ReviewCount == 0 {
		return 0
	}
	return round(float64(f.CorrectCount)/float64(f.ReviewCount)*100, 0)
}

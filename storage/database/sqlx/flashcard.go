package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

// Flashcards

type flashcardRow struct {
	study.Flashcard
	Tags pq.StringArray `db:"tags"`
}

func (r flashcardRow) flashcard() study.Flashcard {
	f := r.Flashcard
	f.Tags = r.Tags
	return f
}

func flashcardPtr(r *flashcardRow) *study.Flashcard {
	if r == nil {
		return nil
	}
	f := r.flashcard()
	return &f
}

var insertFlashcardQuery = insertQuery(
	"flashcards",
	"user_id", "course_id", "front", "back", "difficulty", "next_review", "interval", "ease_factor",
	"review_count", "correct_count", "tags", "created_at", "updated_at",
)

func (s *Store) ListFlashcards(ctx context.Context, userID int) ([]study.Flashcard, error) {
	rows, err := list[flashcardRow](ctx, s, s.selectFrom("flashcards").Where(sq.Eq{"user_id": userID}).OrderBy("id"), "flashcards")
	if err != nil {
		return nil, err
	}
	cards := make([]study.Flashcard, len(rows))
	for i, r := range rows {
		cards[i] = r.flashcard()
	}
	return cards, nil
}

func (s *Store) GetFlashcard(ctx context.Context, id int) (*study.Flashcard, error) {
	r, err := get[flashcardRow](ctx, s, s.selectFrom("flashcards").Where(byID(id)), "flashcard")
	if err != nil {
		return nil, err
	}
	return flashcardPtr(r), nil
}

func (s *Store) CreateFlashcard(ctx context.Context, nf study.NewFlashcard) (study.Flashcard, error) {
	f := nf.Build(core.Now())
	r, err := insert[flashcardRow](ctx, s, insertFlashcardQuery, flashcardRow{Flashcard: f, Tags: f.Tags}, "flashcard")
	if err != nil {
		return study.Flashcard{}, err
	}
	return r.flashcard(), nil
}

func (s *Store) UpdateFlashcard(ctx context.Context, id int, upd study.FlashcardUpdate) (*study.Flashcard, error) {
	updatedAt, ok, err := s.touched(ctx, "flashcards", byID(id))
	if err != nil || !ok {
		return nil, err
	}
	m := map[string]interface{}{"updated_at": updatedAt}
	set(m, "course_id", upd.CourseID)
	set(m, "front", upd.Front)
	set(m, "back", upd.Back)
	set(m, "difficulty", upd.Difficulty)
	if upd.NextReview != nil {
		m["next_review"] = study.Timestamp(*upd.NextReview)
	}
	set(m, "interval", upd.Interval)
	set(m, "ease_factor", upd.EaseFactor)
	set(m, "review_count", upd.ReviewCount)
	set(m, "correct_count", upd.CorrectCount)
	if upd.Tags != nil {
		m["tags"] = pq.StringArray(*upd.Tags)
	}
	r, err := update[flashcardRow](ctx, s, "flashcards", byID(id), m, "flashcard")
	if err != nil {
		return nil, err
	}
	return flashcardPtr(r), nil
}

func (s *Store) DeleteFlashcard(ctx context.Context, id int) (bool, error) {
	return s.delete(ctx, "flashcards", byID(id), "flashcard")
}

// Pomodoro sessions

var insertPomodoroQuery = insertQuery(
	"pomodoro_sessions",
	"user_id", "course_id", "duration", "type", "is_completed", "start_time", "end_time", "notes", "created_at",
)

func (s *Store) ListPomodoroSessions(ctx context.Context, userID int) ([]study.PomodoroSession, error) {
	q := s.selectFrom("pomodoro_sessions").Where(sq.Eq{"user_id": userID}).OrderBy("id")
	return list[study.PomodoroSession](ctx, s, q, "pomodoro sessions")
}

func (s *Store) GetPomodoroSession(ctx context.Context, id int) (*study.PomodoroSession, error) {
	return get[study.PomodoroSession](ctx, s, s.selectFrom("pomodoro_sessions").Where(byID(id)), "pomodoro session")
}

func (s *Store) CreatePomodoroSession(ctx context.Context, np study.NewPomodoroSession) (study.PomodoroSession, error) {
	return insert[study.PomodoroSession](ctx, s, insertPomodoroQuery, np.Build(core.Now()), "pomodoro session")
}

func (s *Store) UpdatePomodoroSession(ctx context.Context, id int, upd study.PomodoroSessionUpdate) (*study.PomodoroSession, error) {
	m := make(map[string]interface{})
	set(m, "is_completed", upd.IsCompleted)
	if upd.EndTime != nil {
		m["end_time"] = study.NullTimestamp(*upd.EndTime)
	}
	set(m, "notes", upd.Notes)
	return update[study.PomodoroSession](ctx, s, "pomodoro_sessions", byID(id), m, "pomodoro session")
}

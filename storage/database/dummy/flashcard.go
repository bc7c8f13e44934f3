package dummydb

import (
	"context"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

// Flashcards

func (s *Store) ListFlashcards(_ context.Context, userID int) ([]study.Flashcard, error) {
	return s.db.flashcards.filter(func(f study.Flashcard) bool { return f.UserID == userID }), nil
}

func (s *Store) GetFlashcard(_ context.Context, id int) (*study.Flashcard, error) {
	f, _ := s.db.flashcards.get(id)
	return f, nil
}

func (s *Store) CreateFlashcard(_ context.Context, nf study.NewFlashcard) (study.Flashcard, error) {
	f := nf.Build(core.Now())
	f.ID = s.db.nextID()
	return s.db.flashcards.insert(f.ID, f), nil
}

func (s *Store) UpdateFlashcard(_ context.Context, id int, upd study.FlashcardUpdate) (*study.Flashcard, error) {
	now := core.Now()
	f, _ := s.db.flashcards.update(id, func(f *study.Flashcard) { upd.Apply(f, now) })
	return f, nil
}

func (s *Store) DeleteFlashcard(_ context.Context, id int) (bool, error) {
	return s.db.flashcards.delete(id), nil
}

// Pomodoro Sessions

func (s *Store) ListPomodoroSessions(_ context.Context, userID int) ([]study.PomodoroSession, error) {
	return s.db.pomodoroSessions.filter(func(p study.PomodoroSession) bool { return p.UserID == userID }), nil
}

func (s *Store) GetPomodoroSession(_ context.Context, id int) (*study.PomodoroSession, error) {
	p, _ := s.db.pomodoroSessions.get(id)
	return p, nil
}

func (s *Store) CreatePomodoroSession(_ context.Context, np study.NewPomodoroSession) (study.PomodoroSession, error) {
	p := np.Build(core.Now())
	p.ID = s.db.nextID()
	return s.db.pomodoroSessions.insert(p.ID, p), nil
}

func (s *Store) UpdatePomodoroSession(_ context.Context, id int, upd study.PomodoroSessionUpdate) (*study.PomodoroSession, error) {
	p, _ := s.db.pomodoroSessions.update(id, upd.Apply)
	return p, nil
}

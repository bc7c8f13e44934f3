package dummydb

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/trezcool/studyhub/core/study"
	"github.com/trezcool/studyhub/core/user"
)

// DB keeps every table in memory; its content is lost with the process.
// Ids come from one counter shared by all the tables.
type DB struct {
	pk int64

	users             *table[user.User]
	courses           *table[study.Course]
	assignments       *table[study.Assignment]
	notes             *table[study.Note]
	studyGroups       *table[study.StudyGroup]
	studyGroupMembers *table[study.StudyGroupMember]
	studySessions     *table[study.StudySession]
	achievements      *table[study.Achievement]
	userAchievements  *table[study.UserAchievement]
	challenges        *table[study.Challenge]
	userChallenges    *table[study.UserChallenge]
	userStats         *table[study.UserStats]
	flashcards        *table[study.Flashcard]
	pomodoroSessions  *table[study.PomodoroSession]
}

func Open() (*DB, error) {
	db := &DB{
		users:             newTable[user.User](nil),
		courses:           newTable[study.Course](nil),
		assignments:       newTable[study.Assignment](nil),
		notes:             newTable(cloneNote),
		studyGroups:       newTable[study.StudyGroup](nil),
		studyGroupMembers: newTable[study.StudyGroupMember](nil),
		studySessions:     newTable[study.StudySession](nil),
		achievements:      newTable[study.Achievement](nil),
		userAchievements:  newTable[study.UserAchievement](nil),
		challenges:        newTable[study.Challenge](nil),
		userChallenges:    newTable[study.UserChallenge](nil),
		userStats:         newTable[study.UserStats](nil),
		flashcards:        newTable(cloneFlashcard),
		pomodoroSessions:  newTable[study.PomodoroSession](nil),
	}
	return db, nil
}

func (db *DB) nextID() int {
	return int(atomic.AddInt64(&db.pk, 1))
}

// table guards one map of records. Records go in and out by value (cloned when they hold slices),
// so callers never share memory with the stored rows.
// Concurrent updates of one record are last-writer-wins.
type table[T any] struct {
	sync.RWMutex
	rows  map[int]T
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(rec T) T { return rec }
	}
	return &table[T]{rows: make(map[int]T), clone: clone}
}

func (t *table[T]) get(id int) (*T, bool) {
	t.RLock()
	defer t.RUnlock()

	rec, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	rec = t.clone(rec)
	return &rec, true
}

func (t *table[T]) insert(id int, rec T) T {
	t.Lock()
	defer t.Unlock()

	t.rows[id] = t.clone(rec)
	return t.clone(rec)
}

// filter returns the matching records ordered by id. A nil keep matches everything.
func (t *table[T]) filter(keep func(T) bool) []T {
	t.RLock()
	defer t.RUnlock()

	ids := make([]int, 0, len(t.rows))
	for id, rec := range t.rows {
		if keep == nil || keep(rec) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	recs := make([]T, 0, len(ids))
	for _, id := range ids {
		recs = append(recs, t.clone(t.rows[id]))
	}
	return recs
}

// find returns the first record (by id) that matches.
func (t *table[T]) find(match func(T) bool) (*T, bool) {
	recs := t.filter(match)
	if len(recs) == 0 {
		return nil, false
	}
	return &recs[0], true
}

func (t *table[T]) update(id int, apply func(*T)) (*T, bool) {
	t.Lock()
	defer t.Unlock()

	rec, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	apply(&rec)
	t.rows[id] = t.clone(rec)
	return &rec, true
}

func (t *table[T]) delete(id int) bool {
	t.Lock()
	defer t.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T]) deleteWhere(match func(T) bool) int {
	t.Lock()
	defer t.Unlock()

	var n int
	for id, rec := range t.rows {
		if match(rec) {
			delete(t.rows, id)
			n++
		}
	}
	return n
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	return append(make([]string, 0, len(tags)), tags...)
}

func cloneNote(n study.Note) study.Note {
	n.Tags = cloneTags(n.Tags)
	return n
}

func cloneFlashcard(f study.Flashcard) study.Flashcard {
	f.Tags = cloneTags(f.Tags)
	return f
}

package study

import (
	"context"

	"github.com/trezcool/studyhub/core/user"
)

// DefaultListLimit applies to the upcoming assignments and recent notes queries when no positive limit is given.
const DefaultListLimit = 5

// Storage is implemented by every backend.
//
// Getters and updates return a nil record (and no error) when the id is unknown; updates never create.
// Deletes report whether a record existed. Lists return an empty, non-nil slice when nothing matches,
// ordered by id unless stated otherwise. Creates apply the documented defaults and do not check
// that referenced records exist. Errors are reserved for backend failures.
type Storage interface {
	user.Repository
	CourseRepository
	AssignmentRepository
	NoteRepository
	StudyGroupRepository
	StudySessionRepository
	GamificationRepository
	FlashcardRepository
	PomodoroRepository

	GetDashboardStats(ctx context.Context, userID int) (DashboardStats, error)
}

type CourseRepository interface {
	ListCourses(ctx context.Context, userID int) ([]Course, error)
	GetCourse(ctx context.Context, id int) (*Course, error)
	CreateCourse(ctx context.Context, nc NewCourse) (Course, error)
	UpdateCourse(ctx context.Context, id int, upd CourseUpdate) (*Course, error)
	DeleteCourse(ctx context.Context, id int) (bool, error)
}

type AssignmentRepository interface {
	ListAssignments(ctx context.Context, userID int) ([]Assignment, error)
	ListAssignmentsByCourse(ctx context.Context, courseID int) ([]Assignment, error)
	// ListUpcomingAssignments returns the user's not completed assignments due strictly after now,
	// soonest first.
	ListUpcomingAssignments(ctx context.Context, userID, limit int) ([]Assignment, error)
	GetAssignment(ctx context.Context, id int) (*Assignment, error)
	CreateAssignment(ctx context.Context, na NewAssignment) (Assignment, error)
	UpdateAssignment(ctx context.Context, id int, upd AssignmentUpdate) (*Assignment, error)
	DeleteAssignment(ctx context.Context, id int) (bool, error)
}

type NoteRepository interface {
	ListNotes(ctx context.Context, userID int) ([]Note, error)
	ListNotesByCourse(ctx context.Context, courseID int) ([]Note, error)
	// ListRecentNotes returns the user's notes, most recently updated first.
	ListRecentNotes(ctx context.Context, userID, limit int) ([]Note, error)
	// SearchNotes does a case-insensitive substring match on title or content.
	SearchNotes(ctx context.Context, userID int, query string) ([]Note, error)
	GetNote(ctx context.Context, id int) (*Note, error)
	CreateNote(ctx context.Context, nn NewNote) (Note, error)
	UpdateNote(ctx context.Context, id int, upd NoteUpdate) (*Note, error)
	DeleteNote(ctx context.Context, id int) (bool, error)
}

type StudyGroupRepository interface {
	// ListStudyGroups returns the groups the user created or is a member of, each once.
	ListStudyGroups(ctx context.Context, userID int) ([]StudyGroup, error)
	GetStudyGroup(ctx context.Context, id int) (*StudyGroup, error)
	CreateStudyGroup(ctx context.Context, ng NewStudyGroup) (StudyGroup, error)
	UpdateStudyGroup(ctx context.Context, id int, upd StudyGroupUpdate) (*StudyGroup, error)
	DeleteStudyGroup(ctx context.Context, id int) (bool, error)

	ListStudyGroupMembers(ctx context.Context, groupID int) ([]StudyGroupMember, error)
	AddStudyGroupMember(ctx context.Context, nm NewStudyGroupMember) (StudyGroupMember, error)
	RemoveStudyGroupMember(ctx context.Context, groupID, userID int) (bool, error)
}

type StudySessionRepository interface {
	ListStudySessions(ctx context.Context, userID int) ([]StudySession, error)
	CreateStudySession(ctx context.Context, ns NewStudySession) (StudySession, error)
}

type GamificationRepository interface {
	// ListAchievements returns the active catalog entries only.
	ListAchievements(ctx context.Context) ([]Achievement, error)
	CreateAchievement(ctx context.Context, na NewAchievement) (Achievement, error)
	ListUserAchievements(ctx context.Context, userID int) ([]UserAchievement, error)
	CreateUserAchievement(ctx context.Context, nu NewUserAchievement) (UserAchievement, error)
	UpdateUserAchievement(ctx context.Context, id int, upd UserAchievementUpdate) (*UserAchievement, error)

	ListChallenges(ctx context.Context) ([]Challenge, error)
	ListActiveChallenges(ctx context.Context) ([]Challenge, error)
	CreateChallenge(ctx context.Context, nc NewChallenge) (Challenge, error)
	ListUserChallenges(ctx context.Context, userID int) ([]UserChallenge, error)
	CreateUserChallenge(ctx context.Context, nu NewUserChallenge) (UserChallenge, error)
	UpdateUserChallenge(ctx context.Context, id int, upd UserChallengeUpdate) (*UserChallenge, error)

	GetUserStats(ctx context.Context, userID int) (*UserStats, error)
	CreateUserStats(ctx context.Context, ns NewUserStats) (UserStats, error)
	UpdateUserStats(ctx context.Context, userID int, upd UserStatsUpdate) (*UserStats, error)
}

type FlashcardRepository interface {
	ListFlashcards(ctx context.Context, userID int) ([]Flashcard, error)
	GetFlashcard(ctx context.Context, id int) (*Flashcard, error)
	CreateFlashcard(ctx context.Context, nf NewFlashcard) (Flashcard, error)
	UpdateFlashcard(ctx context.Context, id int, upd FlashcardUpdate) (*Flashcard, error)
	DeleteFlashcard(ctx context.Context, id int) (bool, error)
}

type PomodoroRepository interface {
	ListPomodoroSessions(ctx context.Context, userID int) ([]PomodoroSession, error)
	GetPomodoroSession(ctx context.Context, id int) (*PomodoroSession, error)
	CreatePomodoroSession(ctx context.Context, np NewPomodoroSession) (PomodoroSession, error)
	UpdatePomodoroSession(ctx context.Context, id int, upd PomodoroSessionUpdate) (*PomodoroSession, error)
}

// Limit returns DefaultListLimit for non-positive limits.
func Limit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

package study

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Achievement types
const (
	AchievementStreak     = "streak"
	AchievementCompletion = "completion"
	AchievementTime       = "time"
	AchievementGrade      = "grade"
)

// Challenge types & categories
const (
	ChallengeDaily   = "daily"
	ChallengeWeekly  = "weekly"
	ChallengeMonthly = "monthly"

	CategoryStudy       = "study"
	CategoryAssignments = "assignments"
	CategoryNotes       = "notes"
)

const DefaultLevel = 1

// Achievement is a catalog entry: unlocked once a user reaches Requirement.
type Achievement struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon" db:"icon"`
	Type        string `json:"type" db:"type"`
	Requirement int    `json:"requirement" db:"requirement"`
	Points      int    `json:"points" db:"points"`
	IsActive    bool   `json:"isActive" db:"is_active"`
}

type NewAchievement struct {
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=streak completion time grade"`
	Requirement int    `json:"requirement" validate:"min=0"`
	Points      int    `json:"points" validate:"min=0"`
	IsActive    *bool  `json:"isActive"`
}

func (na NewAchievement) Build() Achievement {
	a := Achievement{
		Name:        na.Name,
		Description: na.Description,
		Icon:        na.Icon,
		Type:        na.Type,
		Requirement: na.Requirement,
		Points:      na.Points,
		IsActive:    true,
	}
	setIf(&a.IsActive, na.IsActive)
	return a
}

// UserAchievement tracks a user's progress towards an Achievement.
type UserAchievement struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"userId" db:"user_id"`
	AchievementID int       `json:"achievementId" db:"achievement_id"`
	Progress      int       `json:"progress" db:"progress"`
	IsUnlocked    bool      `json:"isUnlocked" db:"is_unlocked"`
	UnlockedAt    null.Time `json:"unlockedAt" db:"unlocked_at"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

type NewUserAchievement struct {
	UserID        int       `json:"userId"`
	AchievementID int       `json:"achievementId" validate:"required"`
	Progress      int       `json:"progress" validate:"min=0"`
	IsUnlocked    bool      `json:"isUnlocked"`
	UnlockedAt    null.Time `json:"unlockedAt"`
}

func (nu NewUserAchievement) Build(now time.Time) UserAchievement {
	return UserAchievement{
		UserID:        nu.UserID,
		AchievementID: nu.AchievementID,
		Progress:      nu.Progress,
		IsUnlocked:    nu.IsUnlocked,
		UnlockedAt:    NullTimestamp(nu.UnlockedAt),
		CreatedAt:     now,
	}
}

type UserAchievementUpdate struct {
	Progress   *int       `json:"progress" validate:"omitempty,min=0"`
	IsUnlocked *bool      `json:"isUnlocked"`
	UnlockedAt *null.Time `json:"unlockedAt"`
}

func (u UserAchievementUpdate) Apply(ua *UserAchievement) {
	setIf(&ua.Progress, u.Progress)
	setIf(&ua.IsUnlocked, u.IsUnlocked)
	if u.UnlockedAt != nil {
		ua.UnlockedAt = NullTimestamp(*u.UnlockedAt)
	}
}

// Challenge is a catalog entry: completed once a user reaches Target between StartDate and EndDate.
type Challenge struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Type        string    `json:"type" db:"type"`
	Category    string    `json:"category" db:"category"`
	Target      int       `json:"target" db:"target"`
	Points      int       `json:"points" db:"points"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	IsActive    bool      `json:"isActive" db:"is_active"`
}

type NewChallenge struct {
	Name        string    `json:"name" validate:"required,notblank"`
	Description string    `json:"description" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=daily weekly monthly"`
	Category    string    `json:"category" validate:"required,oneof=study assignments notes"`
	Target      int       `json:"target" validate:"min=0"`
	Points      int       `json:"points" validate:"min=0"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	IsActive    *bool     `json:"isActive"`
}

func (nc NewChallenge) Build() Challenge {
	c := Challenge{
		Name:        nc.Name,
		Description: nc.Description,
		Type:        nc.Type,
		Category:    nc.Category,
		Target:      nc.Target,
		Points:      nc.Points,
		StartDate:   Timestamp(nc.StartDate),
		EndDate:     Timestamp(nc.EndDate),
		IsActive:    true,
	}
	setIf(&c.IsActive, nc.IsActive)
	return c
}

// UserChallenge tracks a user's progress towards a Challenge.
type UserChallenge struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"userId" db:"user_id"`
	ChallengeID int       `json:"challengeId" db:"challenge_id"`
	Progress    int       `json:"progress" db:"progress"`
	IsCompleted bool      `json:"isCompleted" db:"is_completed"`
	CompletedAt null.Time `json:"completedAt" db:"completed_at"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type NewUserChallenge struct {
	UserID      int       `json:"userId"`
	ChallengeID int       `json:"challengeId" validate:"required"`
	Progress    int       `json:"progress" validate:"min=0"`
	IsCompleted bool      `json:"isCompleted"`
	CompletedAt null.Time `json:"completedAt"`
}

func (nu NewUserChallenge) Build(now time.Time) UserChallenge {
	return UserChallenge{
		UserID:      nu.UserID,
		ChallengeID: nu.ChallengeID,
		Progress:    nu.Progress,
		IsCompleted: nu.IsCompleted,
		CompletedAt: NullTimestamp(nu.CompletedAt),
		CreatedAt:   now,
	}
}

type UserChallengeUpdate struct {
	Progress    *int       `json:"progress" validate:"omitempty,min=0"`
	IsCompleted *bool      `json:"isCompleted"`
	CompletedAt *null.Time `json:"completedAt"`
}

func (u UserChallengeUpdate) Apply(uc *UserChallenge) {
	setIf(&uc.Progress, u.Progress)
	setIf(&uc.IsCompleted, u.IsCompleted)
	if u.CompletedAt != nil {
		uc.CompletedAt = NullTimestamp(*u.CompletedAt)
	}
}

// UserStats is the single gamification aggregate row of a user.
type UserStats struct {
	ID                   int       `json:"id" db:"id"`
	UserID               int       `json:"userId" db:"user_id"`
	TotalPoints          int       `json:"totalPoints" db:"total_points"`
	Level                int       `json:"level" db:"level"`
	StudyStreak          int       `json:"studyStreak" db:"study_streak"`
	LongestStreak        int       `json:"longestStreak" db:"longest_streak"`
	TotalStudyTime       int       `json:"totalStudyTime" db:"total_study_time"` // minutes
	AssignmentsCompleted int       `json:"assignmentsCompleted" db:"assignments_completed"`
	NotesCreated         int       `json:"notesCreated" db:"notes_created"`
	LastActiveDate       null.Time `json:"lastActiveDate" db:"last_active_date"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`
}

type NewUserStats struct {
	UserID               int       `json:"userId"`
	TotalPoints          int       `json:"totalPoints" validate:"min=0"`
	Level                *int      `json:"level" validate:"omitempty,min=1"`
	StudyStreak          int       `json:"studyStreak" validate:"min=0"`
	LongestStreak        int       `json:"longestStreak" validate:"min=0"`
	TotalStudyTime       int       `json:"totalStudyTime" validate:"min=0"`
	AssignmentsCompleted int       `json:"assignmentsCompleted" validate:"min=0"`
	NotesCreated         int       `json:"notesCreated" validate:"min=0"`
	LastActiveDate       null.Time `json:"lastActiveDate"`
}

func (ns NewUserStats) Build(now time.Time) UserStats {
	s := UserStats{
		UserID:               ns.UserID,
		TotalPoints:          ns.TotalPoints,
		Level:                DefaultLevel,
		StudyStreak:          ns.StudyStreak,
		LongestStreak:        ns.LongestStreak,
		TotalStudyTime:       ns.TotalStudyTime,
		AssignmentsCompleted: ns.AssignmentsCompleted,
		NotesCreated:         ns.NotesCreated,
		LastActiveDate:       NullTimestamp(ns.LastActiveDate),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	setIf(&s.Level, ns.Level)
	return s
}

// UserStatsUpdate holds the fields to change on a UserStats row; UpdatedAt is always refreshed.
type UserStatsUpdate struct {
	TotalPoints          *int       `json:"totalPoints" validate:"omitempty,min=0"`
	Level                *int       `json:"level" validate:"omitempty,min=1"`
	StudyStreak          *int       `json:"studyStreak" validate:"omitempty,min=0"`
	LongestStreak        *int       `json:"longestStreak" validate:"omitempty,min=0"`
	TotalStudyTime       *int       `json:"totalStudyTime" validate:"omitempty,min=0"`
	AssignmentsCompleted *int       `json:"assignmentsCompleted" validate:"omitempty,min=0"`
	NotesCreated         *int       `json:"notesCreated" validate:"omitempty,min=0"`
	LastActiveDate       *null.Time `json:"lastActiveDate"`
}

func (u UserStatsUpdate) Apply(s *UserStats, now time.Time) {
	setIf(&s.TotalPoints, u.TotalPoints)
	setIf(&s.Level, u.Level)
	setIf(&s.StudyStreak, u.StudyStreak)
	setIf(&s.LongestStreak, u.LongestStreak)
	setIf(&s.TotalStudyTime, u.TotalStudyTime)
	setIf(&s.AssignmentsCompleted, u.AssignmentsCompleted)
	setIf(&s.NotesCreated, u.NotesCreated)
	if u.LastActiveDate != nil {
		s.LastActiveDate = NullTimestamp(*u.LastActiveDate)
	}
	s.UpdatedAt = Touch(s.UpdatedAt, now)
}

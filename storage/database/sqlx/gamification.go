package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

var (
	insertAchievementQuery     = insertQuery("achievements", "name", "description", "icon", "type", "requirement", "points", "is_active")
	insertUserAchievementQuery = insertQuery(
		"user_achievements",
		"user_id", "achievement_id", "progress", "is_unlocked", "unlocked_at", "created_at",
	)
	insertChallengeQuery = insertQuery(
		"challenges",
		"name", "description", "type", "category", "target", "points", "start_date", "end_date", "is_active",
	)
	insertUserChallengeQuery = insertQuery(
		"user_challenges",
		"user_id", "challenge_id", "progress", "is_completed", "completed_at", "created_at",
	)
	insertUserStatsQuery = insertQuery(
		"user_stats",
		"user_id", "total_points", "level", "study_streak", "longest_streak", "total_study_time",
		"assignments_completed", "notes_created", "last_active_date", "created_at", "updated_at",
	)
)

// Achievements

func (s *Store) ListAchievements(ctx context.Context) ([]study.Achievement, error) {
	q := s.selectFrom("achievements").Where(sq.Eq{"is_active": true}).OrderBy("id")
	return list[study.Achievement](ctx, s, q, "achievements")
}

func (s *Store) CreateAchievement(ctx context.Context, na study.NewAchievement) (study.Achievement, error) {
	return insert[study.Achievement](ctx, s, insertAchievementQuery, na.Build(), "achievement")
}

func (s *Store) ListUserAchievements(ctx context.Context, userID int) ([]study.UserAchievement, error) {
	q := s.selectFrom("user_achievements").Where(sq.Eq{"user_id": userID}).OrderBy("id")
	return list[study.UserAchievement](ctx, s, q, "user achievements")
}

func (s *Store) CreateUserAchievement(ctx context.Context, nu study.NewUserAchievement) (study.UserAchievement, error) {
	return insert[study.UserAchievement](ctx, s, insertUserAchievementQuery, nu.Build(core.Now()), "user achievement")
}

func (s *Store) UpdateUserAchievement(ctx context.Context, id int, upd study.UserAchievementUpdate) (*study.UserAchievement, error) {
	m := make(map[string]interface{})
	set(m, "progress", upd.Progress)
	set(m, "is_unlocked", upd.IsUnlocked)
	if upd.UnlockedAt != nil {
		m["unlocked_at"] = study.NullTimestamp(*upd.UnlockedAt)
	}
	return update[study.UserAchievement](ctx, s, "user_achievements", byID(id), m, "user achievement")
}

// Challenges

func (s *Store) ListChallenges(ctx context.Context) ([]study.Challenge, error) {
	return list[study.Challenge](ctx, s, s.selectFrom("challenges").OrderBy("id"), "challenges")
}

func (s *Store) ListActiveChallenges(ctx context.Context) ([]study.Challenge, error) {
	q := s.selectFrom("challenges").Where(sq.Eq{"is_active": true}).OrderBy("id")
	return list[study.Challenge](ctx, s, q, "challenges")
}

func (s *Store) CreateChallenge(ctx context.Context, nc study.NewChallenge) (study.Challenge, error) {
	return insert[study.Challenge](ctx, s, insertChallengeQuery, nc.Build(), "challenge")
}

func (s *Store) ListUserChallenges(ctx context.Context, userID int) ([]study.UserChallenge, error) {
	q := s.selectFrom("user_challenges").Where(sq.Eq{"user_id": userID}).OrderBy("id")
	return list[study.UserChallenge](ctx, s, q, "user challenges")
}

func (s *Store) CreateUserChallenge(ctx context.Context, nu study.NewUserChallenge) (study.UserChallenge, error) {
	return insert[study.UserChallenge](ctx, s, insertUserChallengeQuery, nu.Build(core.Now()), "user challenge")
}

func (s *Store) UpdateUserChallenge(ctx context.Context, id int, upd study.UserChallengeUpdate) (*study.UserChallenge, error) {
	m := make(map[string]interface{})
	set(m, "progress", upd.Progress)
	set(m, "is_completed", upd.IsCompleted)
	if upd.CompletedAt != nil {
		m["completed_at"] = study.NullTimestamp(*upd.CompletedAt)
	}
	return update[study.UserChallenge](ctx, s, "user_challenges", byID(id), m, "user challenge")
}

// User stats

func (s *Store) GetUserStats(ctx context.Context, userID int) (*study.UserStats, error) {
	return get[study.UserStats](ctx, s, s.selectFrom("user_stats").Where(sq.Eq{"user_id": userID}), "user stats")
}

func (s *Store) CreateUserStats(ctx context.Context, ns study.NewUserStats) (study.UserStats, error) {
	return insert[study.UserStats](ctx, s, insertUserStatsQuery, ns.Build(core.Now()), "user stats")
}

func (s *Store) UpdateUserStats(ctx context.Context, userID int, upd study.UserStatsUpdate) (*study.UserStats, error) {
	where := sq.Eq{"user_id": userID}
	updatedAt, ok, err := s.touched(ctx, "user_stats", where)
	if err != nil || !ok {
		return nil, err
	}
	m := map[string]interface{}{"updated_at": updatedAt}
	set(m, "total_points", upd.TotalPoints)
	set(m, "level", upd.Level)
	set(m, "study_streak", upd.StudyStreak)
	set(m, "longest_streak", upd.LongestStreak)
	set(m, "total_study_time", upd.TotalStudyTime)
	set(m, "assignments_completed", upd.AssignmentsCompleted)
	set(m, "notes_created", upd.NotesCreated)
	if upd.LastActiveDate != nil {
		m["last_active_date"] = study.NullTimestamp(*upd.LastActiveDate)
	}
	return update[study.UserStats](ctx, s, "user_stats", where, m, "user stats")
}

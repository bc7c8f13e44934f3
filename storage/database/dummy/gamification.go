package dummydb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

// Achievements

func (s *Store) ListAchievements(_ context.Context) ([]study.Achievement, error) {
	return s.db.achievements.filter(func(a study.Achievement) bool { return a.IsActive }), nil
}

func (s *Store) CreateAchievement(_ context.Context, na study.NewAchievement) (study.Achievement, error) {
	a := na.Build()
	a.ID = s.db.nextID()
	return s.db.achievements.insert(a.ID, a), nil
}

func (s *Store) ListUserAchievements(_ context.Context, userID int) ([]study.UserAchievement, error) {
	return s.db.userAchievements.filter(func(ua study.UserAchievement) bool { return ua.UserID == userID }), nil
}

func (s *Store) CreateUserAchievement(_ context.Context, nu study.NewUserAchievement) (study.UserAchievement, error) {
	ua := nu.Build(core.Now())
	ua.ID = s.db.nextID()
	return s.db.userAchievements.insert(ua.ID, ua), nil
}

func (s *Store) UpdateUserAchievement(_ context.Context, id int, upd study.UserAchievementUpdate) (*study.UserAchievement, error) {
	ua, _ := s.db.userAchievements.update(id, upd.Apply)
	return ua, nil
}

// Challenges

func (s *Store) ListChallenges(_ context.Context) ([]study.Challenge, error) {
	return s.db.challenges.filter(nil), nil
}

func (s *Store) ListActiveChallenges(_ context.Context) ([]study.Challenge, error) {
	return s.db.challenges.filter(func(c study.Challenge) bool { return c.IsActive }), nil
}

func (s *Store) CreateChallenge(_ context.Context, nc study.NewChallenge) (study.Challenge, error) {
	c := nc.Build()
	c.ID = s.db.nextID()
	return s.db.challenges.insert(c.ID, c), nil
}

func (s *Store) ListUserChallenges(_ context.Context, userID int) ([]study.UserChallenge, error) {
	return s.db.userChallenges.filter(func(uc study.UserChallenge) bool { return uc.UserID == userID }), nil
}

func (s *Store) CreateUserChallenge(_ context.Context, nu study.NewUserChallenge) (study.UserChallenge, error) {
	uc := nu.Build(core.Now())
	uc.ID = s.db.nextID()
	return s.db.userChallenges.insert(uc.ID, uc), nil
}

func (s *Store) UpdateUserChallenge(_ context.Context, id int, upd study.UserChallengeUpdate) (*study.UserChallenge, error) {
	uc, _ := s.db.userChallenges.update(id, upd.Apply)
	return uc, nil
}

// User Stats

func (s *Store) GetUserStats(_ context.Context, userID int) (*study.UserStats, error) {
	stats, _ := s.db.userStats.find(func(us study.UserStats) bool { return us.UserID == userID })
	return stats, nil
}

func (s *Store) CreateUserStats(_ context.Context, ns study.NewUserStats) (study.UserStats, error) {
	s.db.userStats.Lock()
	defer s.db.userStats.Unlock()

	for _, us := range s.db.userStats.rows {
		if us.UserID == ns.UserID {
			return study.UserStats{}, errors.Wrap(ErrUniqueViolation, "inserting user stats")
		}
	}
	stats := ns.Build(core.Now())
	stats.ID = s.db.nextID()
	s.db.userStats.rows[stats.ID] = stats
	return stats, nil
}

func (s *Store) UpdateUserStats(_ context.Context, userID int, upd study.UserStatsUpdate) (*study.UserStats, error) {
	stats, ok := s.db.userStats.find(func(us study.UserStats) bool { return us.UserID == userID })
	if !ok {
		return nil, nil
	}
	now := core.Now()
	stats, _ = s.db.userStats.update(stats.ID, func(us *study.UserStats) { upd.Apply(us, now) })
	return stats, nil
}

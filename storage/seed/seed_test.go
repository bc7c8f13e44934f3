package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyhub/core/study"
	"github.com/trezcool/studyhub/storage/database/dummy"
	"github.com/trezcool/studyhub/storage/database/sqlx"
	"github.com/trezcool/studyhub/storage/database/storagetest"
	"github.com/trezcool/studyhub/storage/seed"
)

func TestDemo(t *testing.T) {
	backends := []struct {
		name     string
		newStore func(t *testing.T) study.Storage
	}{
		{"memory", func(t *testing.T) study.Storage {
			db, err := dummydb.Open()
			require.NoError(t, err)
			return dummydb.NewStore(db)
		}},
		{"sqlite", func(t *testing.T) study.Storage {
			return sqlxrepos.NewStore(storagetest.PrepareDB(t))
		}},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			store := b.newStore(t)
			ctx := context.Background()

			usr, err := seed.Demo(ctx, store)
			require.NoError(t, err)
			assert.Equal(t, seed.DemoUsername, usr.Username)
			assert.NoError(t, usr.CheckPassword(seed.DemoPassword))

			stats, err := store.GetDashboardStats(ctx, usr.ID)
			require.NoError(t, err)
			assert.Equal(t, study.DashboardStats{
				AssignmentsDue:   4,
				CurrentGPA:       3.48,
				StudyHours:       4.8,
				ActiveCourses:    4,
				CompletedCredits: 13,
				OverallGPA:       3.48,
				SemesterGPA:      3.48,
			}, stats)

			notes, err := store.SearchNotes(ctx, usr.ID, "hamlet")
			require.NoError(t, err)
			require.Len(t, notes, 1)
			assert.Equal(t, []string{"literature", "shakespeare", "hamlet"}, notes[0].Tags)

			groups, err := store.ListStudyGroups(ctx, usr.ID)
			require.NoError(t, err)
			require.Len(t, groups, 1)
			assert.Equal(t, 8, groups[0].MaxMembers)
			members, err := store.ListStudyGroupMembers(ctx, groups[0].ID)
			require.NoError(t, err)
			require.Len(t, members, 1)
			assert.Equal(t, study.RoleLeader, members[0].Role)

			achievements, err := store.ListAchievements(ctx)
			require.NoError(t, err)
			assert.Len(t, achievements, 4)
			challenges, err := store.ListActiveChallenges(ctx)
			require.NoError(t, err)
			assert.Len(t, challenges, 3)

			again, err := seed.Demo(ctx, store)
			assert.Equal(t, seed.ErrAlreadySeeded, err)
			assert.Equal(t, usr.ID, again.ID)
		})
	}
}

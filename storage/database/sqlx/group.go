package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

var (
	insertStudyGroupQuery = insertQuery(
		"study_groups",
		"name", "description", "course_id", "created_by", "max_members", "meeting_schedule", "location", "is_active", "created_at",
	)
	insertMemberQuery = insertQuery("study_group_members", "study_group_id", "user_id", "role", "joined_at")
)

func (s *Store) ListStudyGroups(ctx context.Context, userID int) ([]study.StudyGroup, error) {
	q := s.selectFrom("study_groups").
		Where(sq.Or{
			sq.Eq{"created_by": userID},
			sq.Expr("id IN (SELECT study_group_id FROM study_group_members WHERE user_id = ?)", userID),
		}).
		OrderBy("id")
	return list[study.StudyGroup](ctx, s, q, "study groups")
}

func (s *Store) GetStudyGroup(ctx context.Context, id int) (*study.StudyGroup, error) {
	return get[study.StudyGroup](ctx, s, s.selectFrom("study_groups").Where(byID(id)), "study group")
}

func (s *Store) CreateStudyGroup(ctx context.Context, ng study.NewStudyGroup) (study.StudyGroup, error) {
	return insert[study.StudyGroup](ctx, s, insertStudyGroupQuery, ng.Build(core.Now()), "study group")
}

func (s *Store) UpdateStudyGroup(ctx context.Context, id int, upd study.StudyGroupUpdate) (*study.StudyGroup, error) {
	m := make(map[string]interface{})
	set(m, "name", upd.Name)
	set(m, "description", upd.Description)
	set(m, "course_id", upd.CourseID)
	set(m, "max_members", upd.MaxMembers)
	set(m, "meeting_schedule", upd.MeetingSchedule)
	set(m, "location", upd.Location)
	set(m, "is_active", upd.IsActive)
	return update[study.StudyGroup](ctx, s, "study_groups", byID(id), m, "study group")
}

// DeleteStudyGroup leaves the group's memberships in place.
func (s *Store) DeleteStudyGroup(ctx context.Context, id int) (bool, error) {
	return s.delete(ctx, "study_groups", byID(id), "study group")
}

func (s *Store) ListStudyGroupMembers(ctx context.Context, groupID int) ([]study.StudyGroupMember, error) {
	q := s.selectFrom("study_group_members").Where(sq.Eq{"study_group_id": groupID}).OrderBy("id")
	return list[study.StudyGroupMember](ctx, s, q, "study group members")
}

func (s *Store) AddStudyGroupMember(ctx context.Context, nm study.NewStudyGroupMember) (study.StudyGroupMember, error) {
	return insert[study.StudyGroupMember](ctx, s, insertMemberQuery, nm.Build(core.Now()), "study group member")
}

func (s *Store) RemoveStudyGroupMember(ctx context.Context, groupID, userID int) (bool, error) {
	return s.delete(ctx, "study_group_members", sq.Eq{"study_group_id": groupID, "user_id": userID}, "study group member")
}

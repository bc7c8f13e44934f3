package dummydb

import (
	"context"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

func (s *Store) ListStudyGroups(_ context.Context, userID int) ([]study.StudyGroup, error) {
	memberOf := make(map[int]bool)
	for _, m := range s.db.studyGroupMembers.filter(func(m study.StudyGroupMember) bool { return m.UserID == userID }) {
		memberOf[m.StudyGroupID] = true
	}
	return s.db.studyGroups.filter(func(g study.StudyGroup) bool {
		return g.CreatedBy == userID || memberOf[g.ID]
	}), nil
}

func (s *Store) GetStudyGroup(_ context.Context, id int) (*study.StudyGroup, error) {
	g, _ := s.db.studyGroups.get(id)
	return g, nil
}

func (s *Store) CreateStudyGroup(_ context.Context, ng study.NewStudyGroup) (study.StudyGroup, error) {
	g := ng.Build(core.Now())
	g.ID = s.db.nextID()
	return s.db.studyGroups.insert(g.ID, g), nil
}

func (s *Store) UpdateStudyGroup(_ context.Context, id int, upd study.StudyGroupUpdate) (*study.StudyGroup, error) {
	g, _ := s.db.studyGroups.update(id, upd.Apply)
	return g, nil
}

// DeleteStudyGroup leaves the memberships of the group in place, like the other loose references.
func (s *Store) DeleteStudyGroup(_ context.Context, id int) (bool, error) {
	return s.db.studyGroups.delete(id), nil
}

func (s *Store) ListStudyGroupMembers(_ context.Context, groupID int) ([]study.StudyGroupMember, error) {
	return s.db.studyGroupMembers.filter(func(m study.StudyGroupMember) bool { return m.StudyGroupID == groupID }), nil
}

func (s *Store) AddStudyGroupMember(_ context.Context, nm study.NewStudyGroupMember) (study.StudyGroupMember, error) {
	m := nm.Build(core.Now())
	m.ID = s.db.nextID()
	return s.db.studyGroupMembers.insert(m.ID, m), nil
}

func (s *Store) RemoveStudyGroupMember(_ context.Context, groupID, userID int) (bool, error) {
	n := s.db.studyGroupMembers.deleteWhere(func(m study.StudyGroupMember) bool {
		return m.StudyGroupID == groupID && m.UserID == userID
	})
	return n > 0, nil
}

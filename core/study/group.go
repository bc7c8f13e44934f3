package study

import (
	"time"

	"github.com/volatiletech/null/v8"
)

const DefaultMaxMembers = 10

// Member roles
const (
	RoleMember    = "member"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
	RoleLeader    = "leader"
)

type StudyGroup struct {
	ID              int         `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"`
	Description     null.String `json:"description" db:"description"`
	CourseID        null.Int    `json:"courseId" db:"course_id"`
	CreatedBy       int         `json:"createdBy" db:"created_by"`
	MaxMembers      int         `json:"maxMembers" db:"max_members"`
	MeetingSchedule null.String `json:"meetingSchedule" db:"meeting_schedule"`
	Location        null.String `json:"location" db:"location"`
	IsActive        bool        `json:"isActive" db:"is_active"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
}

// NewStudyGroup contains information needed to create a new StudyGroup.
type NewStudyGroup struct {
	Name            string      `json:"name" validate:"required,notblank"`
	Description     null.String `json:"description"`
	CourseID        null.Int    `json:"courseId"`
	CreatedBy       int         `json:"createdBy"`
	MaxMembers      *int        `json:"maxMembers" validate:"omitempty,min=1"`
	MeetingSchedule null.String `json:"meetingSchedule"`
	Location        null.String `json:"location"`
	IsActive        *bool       `json:"isActive"`
}

func (ng NewStudyGroup) Build(now time.Time) StudyGroup {
	g := StudyGroup{
		Name:            ng.Name,
		Description:     ng.Description,
		CourseID:        ng.CourseID,
		CreatedBy:       ng.CreatedBy,
		MaxMembers:      DefaultMaxMembers,
		MeetingSchedule: ng.MeetingSchedule,
		Location:        ng.Location,
		IsActive:        true,
		CreatedAt:       now,
	}
	setIf(&g.MaxMembers, ng.MaxMembers)
	setIf(&g.IsActive, ng.IsActive)
	return g
}

// StudyGroupUpdate holds the fields to change on a StudyGroup; nil fields are left untouched.
type StudyGroupUpdate struct {
	Name            *string      `json:"name" validate:"omitempty,notblank"`
	Description     *null.String `json:"description"`
	CourseID        *null.Int    `json:"courseId"`
	MaxMembers      *int         `json:"maxMembers" validate:"omitempty,min=1"`
	MeetingSchedule *null.String `json:"meetingSchedule"`
	Location        *null.String `json:"location"`
	IsActive        *bool        `json:"isActive"`
}

func (u StudyGroupUpdate) Apply(g *StudyGroup) {
	setIf(&g.Name, u.Name)
	setIf(&g.Description, u.Description)
	setIf(&g.CourseID, u.CourseID)
	setIf(&g.MaxMembers, u.MaxMembers)
	setIf(&g.MeetingSchedule, u.MeetingSchedule)
	setIf(&g.Location, u.Location)
	setIf(&g.IsActive, u.IsActive)
}

type StudyGroupMember struct {
	ID           int       `json:"id" db:"id"`
	StudyGroupID int       `json:"studyGroupId" db:"study_group_id"`
	UserID       int       `json:"userId" db:"user_id"`
	Role         string    `json:"role" db:"role"`
	JoinedAt     time.Time `json:"joinedAt" db:"joined_at"`
}

// NewStudyGroupMember contains information needed to add a User to a StudyGroup.
type NewStudyGroupMember struct {
	StudyGroupID int    `json:"studyGroupId"`
	UserID       int    `json:"userId" validate:"required"`
	Role         string `json:"role" validate:"omitempty,oneof=member moderator admin leader"`
}

func (nm NewStudyGroupMember) Build(now time.Time) StudyGroupMember {
	return StudyGroupMember{
		StudyGroupID: nm.StudyGroupID,
		UserID:       nm.UserID,
		Role:         orDefault(nm.Role, RoleMember),
		JoinedAt:     now,
	}
}

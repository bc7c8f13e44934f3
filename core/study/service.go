package study

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studyhub/core"
)

var (
	ErrAlreadyMember  = errors.New("user is already a member of this study group")
	ErrGroupFull      = errors.New("study group is full")
	ErrGroupInactive  = errors.New("study group is not active")
	ErrNotGroupLeader = errors.New("only the group creator can do this")
	ErrEmptyFace      = errors.New("cannot be empty once markup is removed")
)

// Service scopes storage access to the calling user.
// Records owned by someone else are reported as core.ErrNotFound.
type Service struct {
	store  Storage
	policy *bluemonday.Policy
}

func NewService(store Storage) *Service {
	return &Service{
		store:  store,
		policy: bluemonday.StrictPolicy(),
	}
}

// owned unwraps a storage lookup, hiding absent and foreign records.
func owned[T any](rec *T, err error, owner func(T) int, userID int) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if rec == nil || owner(*rec) != userID {
		return zero, core.ErrNotFound
	}
	return *rec, nil
}

func found[T any](rec *T, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if rec == nil {
		return zero, core.ErrNotFound
	}
	return *rec, nil
}

func deleted(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return core.ErrNotFound
	}
	return nil
}

// Dashboard & Progress

func (svc *Service) Dashboard(ctx context.Context, userID int) (DashboardStats, error) {
	stats, err := svc.store.GetDashboardStats(ctx, userID)
	return stats, errors.Wrap(err, "computing dashboard stats")
}

// Progress returns one CourseProgress per course of the user.
func (svc *Service) Progress(ctx context.Context, userID int) ([]CourseProgress, error) {
	courses, err := svc.store.ListCourses(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "listing courses")
	}
	assignments, err := svc.store.ListAssignments(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "listing assignments")
	}

	progress := make([]CourseProgress, 0, len(courses))
	for _, c := range courses {
		progress = append(progress, ComputeCourseProgress(c, assignments))
	}
	return progress, nil
}

// Courses

func courseOwner(c Course) int { return c.UserID }

func (svc *Service) ListCourses(ctx context.Context, userID int) ([]Course, error) {
	return svc.store.ListCourses(ctx, userID)
}

func (svc *Service) GetCourse(ctx context.Context, userID, id int) (Course, error) {
	c, err := svc.store.GetCourse(ctx, id)
	return owned(c, err, courseOwner, userID)
}

func (svc *Service) CreateCourse(ctx context.Context, userID int, nc NewCourse) (Course, error) {
	nc.UserID = userID
	return svc.store.CreateCourse(ctx, nc)
}

func (svc *Service) UpdateCourse(ctx context.Context, userID, id int, upd CourseUpdate) (Course, error) {
	if _, err := svc.GetCourse(ctx, userID, id); err != nil {
		return Course{}, err
	}
	return found(svc.store.UpdateCourse(ctx, id, upd))
}

func (svc *Service) DeleteCourse(ctx context.Context, userID, id int) error {
	if _, err := svc.GetCourse(ctx, userID, id); err != nil {
		return err
	}
	return deleted(svc.store.DeleteCourse(ctx, id))
}

// Assignments

func assignmentOwner(a Assignment) int { return a.UserID }

func (svc *Service) ListAssignments(ctx context.Context, userID int) ([]Assignment, error) {
	return svc.store.ListAssignments(ctx, userID)
}

func (svc *Service) ListCourseAssignments(ctx context.Context, userID, courseID int) ([]Assignment, error) {
	if _, err := svc.GetCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}
	return svc.store.ListAssignmentsByCourse(ctx, courseID)
}

func (svc *Service) ListUpcomingAssignments(ctx context.Context, userID, limit int) ([]Assignment, error) {
	return svc.store.ListUpcomingAssignments(ctx, userID, limit)
}

func (svc *Service) GetAssignment(ctx context.Context, userID, id int) (Assignment, error) {
	a, err := svc.store.GetAssignment(ctx, id)
	return owned(a, err, assignmentOwner, userID)
}

func (svc *Service) CreateAssignment(ctx context.Context, userID int, na NewAssignment) (Assignment, error) {
	na.UserID = userID
	return svc.store.CreateAssignment(ctx, na)
}

func (svc *Service) UpdateAssignment(ctx context.Context, userID, id int, upd AssignmentUpdate) (Assignment, error) {
	if _, err := svc.GetAssignment(ctx, userID, id); err != nil {
		return Assignment{}, err
	}
	return found(svc.store.UpdateAssignment(ctx, id, upd))
}

func (svc *Service) DeleteAssignment(ctx context.Context, userID, id int) error {
	if _, err := svc.GetAssignment(ctx, userID, id); err != nil {
		return err
	}
	return deleted(svc.store.DeleteAssignment(ctx, id))
}

// Notes

func noteOwner(n Note) int { return n.UserID }

func (svc *Service) ListNotes(ctx context.Context, userID int) ([]Note, error) {
	return svc.store.ListNotes(ctx, userID)
}

func (svc *Service) ListRecentNotes(ctx context.Context, userID, limit int) ([]Note, error) {
	return svc.store.ListRecentNotes(ctx, userID, limit)
}

// SearchNotes returns no notes for a blank query.
func (svc *Service) SearchNotes(ctx context.Context, userID int, query string) ([]Note, error) {
	query = core.CleanString(query)
	if query == "" {
		return []Note{}, nil
	}
	return svc.store.SearchNotes(ctx, userID, query)
}

func (svc *Service) GetNote(ctx context.Context, userID, id int) (Note, error) {
	n, err := svc.store.GetNote(ctx, id)
	return owned(n, err, noteOwner, userID)
}

func (svc *Service) CreateNote(ctx context.Context, userID int, nn NewNote) (Note, error) {
	nn.UserID = userID
	return svc.store.CreateNote(ctx, nn)
}

func (svc *Service) UpdateNote(ctx context.Context, userID, id int, upd NoteUpdate) (Note, error) {
	if _, err := svc.GetNote(ctx, userID, id); err != nil {
		return Note{}, err
	}
	return found(svc.store.UpdateNote(ctx, id, upd))
}

func (svc *Service) DeleteNote(ctx context.Context, userID, id int) error {
	if _, err := svc.GetNote(ctx, userID, id); err != nil {
		return err
	}
	return deleted(svc.store.DeleteNote(ctx, id))
}

// Study Groups

func (svc *Service) ListStudyGroups(ctx context.Context, userID int) ([]StudyGroup, error) {
	return svc.store.ListStudyGroups(ctx, userID)
}

// GetStudyGroup returns any group: groups are visible to every user so they can be joined.
func (svc *Service) GetStudyGroup(ctx context.Context, id int) (StudyGroup, error) {
	return found(svc.store.GetStudyGroup(ctx, id))
}

// CreateStudyGroup creates the group, then records its creator as leader.
// The two writes are not atomic: a failure in between leaves a group without a leader membership.
func (svc *Service) CreateStudyGroup(ctx context.Context, userID int, ng NewStudyGroup) (StudyGroup, error) {
	ng.CreatedBy = userID
	g, err := svc.store.CreateStudyGroup(ctx, ng)
	if err != nil {
		return StudyGroup{}, errors.Wrap(err, "creating study group")
	}
	_, err = svc.store.AddStudyGroupMember(ctx, NewStudyGroupMember{StudyGroupID: g.ID, UserID: userID, Role: RoleLeader})
	if err != nil {
		return g, errors.Wrap(err, "adding study group leader")
	}
	return g, nil
}

func (svc *Service) getLedGroup(ctx context.Context, userID, id int) (StudyGroup, error) {
	g, err := svc.GetStudyGroup(ctx, id)
	if err != nil {
		return StudyGroup{}, err
	}
	if g.CreatedBy != userID {
		return StudyGroup{}, ErrNotGroupLeader
	}
	return g, nil
}

func (svc *Service) UpdateStudyGroup(ctx context.Context, userID, id int, upd StudyGroupUpdate) (StudyGroup, error) {
	if _, err := svc.getLedGroup(ctx, userID, id); err != nil {
		return StudyGroup{}, err
	}
	return found(svc.store.UpdateStudyGroup(ctx, id, upd))
}

func (svc *Service) DeleteStudyGroup(ctx context.Context, userID, id int) error {
	if _, err := svc.getLedGroup(ctx, userID, id); err != nil {
		return err
	}
	return deleted(svc.store.DeleteStudyGroup(ctx, id))
}

func (svc *Service) ListStudyGroupMembers(ctx context.Context, groupID int) ([]StudyGroupMember, error) {
	if _, err := svc.GetStudyGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return svc.store.ListStudyGroupMembers(ctx, groupID)
}

// AddStudyGroupMember adds nm.UserID (the caller when unset) to the group.
// Only the creator may add someone else. The member cap is checked here, not by storage,
// so concurrent joins may overshoot it.
func (svc *Service) AddStudyGroupMember(ctx context.Context, userID, groupID int, nm NewStudyGroupMember) (StudyGroupMember, error) {
	g, err := svc.GetStudyGroup(ctx, groupID)
	if err != nil {
		return StudyGroupMember{}, err
	}
	if nm.UserID == 0 {
		nm.UserID = userID
	}
	if nm.UserID != userID && g.CreatedBy != userID {
		return StudyGroupMember{}, ErrNotGroupLeader
	}
	if !g.IsActive {
		return StudyGroupMember{}, core.NewValidationError(ErrGroupInactive)
	}

	members, err := svc.store.ListStudyGroupMembers(ctx, groupID)
	if err != nil {
		return StudyGroupMember{}, errors.Wrap(err, "listing study group members")
	}
	for _, m := range members {
		if m.UserID == nm.UserID {
			return StudyGroupMember{}, core.NewFieldValidationError("userId", ErrAlreadyMember)
		}
	}
	if len(members) >= g.MaxMembers {
		return StudyGroupMember{}, core.NewValidationError(ErrGroupFull)
	}

	nm.StudyGroupID = groupID
	return svc.store.AddStudyGroupMember(ctx, nm)
}

// RemoveStudyGroupMember lets a member leave, or the creator remove anyone.
func (svc *Service) RemoveStudyGroupMember(ctx context.Context, userID, groupID, memberID int) error {
	g, err := svc.GetStudyGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if memberID != userID && g.CreatedBy != userID {
		return ErrNotGroupLeader
	}
	return deleted(svc.store.RemoveStudyGroupMember(ctx, groupID, memberID))
}

// Study Sessions

func (svc *Service) ListStudySessions(ctx context.Context, userID int) ([]StudySession, error) {
	return svc.store.ListStudySessions(ctx, userID)
}

func (svc *Service) CreateStudySession(ctx context.Context, userID int, ns NewStudySession) (StudySession, error) {
	ns.UserID = userID
	return svc.store.CreateStudySession(ctx, ns)
}

// Flashcards

func flashcardOwner(f Flashcard) int { return f.UserID }

func (svc *Service) ListFlashcards(ctx context.Context, userID int) ([]Flashcard, error) {
	return svc.store.ListFlashcards(ctx, userID)
}

func (svc *Service) GetFlashcard(ctx context.Context, userID, id int) (Flashcard, error) {
	f, err := svc.store.GetFlashcard(ctx, id)
	return owned(f, err, flashcardOwner, userID)
}

func (svc *Service) CreateFlashcard(ctx context.Context, userID int, nf NewFlashcard) (Flashcard, error) {
	nf.UserID = userID
	var err error
	if nf.Front, err = svc.cleanFace("front", nf.Front); err != nil {
		return Flashcard{}, err
	}
	if nf.Back, err = svc.cleanFace("back", nf.Back); err != nil {
		return Flashcard{}, err
	}
	return svc.store.CreateFlashcard(ctx, nf)
}

// cleanFace strips any markup from a flashcard face and keeps the plain text as typed.
func (svc *Service) cleanFace(field, text string) (string, error) {
	clean := html.UnescapeString(svc.policy.Sanitize(text))
	if strings.TrimSpace(clean) == "" {
		return "", core.NewValidationError(ErrEmptyFace, core.FieldError{Field: field, Error: field + " " + ErrEmptyFace.Error()})
	}
	return clean, nil
}

func (svc *Service) UpdateFlashcard(ctx context.Context, userID, id int, upd FlashcardUpdate) (Flashcard, error) {
	if _, err := svc.GetFlashcard(ctx, userID, id); err != nil {
		return Flashcard{}, err
	}
	if upd.Front != nil {
		front, err := svc.cleanFace("front", *upd.Front)
		if err != nil {
			return Flashcard{}, err
		}
		upd.Front = &front
	}
	if upd.Back != nil {
		back, err := svc.cleanFace("back", *upd.Back)
		if err != nil {
			return Flashcard{}, err
		}
		upd.Back = &back
	}
	return found(svc.store.UpdateFlashcard(ctx, id, upd))
}

// ReviewFlashcard records a review outcome. Only the counters move: review scheduling is left to callers.
func (svc *Service) ReviewFlashcard(ctx context.Context, userID, id int, correct bool) (Flashcard, error) {
	f, err := svc.GetFlashcard(ctx, userID, id)
	if err != nil {
		return Flashcard{}, err
	}
	reviews := f.ReviewCount + 1
	upd := FlashcardUpdate{ReviewCount: &reviews}
	if correct {
		corrects := f.CorrectCount + 1
		upd.CorrectCount = &corrects
	}
	return found(svc.store.UpdateFlashcard(ctx, id, upd))
}

func (svc *Service) DeleteFlashcard(ctx context.Context, userID, id int) error {
	if _, err := svc.GetFlashcard(ctx, userID, id); err != nil {
		return err
	}
	return deleted(svc.store.DeleteFlashcard(ctx, id))
}

// Pomodoro Sessions

func pomodoroOwner(p PomodoroSession) int { return p.UserID }

func (svc *Service) ListPomodoroSessions(ctx context.Context, userID int) ([]PomodoroSession, error) {
	return svc.store.ListPomodoroSessions(ctx, userID)
}

func (svc *Service) CreatePomodoroSession(ctx context.Context, userID int, np NewPomodoroSession) (PomodoroSession, error) {
	np.UserID = userID
	return svc.store.CreatePomodoroSession(ctx, np)
}

func (svc *Service) UpdatePomodoroSession(ctx context.Context, userID, id int, upd PomodoroSessionUpdate) (PomodoroSession, error) {
	p, err := svc.store.GetPomodoroSession(ctx, id)
	if _, err = owned(p, err, pomodoroOwner, userID); err != nil {
		return PomodoroSession{}, err
	}
	return found(svc.store.UpdatePomodoroSession(ctx, id, upd))
}

// CompletePomodoroSession marks the session completed and stamps its end time.
func (svc *Service) CompletePomodoroSession(ctx context.Context, userID, id int) (PomodoroSession, error) {
	done := true
	end := null.TimeFrom(core.Now())
	return svc.UpdatePomodoroSession(ctx, userID, id, PomodoroSessionUpdate{IsCompleted: &done, EndTime: &end})
}

// Gamification

func userAchievementOwner(ua UserAchievement) int { return ua.UserID }
func userChallengeOwner(uc UserChallenge) int     { return uc.UserID }

func (svc *Service) ListAchievements(ctx context.Context) ([]Achievement, error) {
	return svc.store.ListAchievements(ctx)
}

func (svc *Service) ListUserAchievements(ctx context.Context, userID int) ([]UserAchievement, error) {
	return svc.store.ListUserAchievements(ctx, userID)
}

func (svc *Service) CreateUserAchievement(ctx context.Context, userID int, nu NewUserAchievement) (UserAchievement, error) {
	nu.UserID = userID
	return svc.store.CreateUserAchievement(ctx, nu)
}

func (svc *Service) UpdateUserAchievement(ctx context.Context, userID, id int, upd UserAchievementUpdate) (UserAchievement, error) {
	uas, err := svc.store.ListUserAchievements(ctx, userID)
	if err != nil {
		return UserAchievement{}, errors.Wrap(err, "listing user achievements")
	}
	if !containsID(uas, id, func(ua UserAchievement) int { return ua.ID }) {
		return UserAchievement{}, core.ErrNotFound
	}
	ua, err := svc.store.UpdateUserAchievement(ctx, id, upd)
	return owned(ua, err, userAchievementOwner, userID)
}

// ListChallenges returns the whole catalog, or only the active entries.
func (svc *Service) ListChallenges(ctx context.Context, activeOnly bool) ([]Challenge, error) {
	if activeOnly {
		return svc.store.ListActiveChallenges(ctx)
	}
	return svc.store.ListChallenges(ctx)
}

func (svc *Service) ListUserChallenges(ctx context.Context, userID int) ([]UserChallenge, error) {
	return svc.store.ListUserChallenges(ctx, userID)
}

func (svc *Service) CreateUserChallenge(ctx context.Context, userID int, nu NewUserChallenge) (UserChallenge, error) {
	nu.UserID = userID
	return svc.store.CreateUserChallenge(ctx, nu)
}

func (svc *Service) UpdateUserChallenge(ctx context.Context, userID, id int, upd UserChallengeUpdate) (UserChallenge, error) {
	ucs, err := svc.store.ListUserChallenges(ctx, userID)
	if err != nil {
		return UserChallenge{}, errors.Wrap(err, "listing user challenges")
	}
	if !containsID(ucs, id, func(uc UserChallenge) int { return uc.ID }) {
		return UserChallenge{}, core.ErrNotFound
	}
	uc, err := svc.store.UpdateUserChallenge(ctx, id, upd)
	return owned(uc, err, userChallengeOwner, userID)
}

// GetUserStats returns the stats of the user, creating the default row on first access.
func (svc *Service) GetUserStats(ctx context.Context, userID int) (UserStats, error) {
	stats, err := svc.store.GetUserStats(ctx, userID)
	if err != nil {
		return UserStats{}, errors.Wrap(err, "getting user stats")
	}
	if stats != nil {
		return *stats, nil
	}
	return svc.store.CreateUserStats(ctx, NewUserStats{UserID: userID, LastActiveDate: null.TimeFrom(core.Now())})
}

func (svc *Service) UpdateUserStats(ctx context.Context, userID int, upd UserStatsUpdate) (UserStats, error) {
	if _, err := svc.GetUserStats(ctx, userID); err != nil {
		return UserStats{}, err
	}
	return found(svc.store.UpdateUserStats(ctx, userID, upd))
}

func containsID[T any](recs []T, id int, getID func(T) int) bool {
	for _, r := range recs {
		if getID(r) == id {
			return true
		}
	}
	return false
}

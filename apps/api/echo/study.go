package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core/study"
)

type studyApi struct {
	svc      *study.Service
	validate *validator.Validate
}

func registerStudyAPI(g *echo.Group, deps ServerDeps) {
	api := studyApi{
		svc:      deps.StudySvc,
		validate: deps.Validate,
	}

	g.GET("/dashboard/stats", api.dashboard)
	g.GET("/progress", api.progress)

	cg := g.Group("/courses")
	cg.GET("", api.queryCourses)
	cg.POST("", api.createCourse)
	cg.GET("/:id", api.retrieveCourse)
	cg.PUT("/:id", api.updateCourse)
	cg.DELETE("/:id", api.destroyCourse)
	cg.GET("/:id/assignments", api.queryCourseAssignments)

	ag := g.Group("/assignments")
	ag.GET("", api.queryAssignments)
	ag.POST("", api.createAssignment)
	ag.GET("/upcoming", api.queryUpcomingAssignments)
	ag.GET("/:id", api.retrieveAssignment)
	ag.PUT("/:id", api.updateAssignment)
	ag.DELETE("/:id", api.destroyAssignment)

	ng := g.Group("/notes")
	ng.GET("", api.queryNotes)
	ng.POST("", api.createNote)
	ng.GET("/recent", api.queryRecentNotes)
	ng.GET("/search", api.searchNotes)
	ng.GET("/:id", api.retrieveNote)
	ng.PUT("/:id", api.updateNote)
	ng.DELETE("/:id", api.destroyNote)

	sg := g.Group("/study-sessions")
	sg.GET("", api.queryStudySessions)
	sg.POST("", api.createStudySession)
}

// Dashboard

func (api *studyApi) dashboard(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	stats, err := api.svc.Dashboard(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "computing dashboard stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *studyApi) progress(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	progress, err := api.svc.Progress(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "computing course progress")
	}
	return ctx.JSON(http.StatusOK, progress)
}

// Courses

func (api *studyApi) queryCourses(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	courses, err := api.svc.ListCourses(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *studyApi) createCourse(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.NewCourse
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	course, err := api.svc.CreateCourse(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, course)
}

func (api *studyApi) retrieveCourse(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	course, err := api.svc.GetCourse(ctx.Request().Context(), userID, id)
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *studyApi) updateCourse(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data study.CourseUpdate
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	course, err := api.svc.UpdateCourse(ctx.Request().Context(), userID, id, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *studyApi) destroyCourse(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteCourse(ctx.Request().Context(), userID, id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studyApi) queryCourseAssignments(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	assignments, err := api.svc.ListCourseAssignments(ctx.Request().Context(), userID, id)
	if err != nil {
		return errors.Wrap(err, "listing course assignments")
	}
	return ctx.JSON(http.StatusOK, assignments)
}

// Assignments

func (api *studyApi) queryAssignments(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	assignments, err := api.svc.ListAssignments(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing assignments")
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *studyApi) queryUpcomingAssignments(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	assignments, err := api.svc.ListUpcomingAssignments(ctx.Request().Context(), userID, queryLimit(ctx))
	if err != nil {
		return errors.Wrap(err, "listing upcoming assignments")
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *studyApi) createAssignment(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.NewAssignment
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	assignment, err := api.svc.CreateAssignment(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, assignment)
}

func (api *studyApi) retrieveAssignment(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	assignment, err := api.svc.GetAssignment(ctx.Request().Context(), userID, id)
	if err != nil {
		return errors.Wrap(err, "getting assignment")
	}
	return ctx.JSON(http.StatusOK, assignment)
}

func (api *studyApi) updateAssignment(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data study.AssignmentUpdate
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	assignment, err := api.svc.UpdateAssignment(ctx.Request().Context(), userID, id, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, assignment)
}

func (api *studyApi) destroyAssignment(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteAssignment(ctx.Request().Context(), userID, id); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Notes

func (api *studyApi) queryNotes(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	notes, err := api.svc.ListNotes(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *studyApi) queryRecentNotes(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	notes, err := api.svc.ListRecentNotes(ctx.Request().Context(), userID, queryLimit(ctx))
	if err != nil {
		return errors.Wrap(err, "listing recent notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *studyApi) searchNotes(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	notes, err := api.svc.SearchNotes(ctx.Request().Context(), userID, ctx.QueryParam("q"))
	if err != nil {
		return errors.Wrap(err, "searching notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *studyApi) createNote(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.NewNote
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	note, err := api.svc.CreateNote(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating note")
	}
	return ctx.JSON(http.StatusCreated, note)
}

func (api *studyApi) retrieveNote(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	note, err := api.svc.GetNote(ctx.Request().Context(), userID, id)
	if err != nil {
		return errors.Wrap(err, "getting note")
	}
	return ctx.JSON(http.StatusOK, note)
}

func (api *studyApi) updateNote(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data study.NoteUpdate
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	note, err := api.svc.UpdateNote(ctx.Request().Context(), userID, id, data)
	if err != nil {
		return errors.Wrap(err, "updating note")
	}
	return ctx.JSON(http.StatusOK, note)
}

func (api *studyApi) destroyNote(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteNote(ctx.Request().Context(), userID, id); err != nil {
		return errors.Wrap(err, "deleting note")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Study Sessions

func (api *studyApi) queryStudySessions(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	sessions, err := api.svc.ListStudySessions(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing study sessions")
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *studyApi) createStudySession(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.NewStudySession
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	session, err := api.svc.CreateStudySession(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating study session")
	}
	return ctx.JSON(http.StatusCreated, session)
}

package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core/study"
)

type groupApi struct {
	svc      *study.Service
	validate *validator.Validate
}

func registerGroupAPI(g *echo.Group, deps ServerDeps) {
	api := groupApi{
		svc:      deps.StudySvc,
		validate: deps.Validate,
	}

	sg := g.Group("/study-groups")
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	dg := sg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/members", api.queryMembers)
	dg.POST("/members", api.addMember)
	dg.DELETE("/members/:userId", api.removeMember)
}

// Handlers

func (api *groupApi) query(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	groups, err := api.svc.ListStudyGroups(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing study groups")
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *groupApi) create(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.NewStudyGroup
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	group, err := api.svc.CreateStudyGroup(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating study group")
	}
	return ctx.JSON(http.StatusCreated, group)
}

func (api *groupApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	group, err := api.svc.GetStudyGroup(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting study group")
	}
	return ctx.JSON(http.StatusOK, group)
}

func (api *groupApi) update(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data study.StudyGroupUpdate
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	group, err := api.svc.UpdateStudyGroup(ctx.Request().Context(), userID, id, data)
	if err != nil {
		return errors.Wrap(err, "updating study group")
	}
	return ctx.JSON(http.StatusOK, group)
}

func (api *groupApi) destroy(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteStudyGroup(ctx.Request().Context(), userID, id); err != nil {
		return errors.Wrap(err, "deleting study group")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *groupApi) queryMembers(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	members, err := api.svc.ListStudyGroupMembers(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "listing study group members")
	}
	return ctx.JSON(http.StatusOK, members)
}

// addMember lets the group leader add someone, or any user join by sending their own id.
func (api *groupApi) addMember(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data study.NewStudyGroupMember
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudyGroupMember")
	}
	if data.UserID == 0 { // joining
		data.UserID = userID
	}
	if err = api.validate.Struct(&data); err != nil {
		return err
	}
	member, err := api.svc.AddStudyGroupMember(ctx.Request().Context(), userID, id, data)
	if err != nil {
		return errors.Wrap(err, "adding study group member")
	}
	return ctx.JSON(http.StatusCreated, member)
}

func (api *groupApi) removeMember(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	memberID, err := pathID(ctx, "userId")
	if err != nil {
		return err
	}
	if err = api.svc.RemoveStudyGroupMember(ctx.Request().Context(), userID, id, memberID); err != nil {
		return errors.Wrap(err, "removing study group member")
	}
	return ctx.NoContent(http.StatusNoContent)
}

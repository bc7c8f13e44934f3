package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core/study"
)

type ReviewRequest struct {
	Correct bool `json:"correct"`
}

type gamificationApi struct {
	svc      *study.Service
	validate *validator.Validate
}

func registerGamificationAPI(g *echo.Group, deps ServerDeps) {
	api := gamificationApi{
		svc:      deps.StudySvc,
		validate: deps.Validate,
	}

	fg := g.Group("/flashcards")
	fg.GET("", api.queryFlashcards)
	fg.POST("", api.createFlashcard)
	fg.GET("/:id", api.retrieveFlashcard)
	fg.PUT("/:id", api.updateFlashcard)
	fg.DELETE("/:id", api.destroyFlashcard)
	fg.POST("/:id/review", api.reviewFlashcard)

	pg := g.Group("/pomodoro-sessions")
	pg.GET("", api.queryPomodoroSessions)
	pg.POST("", api.createPomodoroSession)
	pg.PUT("/:id", api.updatePomodoroSession)
	pg.POST("/:id/complete", api.completePomodoroSession)

	g.GET("/achievements", api.queryAchievements)
	uag := g.Group("/user-achievements")
	uag.GET("", api.queryUserAchievements)
	uag.POST("", api.createUserAchievement)
	uag.PUT("/:id", api.updateUserAchievement)

	g.GET("/challenges", api.queryChallenges)
	ucg := g.Group("/user-challenges")
	ucg.GET("", api.queryUserChallenges)
	ucg.POST("", api.createUserChallenge)
	ucg.PUT("/:id", api.updateUserChallenge)

	g.GET("/stats", api.retrieveStats)
	g.PUT("/stats", api.updateStats)
}

// Flashcards

func (api *gamificationApi) queryFlashcards(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	cards, err := api.svc.ListFlashcards(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing flashcards")
	}
	return ctx.JSON(http.StatusOK, cards)
}

func (api *gamificationApi) createFlashcard(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.NewFlashcard
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	card, err := api.svc.CreateFlashcard(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating flashcard")
	}
	return ctx.JSON(http.StatusCreated, card)
}

func (api *gamificationApi) retrieveFlashcard(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	card, err := api.svc.GetFlashcard(ctx.Request().Context(), userID, id)
	if err != nil {
		return errors.Wrap(err, "getting flashcard")
	}
	return ctx.JSON(http.StatusOK, card)
}

func (api *gamificationApi) updateFlashcard(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data study.FlashcardUpdate
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	card, err := api.svc.UpdateFlashcard(ctx.Request().Context(), userID, id, data)
	if err != nil {
		return errors.Wrap(err, "updating flashcard")
	}
	return ctx.JSON(http.StatusOK, card)
}

func (api *gamificationApi) destroyFlashcard(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteFlashcard(ctx.Request().Context(), userID, id); err != nil {
		return errors.Wrap(err, "deleting flashcard")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gamificationApi) reviewFlashcard(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data ReviewRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ReviewRequest")
	}
	card, err := api.svc.ReviewFlashcard(ctx.Request().Context(), userID, id, data.Correct)
	if err != nil {
		return errors.Wrap(err, "reviewing flashcard")
	}
	return ctx.JSON(http.StatusOK, card)
}

// Pomodoro Sessions

func (api *gamificationApi) queryPomodoroSessions(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	sessions, err := api.svc.ListPomodoroSessions(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing pomodoro sessions")
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *gamificationApi) createPomodoroSession(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.NewPomodoroSession
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	session, err := api.svc.CreatePomodoroSession(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating pomodoro session")
	}
	return ctx.JSON(http.StatusCreated, session)
}

func (api *gamificationApi) updatePomodoroSession(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data study.PomodoroSessionUpdate
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	session, err := api.svc.UpdatePomodoroSession(ctx.Request().Context(), userID, id, data)
	if err != nil {
		return errors.Wrap(err, "updating pomodoro session")
	}
	return ctx.JSON(http.StatusOK, session)
}

func (api *gamificationApi) completePomodoroSession(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	session, err := api.svc.CompletePomodoroSession(ctx.Request().Context(), userID, id)
	if err != nil {
		return errors.Wrap(err, "completing pomodoro session")
	}
	return ctx.JSON(http.StatusOK, session)
}

// Achievements & Challenges

func (api *gamificationApi) queryAchievements(ctx echo.Context) error {
	achievements, err := api.svc.ListAchievements(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing achievements")
	}
	return ctx.JSON(http.StatusOK, achievements)
}

func (api *gamificationApi) queryUserAchievements(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	uas, err := api.svc.ListUserAchievements(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing user achievements")
	}
	return ctx.JSON(http.StatusOK, uas)
}

func (api *gamificationApi) createUserAchievement(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.NewUserAchievement
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	ua, err := api.svc.CreateUserAchievement(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating user achievement")
	}
	return ctx.JSON(http.StatusCreated, ua)
}

func (api *gamificationApi) updateUserAchievement(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data study.UserAchievementUpdate
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	ua, err := api.svc.UpdateUserAchievement(ctx.Request().Context(), userID, id, data)
	if err != nil {
		return errors.Wrap(err, "updating user achievement")
	}
	return ctx.JSON(http.StatusOK, ua)
}

func (api *gamificationApi) queryChallenges(ctx echo.Context) error {
	challenges, err := api.svc.ListChallenges(ctx.Request().Context(), queryBool(ctx, "active"))
	if err != nil {
		return errors.Wrap(err, "listing challenges")
	}
	return ctx.JSON(http.StatusOK, challenges)
}

func (api *gamificationApi) queryUserChallenges(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	ucs, err := api.svc.ListUserChallenges(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "listing user challenges")
	}
	return ctx.JSON(http.StatusOK, ucs)
}

func (api *gamificationApi) createUserChallenge(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.NewUserChallenge
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	uc, err := api.svc.CreateUserChallenge(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "creating user challenge")
	}
	return ctx.JSON(http.StatusCreated, uc)
}

func (api *gamificationApi) updateUserChallenge(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data study.UserChallengeUpdate
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	uc, err := api.svc.UpdateUserChallenge(ctx.Request().Context(), userID, id, data)
	if err != nil {
		return errors.Wrap(err, "updating user challenge")
	}
	return ctx.JSON(http.StatusOK, uc)
}

// Stats

func (api *gamificationApi) retrieveStats(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	stats, err := api.svc.GetUserStats(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "getting user stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *gamificationApi) updateStats(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.UserStatsUpdate
	if err = bindAndValidate(ctx, api.validate, &data); err != nil {
		return err
	}
	stats, err := api.svc.UpdateUserStats(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "updating user stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

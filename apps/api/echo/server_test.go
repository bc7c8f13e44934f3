package echoapi_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/studyhub/apps/api/echo"
	"github.com/trezcool/studyhub/core/user"
)

func TestServer_home(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Studyhub API!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestUserApi_login(t *testing.T) {
	app := setup(t)
	usr, _ := app.createUser(t, "student1")

	tests := []httpTest{
		{
			name: "missing credentials", method: http.MethodPost, path: "/v1/auth/login",
			body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"username": "this field is required", "password": "this field is required"}`),
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/v1/auth/login",
			body: []byte(`{"username": "student1", "password": "nope"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "unknown user", method: http.MethodPost, path: "/v1/auth/login",
			body: []byte(`{"username": "ghost", "password": "password123"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
	}
	app.run(t, tests)

	for _, uname := range []string{" STUDENT1 ", "student1@example.com"} {
		t.Run("login as "+uname, func(t *testing.T) {
			var resp LoginResponse
			code := app.do(t, http.MethodPost, "/v1/auth/login", "", LoginRequest{Username: uname, Password: "password123"}, &resp)
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, usr.ID, resp.User.ID)

			claims := new(Claims)
			_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
				return []byte(app.conf.SecretKey), nil
			})
			require.NoError(t, err)
			assert.Equal(t, strconv.Itoa(usr.ID), claims.Subject)
			assert.Equal(t, "student1", claims.Username)
		})
	}
}

func TestUserApi_me(t *testing.T) {
	app := setup(t)
	usr, token := app.createUser(t, "student1")

	ghostToken, err := GenerateToken(app.conf, GetUserClaims(app.conf, user.User{ID: 999, Username: "ghost"}))
	require.NoError(t, err)

	tests := []httpTest{
		{name: "auth required", path: "/v1/me", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "invalid token", path: "/v1/me", token: "not.a.token", wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
		{
			name: "deleted user", path: "/v1/me", token: ghostToken, wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "user not authenticated"}),
		},
		{name: "ok", path: "/v1/me", token: token, wantCode: http.StatusOK, wantData: marchallObj(t, usr)},
		{name: "resources need auth too", path: "/v1/courses", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
	}
	app.run(t, tests)
}

func TestUserApi_register(t *testing.T) {
	app := setup(t)
	app.createUser(t, "student1")

	nu := user.NewUser{
		Username:  "Newbie",
		Password:  "K33p!Learning#",
		FirstName: "Jane",
		LastName:  "Roe",
		Email:     "jane@example.com",
		Program:   "Mathematics",
	}
	var created user.User
	code := app.do(t, http.MethodPost, "/v1/auth/register", "", nu, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "newbie", created.Username)
	assert.NotZero(t, created.ID)

	sent := app.mails.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "jane@example.com", sent[0].To[0].Address)
	assert.Contains(t, sent[0].TextContent, "Welcome to Studyhub! Your username is newbie.")

	taken := nu
	taken.Username = "student1"
	taken.Email = "other@example.com"
	weak := nu
	weak.Username = "other"
	weak.Email = "other@example.com"
	weak.Password = "12345678"

	tests := []httpTest{
		{
			name: "username taken", method: http.MethodPost, path: "/v1/auth/register", body: marchallObj(t, taken),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"username": "a user with this username already exists"}`),
		},
		{
			name: "weak password", method: http.MethodPost, path: "/v1/auth/register", body: marchallObj(t, weak),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"password": "password cannot be entirely numeric"}`),
		},
	}
	app.run(t, tests)
}

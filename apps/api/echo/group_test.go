package echoapi_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyhub/core/study"
)

func TestGroupApi(t *testing.T) {
	app := setup(t)
	alice, aliceToken := app.createUser(t, "alice")
	bob, bobToken := app.createUser(t, "bob")
	_, carolToken := app.createUser(t, "carol")

	maxMembers := 2
	var group study.StudyGroup
	code := app.do(t, http.MethodPost, "/v1/study-groups", aliceToken, study.NewStudyGroup{
		Name: "CS101 Study Group", CreatedBy: bob.ID, MaxMembers: &maxMembers,
	}, &group)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, alice.ID, group.CreatedBy)

	path := "/v1/study-groups/" + strconv.Itoa(group.ID)
	var leader []study.StudyGroupMember
	require.Equal(t, http.StatusOK, app.do(t, http.MethodGet, path+"/members", aliceToken, nil, &leader))
	require.Len(t, leader, 1)
	assert.Equal(t, study.RoleLeader, leader[0].Role)

	var joined study.StudyGroupMember
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, path+"/members", bobToken, map[string]interface{}{}, &joined))
	assert.Equal(t, bob.ID, joined.UserID)
	assert.Equal(t, study.RoleMember, joined.Role)

	tests := []httpTest{
		{name: "get", path: path, token: carolToken, wantCode: http.StatusOK, wantData: marchallObj(t, group)},
		{name: "get (unknown)", path: "/v1/study-groups/999", token: aliceToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "list (creator)", path: "/v1/study-groups", token: aliceToken, wantCode: http.StatusOK, wantData: marchallList(t, group)},
		{name: "list (member)", path: "/v1/study-groups", token: bobToken, wantCode: http.StatusOK, wantData: marchallList(t, group)},
		{name: "list (outsider)", path: "/v1/study-groups", token: carolToken, wantCode: http.StatusOK, wantData: marchallList(t)},
		{
			name: "members", path: path + "/members", token: carolToken,
			wantCode: http.StatusOK, wantData: marchallList(t, leader[0], joined),
		},
		{
			name: "join twice", method: http.MethodPost, path: path + "/members", token: bobToken, body: []byte(`{}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"userId": "user is already a member of this study group"}`),
		},
		{
			name: "join (full)", method: http.MethodPost, path: path + "/members", token: carolToken, body: []byte(`{}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "study group is full"}),
		},
		{
			name: "update (not leader)", method: http.MethodPut, path: path, token: bobToken, body: []byte(`{"name": "mine"}`),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "remove someone else (not leader)", method: http.MethodDelete, path: path + "/members/" + strconv.Itoa(alice.ID),
			token: bobToken, wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{name: "leave", method: http.MethodDelete, path: path + "/members/" + strconv.Itoa(bob.ID), token: bobToken, wantCode: http.StatusNoContent},
		{name: "leave (not a member)", method: http.MethodDelete, path: path + "/members/" + strconv.Itoa(bob.ID), token: bobToken, wantCode: http.StatusNotFound},
		{
			name: "deactivate", method: http.MethodPut, path: path, token: aliceToken, body: []byte(`{"isActive": false}`),
			wantCode: http.StatusOK,
		},
		{
			name: "join (inactive)", method: http.MethodPost, path: path + "/members", token: carolToken, body: []byte(`{}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "study group is not active"}),
		},
		{name: "delete (not leader)", method: http.MethodDelete, path: path, token: bobToken, wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "delete", method: http.MethodDelete, path: path, token: aliceToken, wantCode: http.StatusNoContent},
		{name: "get (deleted)", path: path, token: aliceToken, wantCode: http.StatusNotFound},
	}
	app.run(t, tests)
}

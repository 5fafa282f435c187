package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers_ReturnsPagination(t *testing.T) {
	f := newTestFixture(t)
	_, err := f.users.Upsert(context.Background(), "100", "alice", "", "")
	require.NoError(t, err)
	_, err = f.users.Upsert(context.Background(), "200", "bob", "", "")
	require.NoError(t, err)

	rec := f.doRequest(http.MethodGet, "/api/users?page=1&limit=20", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success    bool `json:"success"`
		Pagination struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Total int `json:"total"`
			Pages int `json:"pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Pagination.Page)
	assert.Equal(t, 20, body.Pagination.Limit)
	assert.Equal(t, 2, body.Pagination.Total)
	assert.Equal(t, 1, body.Pagination.Pages)
}

func TestListUsers_InvalidPageRejected(t *testing.T) {
	f := newTestFixture(t)

	rec := f.doRequest(http.MethodGet, "/api/users?page=zero", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestListUsers_LimitCapRejected(t *testing.T) {
	f := newTestFixture(t)

	rec := f.doRequest(http.MethodGet, "/api/users?limit=500", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUser_NotFoundEnvelope(t *testing.T) {
	f := newTestFixture(t)

	rec := f.doRequest(http.MethodGet, "/api/users/999", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "User not found", body.Error.Message)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestUpsertUser_Creates(t *testing.T) {
	f := newTestFixture(t)

	rec := f.doRequest(http.MethodPost, "/api/users", `{"discordId":"100","username":"alice"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	user, err := f.users.GetByDiscordID(context.Background(), "100")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestUpsertUser_MissingFieldsRejected(t *testing.T) {
	f := newTestFixture(t)

	rec := f.doRequest(http.MethodPost, "/api/users", `{"username":"alice"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "discordId and username are required")
}

func TestUpdateUser_NotFound(t *testing.T) {
	f := newTestFixture(t)

	rec := f.doRequest(http.MethodPut, "/api/users/999", `{"username":"ghost"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser_ChangesFields(t *testing.T) {
	f := newTestFixture(t)
	_, err := f.users.Upsert(context.Background(), "100", "alice", "", "")
	require.NoError(t, err)

	rec := f.doRequest(http.MethodPut, "/api/users/100", `{"username":"alice2","avatar":"a.png"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	user, err := f.users.GetByDiscordID(context.Background(), "100")
	require.NoError(t, err)
	assert.Equal(t, "alice2", user.Username)
	assert.Equal(t, "a.png", user.Avatar)
}

func TestDeleteUser_RemovesAndConfirms(t *testing.T) {
	f := newTestFixture(t)
	_, err := f.users.Upsert(context.Background(), "100", "alice", "", "")
	require.NoError(t, err)

	rec := f.doRequest(http.MethodDelete, "/api/users/100", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User deleted")
	_, err = f.users.GetByDiscordID(context.Background(), "100")
	assert.Error(t, err)
}

func TestDeleteUser_NotFound(t *testing.T) {
	f := newTestFixture(t)

	rec := f.doRequest(http.MethodDelete, "/api/users/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

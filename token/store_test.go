package token_test

import (
	"net/http"
	"testing"

	"github.com/jrsteele09/schoolgest-client/token"
	tokenrepofake "github.com/jrsteele09/schoolgest-client/token/repofake"
	"github.com/jrsteele09/schoolgest-client/users"
	"github.com/stretchr/testify/require"
)

func TestStore_Credential(t *testing.T) {
	s := token.NewStore(tokenrepofake.NewFakeTokenRepo())
	require.Empty(t, s.AccessToken())
	require.Empty(t, s.RefreshToken())

	require.NoError(t, s.SetCredential(token.Credential{AccessToken: "T1", RefreshToken: "R1"}))
	require.Equal(t, token.Credential{AccessToken: "T1", RefreshToken: "R1"}, s.Credential())

	// A refresh response without a new refresh token keeps the old one
	require.NoError(t, s.SetCredential(token.Credential{AccessToken: "T2"}))
	require.Equal(t, "T2", s.AccessToken())
	require.Equal(t, "R1", s.RefreshToken())
}

func TestStore_Snapshot(t *testing.T) {
	repo := tokenrepofake.NewFakeTokenRepo()
	s := token.NewStore(repo)

	_, err := s.Snapshot()
	require.True(t, token.IsNotFound(err))

	user := &users.User{ID: 7, Username: "jdoe", Role: users.RoleTeacher}
	require.NoError(t, s.SaveSnapshot(user))

	got, err := s.Snapshot()
	require.NoError(t, err)
	require.Equal(t, user.Username, got.Username)
	require.Equal(t, users.RoleTeacher, got.Role)

	role, err := repo.Get(token.KeyRole)
	require.NoError(t, err)
	require.Equal(t, "ENSEIGNANT", role)

	require.NoError(t, repo.Set(token.KeyUser, "{not json"))
	_, err = s.Snapshot()
	require.Error(t, err)
	require.False(t, token.IsNotFound(err))
}

func TestStore_Clear(t *testing.T) {
	repo := tokenrepofake.NewFakeTokenRepo()
	s := token.NewStore(repo)
	require.NoError(t, s.SetCredential(token.Credential{AccessToken: "T1", RefreshToken: "R1"}))
	require.NoError(t, s.SaveSnapshot(&users.User{Username: "jdoe", Role: users.RoleAdmin}))
	require.Equal(t, 4, repo.Len())

	require.NoError(t, s.Clear())
	require.Equal(t, 0, repo.Len())
}

func TestCredential_OAuth2(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	token.Credential{AccessToken: "T1"}.OAuth2().SetAuthHeader(req)
	require.Equal(t, "Bearer T1", req.Header.Get("Authorization"))
}

package token

import "errors"

// Key names a persisted client-side value
type Key string

const (
	KeyAccessToken  Key = "auth_token"
	KeyRefreshToken Key = "auth_refresh_token"
	KeyUser         Key = "user_data"
	KeyRole         Key = "user_role"
)

// AllKeys lists every key the client persists
var AllKeys = []Key{KeyAccessToken, KeyRefreshToken, KeyUser, KeyRole}

// ErrNotFound is returned by Repo.Get for absent keys
var ErrNotFound = errors.New("token: key not found")

// Repo is a plain key-value store for client-side auth state.
// Implementations hold no logic beyond persistence.
type Repo interface {
	Get(key Key) (string, error)
	Set(key Key, value string) error
	Delete(keys ...Key) error
}

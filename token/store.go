package token

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jrsteele09/schoolgest-client/users"
	"golang.org/x/oauth2"
)

// Credential is the token pair issued by login, register and refresh
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// OAuth2 exposes the credential as a bearer oauth2.Token
func (c Credential) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: c.RefreshToken,
	}
}

// Store gives typed access to a Repo. It is the only owner of the credential.
type Store struct {
	repo Repo
}

func NewStore(repo Repo) *Store {
	return &Store{repo: repo}
}

// AccessToken returns the stored access token or "" when absent
func (s *Store) AccessToken() string {
	return s.get(KeyAccessToken)
}

// RefreshToken returns the stored refresh token or "" when absent
func (s *Store) RefreshToken() string {
	return s.get(KeyRefreshToken)
}

func (s *Store) Credential() Credential {
	return Credential{AccessToken: s.AccessToken(), RefreshToken: s.RefreshToken()}
}

// SetCredential stores the access token. An empty refresh token keeps the
// previously stored one, since refresh responses may omit it.
func (s *Store) SetCredential(c Credential) error {
	if err := s.repo.Set(KeyAccessToken, c.AccessToken); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if c.RefreshToken == "" {
		return nil
	}
	if err := s.repo.Set(KeyRefreshToken, c.RefreshToken); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// SaveSnapshot persists the user and role used to restore a session on startup
func (s *Store) SaveSnapshot(user *users.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user snapshot: %w", err)
	}
	if err := s.repo.Set(KeyUser, string(data)); err != nil {
		return fmt.Errorf("failed to store user snapshot: %w", err)
	}
	if err := s.repo.Set(KeyRole, string(user.Role)); err != nil {
		return fmt.Errorf("failed to store role snapshot: %w", err)
	}
	return nil
}

// Snapshot returns the cached user. ErrNotFound means nothing was cached; any
// other error means the cached data is corrupt.
func (s *Store) Snapshot() (*users.User, error) {
	data, err := s.repo.Get(KeyUser)
	if err != nil {
		return nil, err
	}
	var user users.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("corrupt user snapshot: %w", err)
	}
	return &user, nil
}

// Clear removes the credential and the snapshot
func (s *Store) Clear() error {
	return s.repo.Delete(AllKeys...)
}

func (s *Store) get(key Key) string {
	v, err := s.repo.Get(key)
	if err != nil {
		return ""
	}
	return v
}

// IsNotFound reports whether err means the key was absent
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

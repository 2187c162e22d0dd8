package sessions

import (
	"fmt"
	"sync"

	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
	"github.com/jrsteele09/schoolgest-client/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Persister keeps the on-disk snapshot in line with the in-memory session
type Persister interface {
	SaveSnapshot(user *users.User) error
	Clear() error
}

// State holds the current Session and is its only writer. Every change is
// persisted and then broadcast as one value to all subscribers.
type State struct {
	lock        sync.RWMutex
	current     Session
	store       Persister
	subscribers map[int]chan Session
	nextID      int
	logger      zerolog.Logger
}

type StateOption func(*State)

func WithLogger(logger zerolog.Logger) StateOption {
	return func(s *State) {
		s.logger = logger
	}
}

func NewState(store Persister, options ...StateOption) *State {
	s := &State{
		store:       store,
		subscribers: make(map[int]chan Session),
		logger:      log.Logger,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Current returns the latest session value. The caller owns the returned user.
func (s *State) Current() Session {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.current.detached()
}

// Subscribe returns a channel that always holds the latest session. Slow
// readers skip intermediate values but never observe a torn one. The channel
// is primed with the current value.
func (s *State) Subscribe() (<-chan Session, func()) {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Session, 1)
	ch <- s.current.detached()
	s.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.lock.Lock()
			defer s.lock.Unlock()
			if sub, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Set makes user the current user. A nil user or one without a role tears the
// session down instead, matching what the backend guarantees for valid users.
func (s *State) Set(user *users.User) error {
	if user == nil || users.NormalizeRole(user.Role) == "" {
		if err := s.Clear(); err != nil {
			return err
		}
		return apperrors.ErrMissingRole
	}

	u := user.Clone()
	u.Role = users.NormalizeRole(user.Role)
	next := Session{User: u, Authenticated: true, Role: u.Role}

	return s.update(next, func() error {
		return s.store.SaveSnapshot(u)
	})
}

// Clear removes the credential and snapshot and broadcasts an empty session
func (s *State) Clear() error {
	return s.update(Session{}, s.store.Clear)
}

func (s *State) update(next Session, persist func() error) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	var persistErr error
	if err := persist(); err != nil {
		persistErr = fmt.Errorf("[sessions update] failed to persist session: %w", err)
		s.logger.Error().Err(err).Msg("session persistence failed")
	}

	s.current = next
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- next.detached():
		default:
		}
	}

	s.logger.Debug().Bool("authenticated", next.Authenticated).Str("role", string(next.Role)).Msg("session updated")
	return persistErr
}

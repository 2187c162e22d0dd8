package tokenrepofake

import (
	"sync"

	"github.com/jrsteele09/schoolgest-client/token"
)

var _ token.Repo = (*FakeTokenRepo)(nil)

type FakeTokenRepo struct {
	values map[token.Key]string
	lock   sync.RWMutex
}

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{
		values: make(map[token.Key]string),
	}
}

func (r *FakeTokenRepo) Get(key token.Key) (string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return "", token.ErrNotFound
	}
	return v, nil
}

func (r *FakeTokenRepo) Set(key token.Key, value string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.values[key] = value
	return nil
}

func (r *FakeTokenRepo) Delete(keys ...token.Key) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

// Len reports how many keys are stored
func (r *FakeTokenRepo) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.values)
}

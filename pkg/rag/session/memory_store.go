package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in-process. The default backend for a
// single-instance deployment.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

var _ Store = &MemoryStore{}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Save stores a snapshot of the session. Later mutations of the caller's
// copy stay invisible until the next Save, matching RedisStore.
func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	s.cache.Set(sess.ID, sess.clone(), s.ttl)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	v, found := s.cache.Get(id)
	if !found {
		return nil, ErrNotFound
	}
	return v.(*Session).clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

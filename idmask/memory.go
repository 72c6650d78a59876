package idmask

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore keeps tokens in process. Tokens are lost on restart and are not shared between replicas.
type MemoryStore struct {
	tokens *expirable.LRU[string, int64]
	ids    *expirable.LRU[int64, string]
}

func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {

	return &MemoryStore{
		tokens: expirable.NewLRU[string, int64](size, nil, ttl),
		ids:    expirable.NewLRU[int64, string](size, nil, ttl),
	}
}

func (s *MemoryStore) Lookup(_ context.Context, id int64) (string, bool, error) {

	token, ok := s.ids.Get(id)
	if !ok {
		return "", false, nil
	}

	//NOTE: The reverse entry may have been evicted on its own
	if _, ok := s.tokens.Peek(token); !ok {
		s.ids.Remove(id)
		return "", false, nil
	}

	return token, true, nil
}

func (s *MemoryStore) Resolve(_ context.Context, token string) (int64, bool, error) {

	id, ok := s.tokens.Get(token)
	return id, ok, nil
}

// Save ignores ttl; entries expire with the TTL the store was created with.
func (s *MemoryStore) Save(_ context.Context, id int64, token string, _ time.Duration) error {

	s.tokens.Add(token, id)
	s.ids.Add(id, token)

	return nil
}

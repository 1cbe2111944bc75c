package stor

import (
	"fmt"
	"sort"
	"sync"

	"github.com/minerguide/pilotd/pkg/pilotdb/model"
	"github.com/pkg/errors"
)

type InMemoryAPIKeyStor struct {
	mu   sync.Mutex
	keys map[int]*model.APIKey
}

func NewInMemoryAPIKeyStor(keys ...*model.APIKey) *InMemoryAPIKeyStor {
	s := &InMemoryAPIKeyStor{keys: make(map[int]*model.APIKey)}
	for _, k := range keys {
		s.keys[k.ID] = k
	}

	return s
}

func (s *InMemoryAPIKeyStor) CreateAPIKey(key *model.APIKey) (*model.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[key.ID]; ok {
		return nil, fmt.Errorf("api key %d already exists", key.ID)
	}

	s.keys[key.ID] = key
	return key, nil
}

func (s *InMemoryAPIKeyStor) GetAPIKeyByID(id int) (*model.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.keys[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "api key %d", id)
	}

	return key, nil
}

func (s *InMemoryAPIKeyStor) ListAPIKeys() ([]model.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]model.APIKey, 0, len(s.keys))
	for _, k := range s.keys {
		keys = append(keys, *k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].ID < keys[j].ID })
	return keys, nil
}

func (s *InMemoryAPIKeyStor) UpdateVerification(id int, vcode string) (*model.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.keys[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "api key %d", id)
	}

	key.VCode = vcode
	return key, nil
}

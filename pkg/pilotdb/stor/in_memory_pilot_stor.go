package stor

import (
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-uuid"
	"github.com/minerguide/pilotd/pkg/pilotdb/model"
	"github.com/pkg/errors"
)

type InMemoryPilotStor struct {
	mu     sync.Mutex
	pilots map[int]model.Pilot
}

func NewInMemoryPilotStor(pilots ...model.Pilot) *InMemoryPilotStor {
	s := &InMemoryPilotStor{pilots: make(map[int]model.Pilot)}
	for _, p := range pilots {
		s.pilots[p.ID] = p
	}

	return s
}

func (s *InMemoryPilotStor) SavePilot(p *model.Pilot) (*model.Pilot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.pilots[p.ID]; ok {
		p.UUID = existing.UUID
		p.CreatedAt = existing.CreatedAt
	} else {
		var err error
		if p.UUID == "" {
			if p.UUID, err = uuid.GenerateUUID(); err != nil {
				return nil, err
			}
		}
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	s.pilots[p.ID] = *p
	return p, nil
}

func (s *InMemoryPilotStor) GetPilotByID(id int) (*model.Pilot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pilots[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "pilot %d", id)
	}

	return &p, nil
}

func (s *InMemoryPilotStor) GetPilotBySlug(slug string) (*model.Pilot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.pilots {
		if p.Slug == slug {
			return &p, nil
		}
	}

	return nil, errors.Wrapf(ErrNotFound, "pilot '%s'", slug)
}

func (s *InMemoryPilotStor) ListPilots() ([]model.Pilot, error) {
	return s.list(func(model.Pilot) bool { return true }), nil
}

func (s *InMemoryPilotStor) ListPilotsForAPIKey(keyID int) ([]model.Pilot, error) {
	return s.list(func(p model.Pilot) bool { return p.APIKeyID == keyID }), nil
}

func (s *InMemoryPilotStor) list(match func(model.Pilot) bool) []model.Pilot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pilots []model.Pilot
	for _, p := range s.pilots {
		if match(p) {
			pilots = append(pilots, p)
		}
	}

	sort.Slice(pilots, func(i, j int) bool { return pilots[i].ID < pilots[j].ID })
	return pilots
}

func (s *InMemoryPilotStor) DeletePilot(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pilots[id]; !ok {
		return errors.Wrapf(ErrNotFound, "pilot %d", id)
	}

	delete(s.pilots, id)
	return nil
}

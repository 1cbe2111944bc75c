// Package roster is the collection of pilots pilotd manages: it owns the
// pilots, their API keys and the implant catalog, persists pilots through
// the stors and runs refreshes.
package roster

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/minerguide/pilotd/pkg/clog"
	"github.com/minerguide/pilotd/pkg/eveapi"
	"github.com/minerguide/pilotd/pkg/implant"
	"github.com/minerguide/pilotd/pkg/lock"
	"github.com/minerguide/pilotd/pkg/pilot"
	"github.com/minerguide/pilotd/pkg/pilotdb/model"
	"github.com/minerguide/pilotd/pkg/pilotdb/stor"
)

var (
	ErrUnknownPilot = errors.New("unknown pilot")
	ErrUnknownKey   = errors.New("unknown api key")
	ErrPilotExists  = errors.New("pilot already exists")
)

type Options struct {
	Fetcher        eveapi.Fetcher
	Catalog        implant.Catalog
	Stors          *stor.Stors
	RefreshWorkers int
}

type Roster struct {
	mu     sync.RWMutex
	pilots map[int]*pilot.Pilot
	keys   map[int]*keyCredentials

	fetcher eveapi.Fetcher
	catalog implant.Catalog
	stors   *stor.Stors
	workers int

	// pilotLocker orders refreshes, removals and re-keys of the same pilot.
	pilotLocker *lock.IdLocker
}

func New(opts Options) *Roster {
	if opts.Catalog == nil {
		opts.Catalog = implant.Builtin()
	}

	if opts.Stors == nil {
		opts.Stors = stor.NewInMemoryStors()
	}

	if opts.RefreshWorkers < 1 {
		opts.RefreshWorkers = 1
	}

	return &Roster{
		pilots:        make(map[int]*pilot.Pilot),
		keys:          make(map[int]*keyCredentials),
		fetcher:       opts.Fetcher,
		catalog:       opts.Catalog,
		stors:         opts.Stors,
		workers:       opts.RefreshWorkers,
		pilotLocker:   lock.NewIdLocker(),
	}
}

func (r *Roster) Catalog() implant.Catalog {
	return r.catalog
}

// Load replaces the in-memory roster with the keys and pilots from the
// stors. Pilots whose stored document can't be read are skipped and
// reported in the returned error; the rest are still loaded.
func (r *Roster) Load() error {
	keys, err := r.stors.APIKeyStor.ListAPIKeys()
	if err != nil {
		return err
	}

	records, err := r.stors.PilotStor.ListPilots()
	if err != nil {
		return err
	}

	loadedKeys := make(map[int]*keyCredentials, len(keys))
	for i := range keys {
		loadedKeys[keys[i].ID] = newKeyCredentials(&keys[i])
	}

	var (
		errs   []error
		pilots = make(map[int]*pilot.Pilot, len(records))
	)
	for _, rec := range records {
		p, err := fromRecord(rec, ownerFor(loadedKeys, rec.APIKeyID), r.catalog)
		if err != nil {
			clog.ForPilot(rec.ID).Errorf("Unable to load pilot: %s", err)
			errs = append(errs, fmt.Errorf("pilot %d: %w", rec.ID, err))
			continue
		}
		pilots[p.ID()] = p
	}

	r.mu.Lock()
	r.keys = loadedKeys
	r.pilots = pilots
	r.mu.Unlock()

	return errors.Join(errs...)
}

// ownerFor avoids handing pilots a typed nil when the key is gone.
func ownerFor(keys map[int]*keyCredentials, keyID int) pilot.Credentials {
	if key, ok := keys[keyID]; ok {
		return key
	}

	return nil
}

func fromRecord(rec model.Pilot, owner pilot.Credentials, catalog implant.Catalog) (*pilot.Pilot, error) {
	if rec.Document == "" {
		return pilot.New(rec.ID, rec.Name, owner), nil
	}

	return pilot.Unmarshal([]byte(rec.Document), owner, catalog)
}

func toRecord(p *pilot.Pilot) (*model.Pilot, error) {
	doc, err := p.Marshal()
	if err != nil {
		return nil, err
	}

	rec := &model.Pilot{
		ID:       p.ID(),
		Name:     p.Name(),
		Slug:     p.Slug(),
		Document: string(doc),
	}

	if owner := p.Owner(); owner != nil {
		rec.APIKeyID = owner.KeyID()
	}

	return rec, nil
}

func (r *Roster) AddAPIKey(keyID int, vcode string) (*model.APIKey, error) {
	key, err := r.stors.APIKeyStor.CreateAPIKey(&model.APIKey{ID: keyID, VCode: vcode})
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.keys[key.ID] = newKeyCredentials(key)
	r.mu.Unlock()

	return key, nil
}

// UpdateVerification changes a key's verification code. Pilots share the
// key's credentials, so their next refresh uses the new code.
func (r *Roster) UpdateVerification(keyID int, vcode string) error {
	key, ok := r.credentials(keyID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownKey, keyID)
	}

	if _, err := r.stors.APIKeyStor.UpdateVerification(keyID, vcode); err != nil {
		return err
	}

	key.setVerification(vcode)
	clog.ForKey(keyID).Infof("Updated verification code")
	return nil
}

func (r *Roster) credentials(keyID int) (*keyCredentials, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.keys[keyID]
	return key, ok
}

// APIKey returns the credentials pilots of keyID are refreshed with.
func (r *Roster) APIKey(keyID int) (pilot.Credentials, bool) {
	key, ok := r.credentials(keyID)
	if !ok {
		return nil, false
	}

	return key, true
}

// AddPilot creates a blank pilot owned by keyID and saves it.
func (r *Roster) AddPilot(keyID, pilotID int, name string) (*pilot.Pilot, error) {
	key, ok := r.credentials(keyID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, keyID)
	}

	p := pilot.New(pilotID, name, key)

	err := r.pilotLocker.WithLock(pilotID, func() error {
		r.mu.Lock()
		if _, exists := r.pilots[pilotID]; exists {
			r.mu.Unlock()
			return fmt.Errorf("%w: %d", ErrPilotExists, pilotID)
		}
		r.pilots[pilotID] = p
		r.mu.Unlock()

		if err := r.save(p); err != nil {
			r.mu.Lock()
			delete(r.pilots, pilotID)
			r.mu.Unlock()
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

// DiscoverPilots asks the API which characters keyID can see and adds the
// ones not yet on the roster.
func (r *Roster) DiscoverPilots(ctx context.Context, keyID int) ([]*pilot.Pilot, error) {
	key, ok := r.credentials(keyID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, keyID)
	}

	chars, err := eveapi.KeyCharacters(ctx, r.fetcher, key.KeyID(), key.Verification())
	if err != nil {
		return nil, err
	}

	var added []*pilot.Pilot
	for _, c := range chars {
		if _, exists := r.Get(c.ID); exists {
			continue
		}

		p, err := r.AddPilot(keyID, c.ID, c.Name)
		if err != nil {
			return added, err
		}
		added = append(added, p)
	}

	return added, nil
}

func (r *Roster) Get(pilotID int) (*pilot.Pilot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pilots[pilotID]
	return p, ok
}

func (r *Roster) GetBySlug(slug string) (*pilot.Pilot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.pilots {
		if p.Slug() == slug {
			return p, true
		}
	}

	return nil, false
}

// List returns the pilots ordered by id.
func (r *Roster) List() []*pilot.Pilot {
	r.mu.RLock()
	pilots := make([]*pilot.Pilot, 0, len(r.pilots))
	for _, p := range r.pilots {
		pilots = append(pilots, p)
	}
	r.mu.RUnlock()

	sort.Slice(pilots, func(i, j int) bool { return pilots[i].ID() < pilots[j].ID() })
	return pilots
}

// Remove drops a pilot from the roster and the stors. A refresh of the
// pilot in flight finishes first.
func (r *Roster) Remove(pilotID int) error {
	return r.pilotLocker.WithLock(pilotID, func() error {
		if _, ok := r.Get(pilotID); !ok {
			return fmt.Errorf("%w: %d", ErrUnknownPilot, pilotID)
		}

		if err := r.stors.PilotStor.DeletePilot(pilotID); err != nil && !errors.Is(err, stor.ErrNotFound) {
			return err
		}

		r.mu.Lock()
		delete(r.pilots, pilotID)
		r.mu.Unlock()

		clog.ForPilot(pilotID).Infof("Removed pilot")
		return nil
	})
}

// Save persists the current state of a pilot.
func (r *Roster) Save(pilotID int) error {
	return r.pilotLocker.WithLock(pilotID, func() error {
		p, ok := r.Get(pilotID)
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownPilot, pilotID)
		}

		return r.save(p)
	})
}

func (r *Roster) save(p *pilot.Pilot) error {
	rec, err := toRecord(p)
	if err != nil {
		return err
	}

	_, err = r.stors.PilotStor.SavePilot(rec)
	return err
}

// Rekey moves a pilot to another API key. The pilot is replaced by a blank
// copy owned by the new key; its data has to be refreshed through that key.
// A refresh of the pilot in flight finishes first.
func (r *Roster) Rekey(pilotID, keyID int) (*pilot.Pilot, error) {
	key, ok := r.credentials(keyID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, keyID)
	}

	var moved *pilot.Pilot
	err := r.pilotLocker.WithLock(pilotID, func() error {
		p, ok := r.Get(pilotID)
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownPilot, pilotID)
		}

		moved = p.CloneWithOwner(key)
		if err := r.save(moved); err != nil {
			return err
		}

		r.mu.Lock()
		r.pilots[pilotID] = moved
		r.mu.Unlock()

		clog.ForPilot(pilotID).Infof("Moved pilot to key %d", keyID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return moved, nil
}

package roster

import (
	"context"
	"fmt"
	"sync"

	"github.com/minerguide/pilotd/pkg/clog"
	"github.com/minerguide/pilotd/pkg/pilot"
	"golang.org/x/sync/errgroup"
)

// Refresh reloads one pilot from the API and saves it. Refreshes, removals
// and re-keys of the same pilot run one after the other. A failed refresh
// returns the pilot's *pilot.RefreshError and saves nothing.
func (r *Roster) Refresh(ctx context.Context, pilotID int) error {
	return r.pilotLocker.WithLock(pilotID, func() error {
		p, ok := r.Get(pilotID)
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownPilot, pilotID)
		}

		l := clog.ForPilot(pilotID)

		if err := p.Refresh(ctx, r.fetcher, r.catalog); err != nil {
			l.Warnf("Refresh failed (%s): %s", pilot.RefreshStateOf(err), err)
			return err
		}

		// Only the pilot currently on the roster may be written back.
		if current, ok := r.Get(pilotID); !ok || current != p {
			l.Warnf("Pilot replaced during refresh, not saving")
			return nil
		}

		if err := r.save(p); err != nil {
			l.Errorf("Refreshed pilot but unable to save it: %s", err)
			return err
		}

		l.Infof("Refreshed pilot %s", p.Name())
		return nil
	})
}

// RefreshAll refreshes every pilot, at most RefreshWorkers at a time, and
// returns the failures keyed by pilot id. One failure doesn't stop the
// others.
func (r *Roster) RefreshAll(ctx context.Context) map[int]error {
	var (
		g        errgroup.Group
		mu       sync.Mutex
		failures = make(map[int]error)
	)

	g.SetLimit(r.workers)

	for _, p := range r.List() {
		pilotID := p.ID()
		g.Go(func() error {
			if err := r.Refresh(ctx, pilotID); err != nil {
				mu.Lock()
				failures[pilotID] = err
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return failures
}

package lock

import (
	"sync"

	"github.com/apex/log"
)

// IdLocker hands out one mutex per integer id. Mutexes are created on first
// use and kept for the lifetime of the locker.
type IdLocker struct {
	mapMutex sync.Mutex
	idMap    map[int]*sync.Mutex
}

func NewIdLocker() *IdLocker {
	return &IdLocker{
		idMap: make(map[int]*sync.Mutex),
	}
}

func (l *IdLocker) mutexFor(id int, create bool) *sync.Mutex {
	l.mapMutex.Lock()
	defer l.mapMutex.Unlock()

	m, ok := l.idMap[id]
	if !ok && create {
		m = &sync.Mutex{}
		l.idMap[id] = m
	}

	return m
}

func (l *IdLocker) AcquireLock(id int) {
	l.mutexFor(id, true).Lock()
}

func (l *IdLocker) ReleaseLock(id int) {
	m := l.mutexFor(id, false)
	if m == nil {
		log.Errorf("ReleaseLock called on id (%d) with no mutex", id)
		return
	}

	m.Unlock()
}

func (l *IdLocker) WithLock(id int, f func() error) error {
	l.AcquireLock(id)
	defer l.ReleaseLock(id)
	return f()
}

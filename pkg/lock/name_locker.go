package lock

import (
	"sync"

	"github.com/apex/log"
)

// NameLocker hands out one mutex per name. Callers holding the lock for
// one name never block callers working on a different name.
type NameLocker struct {
	mapMutex sync.Mutex
	nameMap  map[string]*sync.Mutex
}

func NewNameLocker() *NameLocker {
	return &NameLocker{
		nameMap: make(map[string]*sync.Mutex),
	}
}

func (l *NameLocker) AcquireLock(name string) {
	l.mapMutex.Lock()
	nameMutex, ok := l.nameMap[name]
	if !ok {
		nameMutex = &sync.Mutex{}
		l.nameMap[name] = nameMutex
	}
	l.mapMutex.Unlock()

	nameMutex.Lock()
}

func (l *NameLocker) ReleaseLock(name string) {
	l.mapMutex.Lock()
	m, ok := l.nameMap[name]
	l.mapMutex.Unlock()

	if !ok {
		log.Errorf("ReleaseLock called on name (%s) with no mutex", name)
		return
	}

	m.Unlock()
}

func (l *NameLocker) WithLock(name string, f func() error) error {
	l.AcquireLock(name)
	defer l.ReleaseLock(name)
	return f()
}

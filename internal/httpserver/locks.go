package httpserver

import (
	"hash/fnv"
	"sync"
)

// roundLocks serializes read-modify-write cycles on a session.
// Keys hash onto a fixed set of mutexes, so unrelated rounds may share one.
type roundLocks struct {
	stripes [64]sync.Mutex
}

func (l *roundLocks) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	m := &l.stripes[h.Sum32()%uint32(len(l.stripes))]
	m.Lock()
	return m.Unlock
}

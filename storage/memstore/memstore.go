// Package memstore provides in-memory implementations of the storage
// surfaces. A single MemStore shared between several session kits stands
// in for same-origin shared storage; one MemStore per kit stands in for
// tab-local storage. Also the storage fake used throughout the tests.
package memstore

import (
	"strconv"
	"sync"

	"github.com/shiftwatch/sessionguard/storage"
)

var (
	_ storage.Store   = (*MemStore)(nil)
	_ storage.Counter = (*MemStore)(nil)
)

type MemStore struct {
	lock   sync.RWMutex
	values map[string]string
}

func New() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.values[key] = value
}

func (s *MemStore) Delete(key string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.values, key)
}

func (s *MemStore) Incr(key string) int64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	n, _ := strconv.ParseInt(s.values[key], 10, 64)
	n++
	s.values[key] = strconv.FormatInt(n, 10)
	return n
}

func (s *MemStore) Decr(key string) int64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	n, _ := strconv.ParseInt(s.values[key], 10, 64)
	if n > 0 {
		n--
	} else {
		n = 0
	}
	s.values[key] = strconv.FormatInt(n, 10)
	return n
}

// Len reports the number of stored keys. Test helper.
func (s *MemStore) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.values)
}

package memstore

import (
	"sync"

	"github.com/shiftwatch/sessionguard/storage"
)

var _ storage.Cookies = (*CookieJar)(nil)

// CookieJar is an in-memory cookie mirror.
type CookieJar struct {
	lock    sync.RWMutex
	cookies map[string]string
}

func NewCookieJar() *CookieJar {
	return &CookieJar{cookies: make(map[string]string)}
}

func (j *CookieJar) Get(name string) (string, bool) {
	j.lock.RLock()
	defer j.lock.RUnlock()
	v, ok := j.cookies[name]
	return v, ok
}

func (j *CookieJar) Set(name, value string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.cookies[name] = value
}

func (j *CookieJar) Expire(name string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	delete(j.cookies, name)
}

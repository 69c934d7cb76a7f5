package fakeaccountrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/shiftwatch/sessionguard/account"
	"github.com/shiftwatch/sessionguard/role"
)

var _ account.Repo = (*FakeAccountRepo)(nil)

type FakeAccountRepo struct {
	accounts    map[string]*account.Account
	usernameIds map[string]string // username to account id
	lock        sync.RWMutex
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		accounts:    make(map[string]*account.Account),
		usernameIds: make(map[string]string),
	}
}

func (ar *FakeAccountRepo) Upsert(acc *account.Account) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if acc.ID == "" {
		acc.ID = uuid.New().String()
	}
	ar.accounts[acc.ID] = acc
	ar.usernameIds[acc.Username] = acc.ID
	return nil
}

func (ar *FakeAccountRepo) GetByUsername(username string) (*account.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	id, ok := ar.usernameIds[username]
	if !ok {
		return nil, errors.New("not found")
	}
	return ar.accounts[id], nil
}

func (ar *FakeAccountRepo) GetByID(id string) (*account.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	acc, ok := ar.accounts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return acc, nil
}

func (ar *FakeAccountRepo) ActiveControllers() ([]*account.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	var controllers []*account.Account
	for _, acc := range ar.accounts {
		if acc.HasRole(role.ActiveController) && !acc.Blocked {
			controllers = append(controllers, acc)
		}
	}
	sort.Slice(controllers, func(i, j int) bool {
		return controllers[i].Username < controllers[j].Username
	})
	return controllers, nil
}

var _ account.SignatureRepo = (*FakeSignatureRepo)(nil)

// FakeSignatureRepo records uploads and can be told to reject them.
type FakeSignatureRepo struct {
	lock      sync.Mutex
	uploads   map[string]string // account id to data URL
	RejectAll bool
}

func NewFakeSignatureRepo() *FakeSignatureRepo {
	return &FakeSignatureRepo{uploads: make(map[string]string)}
}

func (sr *FakeSignatureRepo) Upload(_ context.Context, accountID, dataURL string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.RejectAll {
		return errors.New("upload rejected")
	}
	sr.uploads[accountID] = dataURL
	return nil
}

func (sr *FakeSignatureRepo) Uploaded(accountID string) (string, bool) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	v, ok := sr.uploads[accountID]
	return v, ok
}

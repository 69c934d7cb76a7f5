package account

import "context"

// Repo defines account lookup and storage.
type Repo interface {
	// Upsert creates or updates an account
	Upsert(acc *Account) error

	// GetByUsername retrieves an account by login name
	GetByUsername(username string) (*Account, error)

	// GetByID retrieves an account by id
	GetByID(id string) (*Account, error)

	// ActiveControllers lists the accounts an Observer may view as
	ActiveControllers() ([]*Account, error)
}

// SignatureRepo is the signature upload endpoint. The guard only needs
// its completion signal; the uploaded image itself is cached in shared
// storage by the caller.
type SignatureRepo interface {
	Upload(ctx context.Context, accountID, dataURL string) error
}

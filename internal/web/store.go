package web

import (
	"context"

	"cylinderlog/internal/config"
	"cylinderlog/internal/handover"
	"cylinderlog/internal/store"
)

// EntryStore is the slice of the document store the handlers use. The
// production implementation is *store.Store; tests substitute a fake.
type EntryStore interface {
	// Ping dials with the bound credentials, verifies liveness, and
	// closes the connection.
	Ping(ctx context.Context) error

	// InsertEntry writes one entry atomically and returns its id.
	InsertEntry(ctx context.Context, e *handover.Entry) (string, error)

	// ListEntries returns all entries, newest first.
	ListEntries(ctx context.Context) ([]handover.Entry, error)

	// DeleteEntry removes exactly one entry, or returns a not-found error.
	DeleteEntry(ctx context.Context, id string) error
}

// StoreFactory builds an EntryStore bound to the given credentials. A new
// store is built per operation so every call re-authenticates as the
// session identity and nothing is pooled between operations.
type StoreFactory func(creds store.CredentialProvider) EntryStore

// MongoStoreFactory returns the production factory backed by store.New.
func MongoStoreFactory(cfg config.StoreConfig) StoreFactory {
	return func(creds store.CredentialProvider) EntryStore {
		return store.New(cfg, creds)
	}
}

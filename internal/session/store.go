package session

import (
	"context"
	"errors"
)

// ErrNoCredential is returned by Get when the slot is empty.
var ErrNoCredential = errors.New("no credential stored")

// Store is the single-slot credential store: the Go-side analog of the
// browser's `authToken` local-storage key. Set replaces the whole slot;
// there is never more than one credential.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, credential string) error
	Clear(ctx context.Context) error
}

package storage

import (
	"context"
	"errors"
)

// Keys written by the storefront.
const (
	KeyCart         = "cart"
	KeyOrderType    = "orderType"
	KeyCurrentOrder = "currentOrder"
)

var (
	ErrNotFound = errors.New("key not found")
	// ErrCorrupt marks stored data that could not be decoded.
	ErrCorrupt = errors.New("stored data is corrupt")
)

// Store is the durable key-value storage behind the cart and checkout.
// Writes are complete when the call returns.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

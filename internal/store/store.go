// Package store provides atomic, all-or-nothing transactions over a declared
// set of fixed-size records located by address.
package store

import (
	"context"
	"errors"

	"github.com/d60-Lab/commentlog/internal/address"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrExists     = errors.New("record already exists")
	ErrUndeclared = errors.New("record not declared by operation")
	ErrReadOnly   = errors.New("write in read-only transaction")
	ErrConflict   = errors.New("transaction conflict, retries exhausted")
)

// Tx is the view an operation has of its declared records.
type Tx interface {
	Get(addr address.Address) ([]byte, error)
	Create(addr address.Address, namespace string, data []byte) error
	Put(addr address.Address, namespace string, data []byte) error
	Delete(addr address.Address) error
}

// Entry is one record returned by Scan.
type Entry struct {
	Address address.Address
	Data    []byte
}

// Store runs operations against records. Update commits every write made by
// fn or none of them; an error from fn discards all writes.
type Store interface {
	Update(ctx context.Context, addrs []address.Address, fn func(tx Tx) error) error
	View(ctx context.Context, addrs []address.Address, fn func(tx Tx) error) error
	Scan(ctx context.Context, namespace string) ([]Entry, error)
	Close() error
}

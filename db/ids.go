package db

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDAllocator hands out collection ids. Ids must be unique for the lifetime of
// the store; deleted ids are never reissued.
type IDAllocator interface {
	NewID() string
}

// UUIDAllocator issues random v4 UUIDs.
type UUIDAllocator struct{}

// NewID implements IDAllocator.
func (UUIDAllocator) NewID() string {
	return uuid.NewString()
}

// CounterAllocator issues prefix-1, prefix-2, ... in order.
type CounterAllocator struct {
	Prefix string
	next   atomic.Uint64
}

// NewID implements IDAllocator.
func (a *CounterAllocator) NewID() string {
	return a.Prefix + "-" + strconv.FormatUint(a.next.Add(1), 10)
}

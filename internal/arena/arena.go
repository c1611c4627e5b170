// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package arena implements a bump allocator whose allocations are released in
// bulk. Objects placed in an arena are never released individually: Reset
// drops every allocation at once and runs the release hooks registered with
// Defer.
package arena

import (
	"io"
	"math"

	"github.com/cockroachdb/errors"
)

// ErrArenaFull is returned by allocations that do not fit in the remaining
// capacity of the arena.
var ErrArenaFull = errors.New("allocation failed because arena is full")

// Arena is a fixed-capacity bump allocator. It is not safe for concurrent
// use.
type Arena struct {
	n        uint64
	buf      []byte
	deferred []io.Closer
}

// New allocates a new arena with the specified capacity in bytes.
func New(capacity uint32) *Arena {
	return &Arena{buf: make([]byte, capacity)}
}

// Size returns the number of bytes allocated so far.
func (a *Arena) Size() uint32 {
	return uint32(a.n)
}

// Capacity returns the capacity of the arena in bytes.
func (a *Arena) Capacity() uint32 {
	return uint32(len(a.buf))
}

// Alloc returns a zeroed slice of the given size carved out of the arena.
func (a *Arena) Alloc(size uint32) ([]byte, error) {
	newSize := a.n + uint64(size)
	if newSize > uint64(len(a.buf)) {
		return nil, errors.Wrapf(ErrArenaFull, "allocating %d bytes (size %d, capacity %d)",
			size, a.n, len(a.buf))
	}
	offset := a.n
	a.n = newSize
	b := a.buf[offset:newSize:newSize]
	clear(b)
	return b, nil
}

// Copy returns a copy of b allocated in the arena.
func (a *Arena) Copy(b []byte) ([]byte, error) {
	if uint64(len(b)) > math.MaxUint32 {
		return nil, errors.Wrapf(ErrArenaFull, "allocating %d bytes", len(b))
	}
	dst, err := a.Alloc(uint32(len(b)))
	if err != nil {
		return nil, err
	}
	copy(dst, b)
	return dst, nil
}

// Defer registers c to be closed when the arena is reset. Objects whose
// lifetime is bound to the arena register here instead of being closed by
// their users.
func (a *Arena) Defer(c io.Closer) {
	a.deferred = append(a.deferred, c)
}

// Deferred returns the number of release hooks registered with Defer since
// the last Reset.
func (a *Arena) Deferred() int {
	return len(a.deferred)
}

// Reset releases every allocation and runs the registered release hooks in
// reverse registration order. Every hook runs even if an earlier one fails;
// the first failure is returned. Slices returned by Alloc and Copy must not be
// used after Reset.
func (a *Arena) Reset() error {
	var err error
	for i := len(a.deferred) - 1; i >= 0; i-- {
		if cerr := a.deferred[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
		a.deferred[i] = nil
	}
	a.deferred = a.deferred[:0]
	a.n = 0
	return err
}

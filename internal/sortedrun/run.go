// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package sortedrun implements an immutable, in-memory sorted run of
// key/value entries and a bidirectional iterator over it.
package sortedrun

import (
	"github.com/cockroachdb/errors"
	"github.com/sortedmerge/merger/internal/arena"
	"github.com/sortedmerge/merger/internal/base"
)

// Run is an immutable sequence of entries in strictly increasing key order.
type Run struct {
	cmp  *base.Comparer
	keys [][]byte
	vals [][]byte
	size int
}

// Len returns the number of entries in the run.
func (r *Run) Len() int {
	return len(r.keys)
}

// Size returns the number of key and value bytes in the run.
func (r *Run) Size() int {
	return r.size
}

// Builder accumulates entries into a Run. Keys must be added in strictly
// increasing order.
type Builder struct {
	run   Run
	arena *arena.Arena
	err   error
}

// NewBuilder returns a Builder whose entries are copied onto the Go heap.
func NewBuilder(cmp *base.Comparer) *Builder {
	return &Builder{run: Run{cmp: cmp.EnsureDefaults()}}
}

// NewBuilderInArena returns a Builder whose entries are copied into a.
func NewBuilderInArena(cmp *base.Comparer, a *arena.Arena) *Builder {
	b := NewBuilder(cmp)
	b.arena = a
	return b
}

// Add appends an entry to the run. Once Add has failed every subsequent call
// returns the same error.
func (b *Builder) Add(key, value []byte) error {
	if b.err != nil {
		return b.err
	}
	if n := len(b.run.keys); n > 0 && b.run.cmp.Compare(b.run.keys[n-1], key) >= 0 {
		b.err = base.CorruptionErrorf("sortedrun: keys out of order: %s >= %s",
			b.run.cmp.FormatKey(b.run.keys[n-1]), b.run.cmp.FormatKey(key))
		return b.err
	}
	k, err := b.clone(key)
	if err != nil {
		b.err = err
		return err
	}
	v, err := b.clone(value)
	if err != nil {
		b.err = err
		return err
	}
	b.run.keys = append(b.run.keys, k)
	b.run.vals = append(b.run.vals, v)
	b.run.size += len(k) + len(v)
	return nil
}

func (b *Builder) clone(v []byte) ([]byte, error) {
	if b.arena != nil {
		c, err := b.arena.Copy(v)
		return c, errors.Wrap(err, "sortedrun")
	}
	return append([]byte(nil), v...), nil
}

// Finish returns the accumulated run, or the first error returned by Add.
func (b *Builder) Finish() (*Run, error) {
	if b.err != nil {
		return nil, b.err
	}
	r := &Run{}
	*r = b.run
	b.run = Run{cmp: r.cmp}
	return r, nil
}

// NewIter returns an unpositioned iterator over the run. The caller must
// close it.
func (r *Run) NewIter() *Iter {
	return &Iter{run: r, index: -1}
}

// NewIterInArena returns an unpositioned iterator over the run whose lifetime
// is bound to a: the iterator is closed when a is reset and must not be
// closed by the caller.
func (r *Run) NewIterInArena(a *arena.Arena) *Iter {
	i := r.NewIter()
	a.Defer(i)
	return i
}

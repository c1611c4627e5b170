// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package itertest

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sortedmerge/merger/internal/base"
)

// ErrInjected is an error artificially injected for testing.
var ErrInjected = errors.New("injected error")

// FakeIter is a slice-backed base.InternalIterator that records the
// operations performed on it and can be configured to fail. It deliberately
// does not implement base.ForwardScanner.
type FakeIter struct {
	Name string
	cmp  base.Compare
	kvs  []base.KV
	// index is -1 when positioned before the first entry and len(kvs) when
	// positioned after the last.
	index  int
	pinned bool
	closed bool

	// PinErr, if set, is returned by Pin.
	PinErr error
	// UnpinErr, if set, is returned by Unpin. The iterator is unpinned
	// regardless.
	UnpinErr error
	// Err, if set, is returned by Error once ErrAfter positioning operations
	// have been performed. From then on the iterator is invalid.
	Err      error
	ErrAfter int
	// CloseErr, if set, is returned by Close.
	CloseErr error

	// Ops counts the positioning operations performed, keyed by operation
	// name ("seek-ge", "first", "last", "next", "prev").
	Ops map[string]int
	// PinCalls and UnpinCalls count calls to Pin and Unpin.
	PinCalls, UnpinCalls int
}

var _ base.InternalIterator = (*FakeIter)(nil)

// NewFakeIter returns a FakeIter over kvs, which must be sorted by cmp. The
// iterator starts unpositioned.
func NewFakeIter(cmp base.Compare, kvs ...base.KV) *FakeIter {
	if cmp == nil {
		cmp = base.DefaultComparer.Compare
	}
	return &FakeIter{cmp: cmp, kvs: kvs, index: -1, Ops: map[string]int{}}
}

// ParseKVs parses a whitespace separated list of "key:value" pairs. A pair
// without a colon has an empty value.
func ParseKVs(s string) []base.KV {
	var kvs []base.KV
	for _, f := range strings.Fields(s) {
		k, v, _ := strings.Cut(f, ":")
		kvs = append(kvs, base.KV{K: []byte(k), V: []byte(v)})
	}
	return kvs
}

// ParseFakeIter returns a FakeIter over the entries described by s, as
// parsed by ParseKVs.
func ParseFakeIter(s string) *FakeIter {
	return NewFakeIter(nil, ParseKVs(s)...)
}

func (f *FakeIter) op(name string, index int) *base.KV {
	f.Ops[name]++
	f.index = index
	return f.Entry()
}

func (f *FakeIter) failed() bool {
	if f.Err == nil {
		return false
	}
	n := 0
	for _, c := range f.Ops {
		n += c
	}
	return n > f.ErrAfter
}

// SeekGE implements base.InternalIterator.
func (f *FakeIter) SeekGE(key []byte) *base.KV {
	i := 0
	for i < len(f.kvs) && f.cmp(f.kvs[i].K, key) < 0 {
		i++
	}
	return f.op("seek-ge", i)
}

// SeekToFirst implements base.InternalIterator.
func (f *FakeIter) SeekToFirst() *base.KV {
	return f.op("first", 0)
}

// SeekToLast implements base.InternalIterator.
func (f *FakeIter) SeekToLast() *base.KV {
	return f.op("last", len(f.kvs)-1)
}

// Next implements base.InternalIterator.
func (f *FakeIter) Next() *base.KV {
	return f.op("next", min(f.index+1, len(f.kvs)))
}

// Prev implements base.InternalIterator.
func (f *FakeIter) Prev() *base.KV {
	return f.op("prev", max(f.index-1, -1))
}

// Entry implements base.InternalIterator.
func (f *FakeIter) Entry() *base.KV {
	if !f.Valid() {
		return nil
	}
	return &f.kvs[f.index]
}

// Valid implements base.InternalIterator.
func (f *FakeIter) Valid() bool {
	return f.index >= 0 && f.index < len(f.kvs) && !f.failed()
}

// Key implements base.InternalIterator.
func (f *FakeIter) Key() []byte {
	return f.kvs[f.index].K
}

// Value implements base.InternalIterator.
func (f *FakeIter) Value() []byte {
	return f.kvs[f.index].V
}

// Error implements base.InternalIterator.
func (f *FakeIter) Error() error {
	if f.failed() {
		return f.Err
	}
	return nil
}

// Pin implements base.InternalIterator.
func (f *FakeIter) Pin() error {
	f.PinCalls++
	if f.PinErr != nil {
		return f.PinErr
	}
	f.pinned = true
	return nil
}

// Unpin implements base.InternalIterator.
func (f *FakeIter) Unpin() error {
	f.UnpinCalls++
	f.pinned = false
	return f.UnpinErr
}

// Pinned returns true if the iterator is pinned.
func (f *FakeIter) Pinned() bool {
	return f.pinned
}

// IsKeyPinned implements base.InternalIterator.
func (f *FakeIter) IsKeyPinned() bool {
	return f.pinned
}

// Close implements base.InternalIterator.
func (f *FakeIter) Close() error {
	f.closed = true
	return f.CloseErr
}

// Closed returns true once Close has been called.
func (f *FakeIter) Closed() bool {
	return f.closed
}

// String implements fmt.Stringer.
func (f *FakeIter) String() string {
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprintf("fake(%d)", len(f.kvs))
}

// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package memtable implements a mutable, skiplist-backed in-memory source of
// key/value entries that can be read through a base.InternalIterator.
package memtable

import (
	"fmt"
	"slices"

	"github.com/huandu/skiplist"
	"github.com/sortedmerge/merger/internal/base"
)

// keyComparable adapts a base.Comparer to skiplist.Comparable.
type keyComparable struct {
	cmp base.Compare
}

func (c keyComparable) Compare(lhs, rhs interface{}) int {
	return c.cmp(lhs.([]byte), rhs.([]byte))
}

// CalcScore returns the same score for every key, so that ordering is
// decided by Compare alone. A score derived from the key bytes would only be
// correct for bytewise comparers.
func (c keyComparable) CalcScore(key interface{}) float64 {
	return 0
}

// MemTable is an ordered, in-memory collection of entries. Keys are unique:
// setting an existing key replaces its value.
//
// A MemTable is not safe for concurrent mutation, nor may it be mutated while
// an iterator over it is in use.
type MemTable struct {
	cmp  *base.Comparer
	list *skiplist.SkipList
	size int
}

// New returns an empty MemTable ordered by cmp. A nil cmp is equivalent to
// base.DefaultComparer.
func New(cmp *base.Comparer) *MemTable {
	cmp = cmp.EnsureDefaults()
	return &MemTable{
		cmp:  cmp,
		list: skiplist.New(keyComparable{cmp: cmp.Compare}),
	}
}

// Set inserts or replaces the entry for key. The key and value are copied.
func (m *MemTable) Set(key, value []byte) {
	if e := m.list.Get(key); e != nil {
		m.size -= len(e.Value.([]byte))
		m.size += len(value)
		e.Value = slices.Clone(value)
		return
	}
	m.list.Set(slices.Clone(key), slices.Clone(value))
	m.size += len(key) + len(value)
}

// Get returns the value for key, and whether it was found.
func (m *MemTable) Get(key []byte) ([]byte, bool) {
	e := m.list.Get(key)
	if e == nil {
		return nil, false
	}
	return e.Value.([]byte), true
}

// Len returns the number of entries.
func (m *MemTable) Len() int {
	return m.list.Len()
}

// Size returns the number of key and value bytes held.
func (m *MemTable) Size() int {
	return m.size
}

// NewIter returns an unpositioned iterator over the memtable.
func (m *MemTable) NewIter() *Iter {
	return &Iter{mem: m}
}

// Iter iterates over a MemTable. Skiplist nodes are never moved, so every
// key the iterator returns stays valid for the life of the memtable: the
// iterator is always pinned.
type Iter struct {
	mem  *MemTable
	node *skiplist.Element
	kv   base.KV
}

var _ base.InternalIterator = (*Iter)(nil)

func (i *Iter) setNode(node *skiplist.Element) *base.KV {
	i.node = node
	if node == nil {
		return nil
	}
	i.kv = base.KV{K: node.Key().([]byte), V: node.Value.([]byte)}
	return &i.kv
}

// SeekGE implements base.InternalIterator.
func (i *Iter) SeekGE(key []byte) *base.KV {
	return i.setNode(i.mem.list.Find(key))
}

// SeekToFirst implements base.InternalIterator.
func (i *Iter) SeekToFirst() *base.KV {
	return i.setNode(i.mem.list.Front())
}

// SeekToLast implements base.InternalIterator.
func (i *Iter) SeekToLast() *base.KV {
	return i.setNode(i.mem.list.Back())
}

// Next implements base.InternalIterator.
func (i *Iter) Next() *base.KV {
	if i.node == nil {
		return nil
	}
	return i.setNode(i.node.Next())
}

// Prev implements base.InternalIterator.
func (i *Iter) Prev() *base.KV {
	if i.node == nil {
		return nil
	}
	return i.setNode(i.node.Prev())
}

// Entry implements base.InternalIterator.
func (i *Iter) Entry() *base.KV {
	if i.node == nil {
		return nil
	}
	return &i.kv
}

// Valid implements base.InternalIterator.
func (i *Iter) Valid() bool {
	return i.node != nil
}

// Key implements base.InternalIterator.
func (i *Iter) Key() []byte {
	return i.kv.K
}

// Value implements base.InternalIterator.
func (i *Iter) Value() []byte {
	return i.kv.V
}

// Error implements base.InternalIterator.
func (i *Iter) Error() error {
	return nil
}

// Pin implements base.InternalIterator.
func (i *Iter) Pin() error {
	return nil
}

// Unpin implements base.InternalIterator.
func (i *Iter) Unpin() error {
	return nil
}

// IsKeyPinned implements base.InternalIterator.
func (i *Iter) IsKeyPinned() bool {
	return true
}

// Close implements base.InternalIterator.
func (i *Iter) Close() error {
	i.node = nil
	return nil
}

func (i *Iter) String() string {
	return fmt.Sprintf("memtable(%d)", i.mem.Len())
}

// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "fmt"

// KV holds a key and the value associated with it. The byte slices are owned
// by the iterator that produced the KV and remain valid until that iterator
// is next repositioned, unless the iterator's memory is pinned.
type KV struct {
	K []byte
	V []byte
}

// Valid returns true if kv refers to an entry. A nil *KV is the invalid
// marker returned by positioning methods that leave an iterator exhausted.
func (kv *KV) Valid() bool {
	return kv != nil
}

func (kv *KV) String() string {
	if kv == nil {
		return "."
	}
	return fmt.Sprintf("%s:%s", FormatBytes(kv.K), FormatBytes(kv.V))
}

// InternalIterator iterates over one sorted source of key/value entries in
// key order, as defined by a Comparer. The source may be a memtable snapshot,
// a sorted run, or another merging iterator.
//
// InternalIterators provide 3 absolute positioning methods and 2 relative
// positioning methods. The absolute positioning methods are:
//
// - SeekGE
// - SeekToFirst
// - SeekToLast
//
// The relative positioning methods are:
//
// - Next
// - Prev
//
// Every positioning method returns the entry the iterator landed on, or nil
// if the iterator is no longer positioned at an entry. It is undefined to call
// a relative positioning method on an iterator that is not positioned at an
// entry.
//
// Positioning methods never return errors. An iterator that encounters an
// error becomes invalid and exposes the error through the Error method, so the
// caller must check Error to distinguish exhaustion from failure.
//
// An iterator is not goroutine-safe, but it is safe to use multiple iterators
// concurrently, either in separate goroutines or switching between the
// iterators in a single goroutine.
type InternalIterator interface {
	// SeekGE moves the iterator to the first entry whose key is greater than
	// or equal to the given key.
	SeekGE(key []byte) *KV

	// SeekToFirst moves the iterator to the first entry.
	SeekToFirst() *KV

	// SeekToLast moves the iterator to the last entry.
	SeekToLast() *KV

	// Next moves the iterator to the next entry.
	Next() *KV

	// Prev moves the iterator to the previous entry.
	Prev() *KV

	// Entry returns the entry at the current position, or nil if the iterator
	// is not positioned at an entry. Entry does not move the iterator.
	Entry() *KV

	// Valid returns true if the iterator is positioned at an entry.
	Valid() bool

	// Key returns the key of the current entry. REQUIRES: Valid().
	Key() []byte

	// Value returns the value of the current entry. REQUIRES: Valid().
	Value() []byte

	// Error returns any accumulated error.
	Error() error

	// Pin asks the iterator to keep the memory backing every key and value it
	// returns valid until Unpin is called, rather than only until the next
	// positioning call.
	Pin() error

	// Unpin releases the memory retained by Pin.
	Unpin() error

	// IsKeyPinned returns true if the key of the current entry remains valid
	// after the iterator is repositioned. REQUIRES: Valid().
	IsKeyPinned() bool

	// Close closes the iterator and returns any accumulated error. Exhausting
	// all the entries of a source is not considered to be an error. Once
	// Close is called, the iterator should not be used again.
	Close() error

	fmt.Stringer
}

// ForwardScanner is an optional capability of an InternalIterator: a
// push-style forward scan that may be considerably cheaper than repeated
// calls to Next.
type ForwardScanner interface {
	// ScanForward scans forward from the current position, calling emit for
	// every entry whose user key is less than upper and which filter does not
	// skip. An empty upper bound means the scan is unbounded. ucmp orders user
	// keys and maps the iterator's keys to user keys.
	//
	// On return the iterator is positioned at the first entry with a user key
	// greater than or equal to upper (or is exhausted) when the bound was
	// reached, or at the entry for which emit returned false otherwise.
	//
	// REQUIRES: Valid().
	ScanForward(ucmp *Comparer, upper []byte, filter KeyFilter, emit ScanCallback) ScanForwardResult
}

// InternalIteratorWithScan is an InternalIterator that supports forward scans.
type InternalIteratorWithScan interface {
	InternalIterator
	ForwardScanner
}

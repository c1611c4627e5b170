// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

// KeyFilter is consulted by forward scans for every entry before it is
// emitted. Returning true skips the entry.
type KeyFilter func(userKey []byte) (skip bool)

// ScanCallback receives the entries visited by a forward scan. Returning
// false stops the scan.
type ScanCallback func(userKey, value []byte) bool

// ScanForwardResult describes the outcome of a forward scan.
type ScanForwardResult struct {
	// Visited is the number of entries examined, including entries skipped by
	// the key filter and the entry for which the scan callback requested the
	// scan stop.
	Visited int
	// ReachedUpperBound is true if the scan ended because the iterator was
	// exhausted or reached the upper bound, and false if the scan callback
	// requested an early stop.
	ReachedUpperBound bool
}

// ScanForward scans iter forward. It uses the iterator's own ScanForward if
// it implements ForwardScanner, and otherwise ScanForwardByNext.
func ScanForward(
	iter InternalIterator, ucmp *Comparer, upper []byte, filter KeyFilter, emit ScanCallback,
) ScanForwardResult {
	if s, ok := iter.(ForwardScanner); ok {
		return s.ScanForward(ucmp, upper, filter, emit)
	}
	return ScanForwardByNext(iter, ucmp, upper, filter, emit)
}

// ScanForwardByNext implements the ForwardScanner contract on top of the
// positioning methods of iter. It is the scan used for iterators that have no
// specialized implementation.
func ScanForwardByNext(
	iter InternalIterator, ucmp *Comparer, upper []byte, filter KeyFilter, emit ScanCallback,
) ScanForwardResult {
	var res ScanForwardResult
	for kv := iter.Entry(); kv != nil; kv = iter.Next() {
		userKey := ucmp.UserKey(kv.K)
		if len(upper) > 0 && ucmp.Compare(userKey, upper) >= 0 {
			break
		}
		res.Visited++
		if filter != nil && filter(userKey) {
			continue
		}
		if !emit(userKey, kv.V) {
			return res
		}
	}
	res.ReachedUpperBound = true
	return res
}

// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merger

import "github.com/sortedmerge/merger/internal/base"

// KV exports the base.KV type.
type KV = base.KV

// InternalIterator exports the base.InternalIterator type.
type InternalIterator = base.InternalIterator

// ForwardScanner exports the base.ForwardScanner type.
type ForwardScanner = base.ForwardScanner

// KeyFilter exports the base.KeyFilter type.
type KeyFilter = base.KeyFilter

// ScanCallback exports the base.ScanCallback type.
type ScanCallback = base.ScanCallback

// ScanForwardResult exports the base.ScanForwardResult type.
type ScanForwardResult = base.ScanForwardResult

// SeqNum exports the base.SeqNum type.
type SeqNum = base.SeqNum

// InternalKeyKind exports the base.InternalKeyKind type.
type InternalKeyKind = base.InternalKeyKind

// These constants are part of the key encoding, and should not be changed.
const (
	InternalKeyKindDelete = base.InternalKeyKindDelete
	InternalKeyKindSet    = base.InternalKeyKindSet
	InternalKeyKindMerge  = base.InternalKeyKindMerge
)

// MakeInternalKey encodes an internal key from a specified user key,
// sequence number and kind.
func MakeInternalKey(userKey []byte, seqNum SeqNum, kind InternalKeyKind) []byte {
	return base.MakeInternalKey(userKey, seqNum, kind)
}

// InternalKeyComparer returns a Comparer ordering encoded internal keys by
// user key, newest version first.
func InternalKeyComparer(user *Comparer) *Comparer {
	return base.InternalKeyComparer(user)
}

// InternalUserKeyComparer returns a Comparer for scanning iterators over
// encoded internal keys.
func InternalUserKeyComparer(user *Comparer) *Comparer {
	return base.InternalUserKeyComparer(user)
}

// IsCorruptionError returns true if the given error indicates corrupt input.
func IsCorruptionError(err error) bool {
	return base.IsCorruptionError(err)
}

// ErrPinFailed is returned, possibly wrapped, by Pin when a child cannot pin
// its data.
var ErrPinFailed = base.ErrPinFailed

// NewEmptyIter returns an iterator with no entries.
func NewEmptyIter() InternalIterator {
	return base.NewEmptyIter()
}

// NewErrorIter returns an iterator with no entries whose Error method
// returns err.
func NewErrorIter(err error) InternalIterator {
	return base.NewErrorIter(err)
}

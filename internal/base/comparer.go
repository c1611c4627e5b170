// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Compare returns -1, 0, or +1 depending on whether a is 'less than', 'equal
// to' or 'greater than' b. Compare must define a strict total order over the
// keys produced by the iterators it is used with.
type Compare func(a, b []byte) int

// Equal returns true if a and b are equivalent.
//
// For a given Compare, Equal(a,b)=true iff Compare(a,b)=0; that is, Equal is a
// (potentially faster) specialization of Compare.
type Equal func(a, b []byte) bool

// FormatKey returns a formatter for the user key.
type FormatKey func(key []byte) fmt.Formatter

// DefaultFormatter is the default implementation of user key formatting:
// non-ASCII data is formatted as escaped hexadecimal values.
var DefaultFormatter FormatKey = func(key []byte) fmt.Formatter {
	return FormatBytes(key)
}

// Comparer defines a total ordering over the space of []byte keys: a 'less
// than' relationship.
type Comparer struct {
	Compare Compare
	Equal   Equal

	// ExtractUserKey maps a key produced by an iterator to the user key it
	// encodes. It is consulted by forward scans, which compare, filter and
	// emit user keys. A nil ExtractUserKey means iterator keys are user keys.
	ExtractUserKey func(key []byte) []byte

	// FormatKey is optional. If nil, DefaultFormatter is used.
	FormatKey FormatKey

	// Name is the name of the comparer.
	Name string
}

// UserKey returns the user key encoded by key.
func (c *Comparer) UserKey(key []byte) []byte {
	if c.ExtractUserKey == nil {
		return key
	}
	return c.ExtractUserKey(key)
}

// EnsureDefaults ensures that all non-optional fields are set.
//
// If there is an uninitialized field which can be given a default value, it
// returns a copy with that field set; otherwise the original is returned.
func (c *Comparer) EnsureDefaults() *Comparer {
	if c == nil {
		return DefaultComparer
	}
	if c.Compare == nil {
		panic("Comparer.Compare must be set")
	}
	if c.Equal != nil && c.FormatKey != nil {
		return c
	}
	n := &Comparer{}
	*n = *c
	if n.Equal == nil {
		cmp := n.Compare
		n.Equal = func(a, b []byte) bool {
			return cmp(a, b) == 0
		}
	}
	if n.FormatKey == nil {
		n.FormatKey = DefaultFormatter
	}
	return n
}

// DefaultComparer is the default implementation of the Comparer interface.
// It uses the natural ordering, consistent with bytes.Compare.
var DefaultComparer = &Comparer{
	Compare:   bytes.Compare,
	Equal:     bytes.Equal,
	FormatKey: DefaultFormatter,

	// This name is part of the C++ Level-DB implementation's default file
	// format, and should not be changed.
	Name: "leveldb.BytewiseComparator",
}

// InternalKeyComparer returns a Comparer that orders encoded internal keys
// (see MakeInternalKey): ascending by user key according to user, and
// descending by trailer for equal user keys, so that the newest version of a
// user key sorts first.
func InternalKeyComparer(user *Comparer) *Comparer {
	user = user.EnsureDefaults()
	ucmp := user.Compare
	icmp := func(a, b []byte) int {
		return InternalCompare(ucmp, DecodeInternalKey(a), DecodeInternalKey(b))
	}
	return &Comparer{
		Compare: icmp,
		Equal: func(a, b []byte) bool {
			return icmp(a, b) == 0
		},
		FormatKey: func(key []byte) fmt.Formatter {
			return DecodeInternalKey(key).Pretty(user.FormatKey)
		},
		Name: "internal:" + user.Name,
	}
}

// InternalUserKeyComparer returns a Comparer suitable for forward scans over
// iterators that produce encoded internal keys: it orders user keys with user
// and extracts them from internal keys.
func InternalUserKeyComparer(user *Comparer) *Comparer {
	n := &Comparer{}
	*n = *user.EnsureDefaults()
	n.ExtractUserKey = ExtractUserKey
	return n
}

// MinUserKey returns the smaller of two user keys. If one of the keys is nil,
// the other one is returned.
func MinUserKey(cmp Compare, a, b []byte) []byte {
	if a != nil && (b == nil || cmp(a, b) < 0) {
		return a
	}
	return b
}

// FormatBytes formats a byte slice using hexadecimal escapes for non-ASCII
// data.
type FormatBytes []byte

const lowerhex = "0123456789abcdef"

// Format implements the fmt.Formatter interface.
func (p FormatBytes) Format(s fmt.State, c rune) {
	buf := make([]byte, 0, len(p))
	for _, b := range p {
		if b < utf8.RuneSelf && strconv.IsPrint(rune(b)) {
			buf = append(buf, b)
			continue
		}
		buf = append(buf, `\x`...)
		buf = append(buf, lowerhex[b>>4])
		buf = append(buf, lowerhex[b&0xF])
	}
	s.Write(buf)
}

// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"testing"

	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func TestInternalKeyEncoding(t *testing.T) {
	enc := MakeInternalKey([]byte("foo"), 42, InternalKeyKindMerge)
	require.Len(t, enc, 3+InternalTrailerLen)

	k := DecodeInternalKey(enc)
	require.Equal(t, []byte("foo"), k.UserKey)
	require.Equal(t, SeqNum(42), k.SeqNum())
	require.Equal(t, InternalKeyKindMerge, k.Kind())
	require.Equal(t, "foo#42,MERGE", k.String())
	require.Equal(t, []byte("foo"), ExtractUserKey(enc))

	// Appending to the decoded user key must not clobber the trailer.
	_ = append(k.UserKey, 'x')
	require.Equal(t, SeqNum(42), DecodeInternalKey(enc).SeqNum())
}

func TestDecodeInternalKeyShort(t *testing.T) {
	k := DecodeInternalKey([]byte("abc"))
	require.Nil(t, k.UserKey)
	require.Equal(t, InternalKeyKindInvalid, k.Kind())
}

func TestParseInternalKey(t *testing.T) {
	require.Equal(t, MakeInternalKey([]byte("a"), 5, InternalKeyKindDelete), ParseInternalKey("a#5,DEL"))
	require.Panics(t, func() { ParseInternalKey("a") })
	require.Panics(t, func() { ParseInternalKey("a#x,SET") })
	require.Panics(t, func() { ParseInternalKey("a#1,FOO") })
}

func TestInternalCompare(t *testing.T) {
	cmp := DefaultComparer.Compare
	a1 := DecodeInternalKey(ParseInternalKey("a#1,SET"))
	a2 := DecodeInternalKey(ParseInternalKey("a#2,SET"))
	b1 := DecodeInternalKey(ParseInternalKey("b#1,SET"))
	require.Equal(t, 1, InternalCompare(cmp, a1, a2))
	require.Equal(t, -1, InternalCompare(cmp, a2, a1))
	require.Equal(t, -1, InternalCompare(cmp, a2, b1))
	require.Equal(t, 0, InternalCompare(cmp, a1, a1))
}

func TestSeqNumFormat(t *testing.T) {
	require.Equal(t, "inf", SeqNumMax.String())
	require.Equal(t, "12", redact.Sprint(SeqNum(12)).StripMarkers())
	require.Equal(t, "UNKNOWN:9", InternalKeyKind(9).String())
}

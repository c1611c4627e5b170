// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sortedmerge/merger/internal/base"
	"github.com/sortedmerge/merger/internal/itertest"
	"github.com/stretchr/testify/require"
)

func TestKVString(t *testing.T) {
	var kv *base.KV
	require.False(t, kv.Valid())
	require.Equal(t, ".", kv.String())
	kv = &base.KV{K: []byte("a\x00"), V: []byte("v")}
	require.True(t, kv.Valid())
	require.Equal(t, `a\x00:v`, kv.String())
}

// scanRecorder is a key-only iterator that records whether its own scan was
// used.
type scanRecorder struct {
	*itertest.FakeIter
	scanned bool
}

func (s *scanRecorder) ScanForward(
	ucmp *base.Comparer, upper []byte, filter base.KeyFilter, emit base.ScanCallback,
) base.ScanForwardResult {
	s.scanned = true
	return base.ScanForwardByNext(s.FakeIter, ucmp, upper, filter, emit)
}

func TestScanForward(t *testing.T) {
	collect := func(iter base.InternalIterator, upper string, skip string, stopAfter int) (string, base.ScanForwardResult) {
		var buf bytes.Buffer
		var filter base.KeyFilter
		if skip != "" {
			filter = func(userKey []byte) bool { return bytes.HasPrefix(userKey, []byte(skip)) }
		}
		var n int
		res := base.ScanForward(iter, base.DefaultComparer, []byte(upper), filter, func(k, v []byte) bool {
			fmt.Fprintf(&buf, "%s:%s ", k, v)
			n++
			return stopAfter == 0 || n < stopAfter
		})
		return buf.String(), res
	}

	t.Run("by-next", func(t *testing.T) {
		iter := itertest.ParseFakeIter("a:1 b:2 bb:3 c:4 d:5")
		iter.SeekToFirst()
		out, res := collect(iter, "d", "b", 0)
		require.Equal(t, "a:1 c:4 ", out)
		require.Equal(t, base.ScanForwardResult{Visited: 4, ReachedUpperBound: true}, res)
		require.Equal(t, "d:5", iter.Entry().String())

		// Continue to exhaustion.
		out, res = collect(iter, "", "", 0)
		require.Equal(t, "d:5 ", out)
		require.Equal(t, base.ScanForwardResult{Visited: 1, ReachedUpperBound: true}, res)
		require.False(t, iter.Valid())
	})

	t.Run("early-stop", func(t *testing.T) {
		iter := itertest.ParseFakeIter("a:1 b:2 c:3")
		iter.SeekToFirst()
		out, res := collect(iter, "", "", 2)
		require.Equal(t, "a:1 b:2 ", out)
		require.Equal(t, base.ScanForwardResult{Visited: 2}, res)
		// The iterator stays on the entry that stopped the scan.
		require.Equal(t, "b:2", iter.Entry().String())
	})

	t.Run("dispatch", func(t *testing.T) {
		iter := &scanRecorder{FakeIter: itertest.ParseFakeIter("a:1")}
		iter.SeekToFirst()
		out, _ := collect(iter, "", "", 0)
		require.Equal(t, "a:1 ", out)
		require.True(t, iter.scanned)
	})
}

func TestEmptyAndErrorIter(t *testing.T) {
	empty := base.NewEmptyIter()
	require.Nil(t, empty.SeekToFirst())
	require.Nil(t, empty.SeekGE([]byte("a")))
	require.False(t, empty.Valid())
	require.NoError(t, empty.Error())
	require.NoError(t, empty.Close())

	errFoo := errors.New("foo")
	iter := base.NewErrorIter(errFoo)
	require.Nil(t, iter.SeekToLast())
	require.ErrorIs(t, iter.Error(), errFoo)
	require.NoError(t, iter.Pin())
	require.False(t, iter.IsKeyPinned())
	require.ErrorIs(t, iter.Close(), errFoo)
}

// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merger

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sortedmerge/merger/internal/base"
	"github.com/sortedmerge/merger/internal/itertest"
	"github.com/stretchr/testify/require"
)

func TestMergeIterBuilderEmpty(t *testing.T) {
	b := NewMergeIterBuilder(nil)
	it := b.Finish()
	require.Nil(t, it.SeekToFirst())
	require.False(t, it.Valid())
	require.NoError(t, it.Error())
	require.NoError(t, it.Close())
}

func TestMergeIterBuilderSingle(t *testing.T) {
	a := itertest.ParseFakeIter("a b")
	b := NewMergeIterBuilder(nil)
	require.NoError(t, b.Add(a))
	it := b.Finish()
	require.Same(t, a, it)
}

func TestMergeIterBuilderMerging(t *testing.T) {
	b := NewMergeIterBuilder(nil)
	require.NoError(t, b.Add(itertest.ParseFakeIter("b:1 d:1")))
	require.NoError(t, b.Add(itertest.ParseFakeIter("a:2 d:2")))
	require.NoError(t, b.Add(itertest.ParseFakeIter("c:3 d:3 e:3")))
	it := b.Finish()
	m, ok := it.(*MergingIter)
	require.True(t, ok)
	require.Equal(t, "merging(3)", m.String())

	var kvs []string
	for kv := it.SeekToFirst(); kv != nil; kv = it.Next() {
		kvs = append(kvs, kv.String())
	}
	// The first child added takes precedence for d.
	require.Equal(t, []string{"a:2", "b:1", "c:3", "d:1", "e:3"}, kvs)
	require.NoError(t, it.Close())
}

func TestMergeIterBuilderFinishTwice(t *testing.T) {
	b := NewMergeIterBuilder(nil)
	require.NoError(t, b.Add(itertest.ParseFakeIter("a")))
	b.Finish()
	require.Panics(t, func() { b.Finish() })
	require.Panics(t, func() { _ = b.Add(itertest.ParseFakeIter("b")) })
}

func TestMergeIterBuilderOptions(t *testing.T) {
	var stats IterStats
	b := NewMergeIterBuilder(&Options{Stats: &stats})
	require.NoError(t, b.Add(itertest.ParseFakeIter("a c")))
	require.NoError(t, b.Add(itertest.ParseFakeIter("b")))
	it := b.Finish()
	it.SeekGE([]byte("b"))
	require.Equal(t, uint64(1), stats.SeekGECount)
	require.NoError(t, it.Close())
}

func TestMergeIterBuilderAddPinFailure(t *testing.T) {
	b := NewMergeIterBuilder(nil)
	require.NoError(t, b.Add(itertest.ParseFakeIter("a")))
	require.NoError(t, b.Add(itertest.ParseFakeIter("b")))
	// Pin the merging iterator through a third child added afterwards: the
	// builder delegates to AddIterator, which pins new children.
	m := b.merge
	require.NoError(t, m.Pin())
	c := itertest.ParseFakeIter("c")
	c.PinErr = itertest.ErrInjected
	err := b.Add(c)
	require.True(t, errors.Is(err, base.ErrPinFailed))
	it := b.Finish()
	require.NoError(t, it.Unpin())
	require.NoError(t, it.Close())
	require.False(t, c.Closed())
}

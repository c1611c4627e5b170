// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package memtable

import (
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/sortedmerge/merger/internal/base"
	"github.com/sortedmerge/merger/internal/itertest"
	"github.com/stretchr/testify/require"
)

func TestMemTableSetGet(t *testing.T) {
	m := New(nil)
	m.Set([]byte("b"), []byte("1"))
	m.Set([]byte("a"), []byte("2"))
	m.Set([]byte("b"), []byte("33"))
	require.Equal(t, 2, m.Len())
	require.Equal(t, 5, m.Size())

	v, ok := m.Get([]byte("b"))
	require.True(t, ok)
	require.Equal(t, "33", string(v))
	_, ok = m.Get([]byte("c"))
	require.False(t, ok)
}

func TestMemTableCopiesInput(t *testing.T) {
	m := New(nil)
	k, v := []byte("k"), []byte("v")
	m.Set(k, v)
	k[0], v[0] = 'x', 'x'
	got, ok := m.Get([]byte("k"))
	require.True(t, ok)
	require.Equal(t, "v", string(got))
}

func TestMemTableInternalKeys(t *testing.T) {
	m := New(base.InternalKeyComparer(nil))
	for _, s := range []string{"b#1,SET", "a#1,SET", "b#5,DEL", "a#7,MERGE"} {
		m.Set(base.ParseInternalKey(s), nil)
	}
	var got []string
	it := m.NewIter()
	for kv := it.SeekToFirst(); kv != nil; kv = it.Next() {
		got = append(got, base.DecodeInternalKey(kv.K).String())
	}
	require.Equal(t, []string{"a#7,MERGE", "a#1,SET", "b#5,DEL", "b#1,SET"}, got)
	require.NoError(t, it.Close())
}

func TestMemTableIter(t *testing.T) {
	var m *MemTable
	datadriven.RunTest(t, "testdata/iter", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "define":
			m = New(nil)
			for _, f := range strings.Fields(d.Input) {
				k, v, _ := strings.Cut(f, ":")
				m.Set([]byte(k), []byte(v))
			}
			return ""
		case "iter":
			it := m.NewIter()
			defer it.Close()
			return itertest.RunIterCmd(t, d, it)
		default:
			return "unknown command: " + d.Cmd
		}
	})
}

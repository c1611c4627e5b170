// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arena

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestArenaAlloc(t *testing.T) {
	a := New(16)
	require.Equal(t, uint32(16), a.Capacity())

	b, err := a.Alloc(10)
	require.NoError(t, err)
	require.Len(t, b, 10)
	require.Equal(t, 10, cap(b))
	require.Equal(t, uint32(10), a.Size())

	_, err = a.Alloc(7)
	require.True(t, errors.Is(err, ErrArenaFull))

	c, err := a.Copy([]byte("abcdef"))
	require.NoError(t, err)
	require.Equal(t, []byte("abcdef"), c)
	require.Equal(t, uint32(16), a.Size())
}

// TestArenaSizeOverflow tests that large allocations do not cause Arena's
// internal size accounting to overflow and produce incorrect results.
func TestArenaSizeOverflow(t *testing.T) {
	a := New(math.MaxUint16)
	_, err := a.Alloc(math.MaxUint32)
	require.True(t, errors.Is(err, ErrArenaFull))
	require.Equal(t, uint32(0), a.Size())

	_, err = a.Alloc(math.MaxUint16)
	require.NoError(t, err)
	_, err = a.Alloc(math.MaxUint32)
	require.True(t, errors.Is(err, ErrArenaFull))
	require.Equal(t, uint32(math.MaxUint16), a.Size())
}

type closeRecorder struct {
	name  string
	order *[]string
	err   error
}

func (c *closeRecorder) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

func TestArenaReset(t *testing.T) {
	a := New(8)
	var order []string
	errFirst := errors.New("first")
	a.Defer(&closeRecorder{name: "a", order: &order, err: errors.New("second")})
	a.Defer(&closeRecorder{name: "b", order: &order})
	a.Defer(&closeRecorder{name: "c", order: &order, err: errFirst})
	require.Equal(t, 3, a.Deferred())

	_, err := a.Alloc(8)
	require.NoError(t, err)

	err = a.Reset()
	require.Equal(t, errFirst, err)
	require.Equal(t, []string{"c", "b", "a"}, order)
	require.Equal(t, 0, a.Deferred())
	require.Equal(t, uint32(0), a.Size())

	b, err := a.Alloc(8)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 8), b)
	require.NoError(t, a.Reset())
}

// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merger

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestBinaryHeap(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	t.Logf("Using seed %d", seed)
	rng := rand.New(rand.NewSource(seed))

	// The heap holds indices into vals; duplicates among vals are ordered by
	// index, as levels are.
	vals := make([]int, 2+rng.Intn(30))
	for i := range vals {
		vals[i] = rng.Intn(10)
	}
	var cmps uint64
	h := binaryHeap[int]{
		less: func(a, b int) bool {
			if vals[a] != vals[b] {
				return vals[a] < vals[b]
			}
			return a < b
		},
		cmpCount: &cmps,
	}
	inHeap := map[int]bool{}
	sorted := func() []int {
		var s []int
		for i := range inHeap {
			s = append(s, i)
		}
		slices.SortFunc(s, func(a, b int) int {
			if a == b {
				return 0
			}
			if h.less(a, b) {
				return -1
			}
			return 1
		})
		return s
	}
	checkHeap := func() {
		require.Equal(t, len(inHeap), h.len())
		if h.len() == 0 {
			return
		}
		s := sorted()
		require.Equal(t, s[0], h.top())
		if h.len() > 1 {
			require.Equal(t, s[1], h.secondTop())
		}
	}

	for i := range vals {
		if rng.Intn(2) == 0 {
			h.items = append(h.items, i)
			inHeap[i] = true
		}
	}
	h.init()
	checkHeap()

	for op := 0; op < 1000; op++ {
		switch rng.Intn(3) {
		case 0:
			// Push an index that is not in the heap.
			var out []int
			for i := range vals {
				if !inHeap[i] {
					out = append(out, i)
				}
			}
			if len(out) == 0 {
				continue
			}
			i := out[rng.Intn(len(out))]
			h.push(i)
			inHeap[i] = true
		case 1:
			if h.len() == 0 {
				continue
			}
			want := sorted()[0]
			require.Equal(t, want, h.pop())
			delete(inHeap, want)
		case 2:
			// Change the value of the top and re-sift it.
			if h.len() == 0 {
				continue
			}
			vals[h.top()] = rng.Intn(10)
			h.replaceTop(h.top())
		}
		checkHeap()
	}
	require.NotZero(t, cmps)

	h.clear()
	inHeap = map[int]bool{}
	checkHeap()
}

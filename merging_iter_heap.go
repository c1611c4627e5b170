// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merger

// binaryHeap is a binary heap of items ordered by less. The heap never
// inspects its items: all ordering decisions are delegated to less, so a heap
// of level indices can be reordered by whatever the levels currently point
// at.
type binaryHeap[T any] struct {
	less  func(a, b T) bool
	items []T
	// cmpCount, if non-nil, is incremented for every call to less.
	cmpCount *uint64
}

// len returns the number of elements in the heap.
func (h *binaryHeap[T]) len() int {
	return len(h.items)
}

// clear empties the heap.
func (h *binaryHeap[T]) clear() {
	h.items = h.items[:0]
}

// top returns the smallest element. REQUIRES: len() > 0.
func (h *binaryHeap[T]) top() T {
	return h.items[0]
}

// secondTop returns the second smallest element, which is always one of the
// children of the root. REQUIRES: len() > 1.
func (h *binaryHeap[T]) secondTop() T {
	if len(h.items) == 2 || h.lessAt(1, 2) {
		return h.items[1]
	}
	return h.items[2]
}

// push adds x to the heap.
func (h *binaryHeap[T]) push(x T) {
	h.items = append(h.items, x)
	h.up(len(h.items) - 1)
}

// pop removes and returns the top of the heap. REQUIRES: len() > 0.
func (h *binaryHeap[T]) pop() T {
	n := len(h.items) - 1
	h.swap(0, n)
	h.down(0, n)
	x := h.items[n]
	h.items = h.items[:n]
	return x
}

// replaceTop replaces the top of the heap with x and restores the heap
// property. Replacing the top with itself re-sifts an element whose ordering
// has changed.
func (h *binaryHeap[T]) replaceTop(x T) {
	h.items[0] = x
	h.down(0, len(h.items))
}

// init establishes the heap property over the current items.
func (h *binaryHeap[T]) init() {
	n := len(h.items)
	for i := n/2 - 1; i >= 0; i-- {
		h.down(i, n)
	}
}

func (h *binaryHeap[T]) lessAt(i, j int) bool {
	if h.cmpCount != nil {
		*h.cmpCount++
	}
	return h.less(h.items[i], h.items[j])
}

func (h *binaryHeap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *binaryHeap[T]) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.lessAt(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

// down moves i down the heap, which has length n, until the heap property is
// restored.
func (h *binaryHeap[T]) down(i, n int) {
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.lessAt(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !h.lessAt(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
}

// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merger

import (
	"github.com/cockroachdb/errors"
	"github.com/sortedmerge/merger/internal/base"
)

type builderState int8

const (
	builderEmpty builderState = iota
	builderSingle
	builderMerging
	builderFinished
)

// MergeIterBuilder assembles an iterator over a number of children that are
// not known upfront. No merging iterator is created unless at least two
// children are added.
type MergeIterBuilder struct {
	opts  *Options
	state builderState
	first base.InternalIterator
	merge *MergingIter
}

// NewMergeIterBuilder returns an empty builder. The options are used if a
// merging iterator is created.
func NewMergeIterBuilder(opts *Options) *MergeIterBuilder {
	return &MergeIterBuilder{opts: opts}
}

// Add adds a child with lower priority than every child added so far. It
// returns an error only if the merging iterator is pinned and the child
// cannot be pinned, in which case the child remains owned by the caller.
func (b *MergeIterBuilder) Add(iter base.InternalIterator) error {
	switch b.state {
	case builderEmpty:
		b.first = iter
		b.state = builderSingle
	case builderSingle:
		b.merge = NewMergingIter(b.opts, b.first, iter)
		b.first = nil
		b.state = builderMerging
	case builderMerging:
		return b.merge.AddIterator(iter)
	default:
		panic(errors.AssertionFailedf("merger: Add called on a finished MergeIterBuilder"))
	}
	return nil
}

// Finish returns the assembled iterator: an empty iterator if no child was
// added, the child itself if exactly one was, and a merging iterator
// otherwise. Finish may only be called once.
func (b *MergeIterBuilder) Finish() base.InternalIterator {
	var iter base.InternalIterator
	switch b.state {
	case builderEmpty:
		iter = base.NewEmptyIter()
	case builderSingle:
		iter = b.first
	case builderMerging:
		iter = b.merge
	default:
		panic(errors.AssertionFailedf("merger: Finish called twice on a MergeIterBuilder"))
	}
	b.state = builderFinished
	b.first, b.merge = nil, nil
	return iter
}

// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merger

import (
	"github.com/sortedmerge/merger/internal/arena"
	"github.com/sortedmerge/merger/internal/base"
)

// Options holds the optional parameters for constructing a merging iterator.
// The zero value and nil are both valid.
type Options struct {
	// Comparer defines the order of the keys produced by the children. Every
	// child must be ordered by it. The default is DefaultComparer.
	Comparer *Comparer

	// Logger receives errors that cannot be returned to the caller, such as
	// a failure to release pinned data while rolling back a failed Pin. The
	// default logger uses the Go standard library log package.
	Logger Logger

	// Stats, if set, accumulates iterator statistics. If nil, the iterator
	// keeps private statistics, available through MergingIter.Stats.
	Stats *IterStats

	// Metrics, if set, receives the iterator's counters.
	Metrics *Metrics

	// Arena, if set, owns the children's lifetime: closing the merging
	// iterator does not close the children, which are expected to have been
	// registered with the arena and are closed by Arena.Reset.
	Arena *Arena
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified. Returns the new options.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	n := *o
	n.Comparer = n.Comparer.EnsureDefaults()
	if n.Logger == nil {
		n.Logger = DefaultLogger
	}
	return &n
}

// Comparer exports the base.Comparer type.
type Comparer = base.Comparer

// DefaultComparer exports the base.DefaultComparer variable.
var DefaultComparer = base.DefaultComparer

// Logger exports the base.Logger type.
type Logger = base.Logger

// DefaultLogger exports the base.DefaultLogger variable.
var DefaultLogger = base.DefaultLogger

// Arena exports the arena.Arena type.
type Arena = arena.Arena

// NewArena exports the arena.New function.
func NewArena(capacity uint32) *Arena {
	return arena.New(capacity)
}

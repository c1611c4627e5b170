// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/sortedmerge/merger"
	"github.com/sortedmerge/merger/internal/arena"
	"github.com/sortedmerge/merger/internal/base"
	"github.com/sortedmerge/merger/internal/memtable"
	"github.com/sortedmerge/merger/internal/sortedrun"
	"golang.org/x/sync/errgroup"
)

// openInput opens path, decompressing it according to its extension.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".sz":
		return struct {
			io.Reader
			io.Closer
		}{snappy.NewReader(f), f}, nil
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "%s", path)
		}
		return struct {
			io.Reader
			io.Closer
		}{dec, closerFunc(func() error {
			dec.Close()
			return f.Close()
		})}, nil
	default:
		return f, nil
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// parseInput calls add for every entry of r.
func parseInput(path string, r io.Reader, add func(key, value []byte) error) error {
	s := bufio.NewScanner(r)
	s.Buffer(nil, 1<<20)
	for lineNum := 1; s.Scan(); lineNum++ {
		line := s.Bytes()
		if len(line) == 0 {
			continue
		}
		key, value, ok := bytes.Cut(line, []byte{'\t'})
		if !ok {
			return base.CorruptionErrorf("%s:%d: missing tab separator", path, lineNum)
		}
		if err := add(key, value); err != nil {
			return errors.Wrapf(err, "%s:%d", path, lineNum)
		}
	}
	return errors.Wrapf(s.Err(), "%s", path)
}

func loadRun(path string, b *sortedrun.Builder) (*sortedrun.Run, error) {
	r, err := openInput(path)
	if err != nil {
		return nil, err
	}
	err = parseInput(path, r, b.Add)
	err = errors.CombineErrors(err, r.Close())
	if err != nil {
		return nil, err
	}
	return b.Finish()
}

// loadMemTable loads an input file whose lines need not be sorted. A key
// listed several times keeps its last value.
func loadMemTable(path string) (*memtable.MemTable, error) {
	r, err := openInput(path)
	if err != nil {
		return nil, err
	}
	mem := memtable.New(base.DefaultComparer)
	err = parseInput(path, r, func(key, value []byte) error {
		mem.Set(key, value)
		return nil
	})
	err = errors.CombineErrors(err, r.Close())
	if err != nil {
		return nil, err
	}
	return mem, nil
}

// loadRuns loads every input file into a sorted run. Without an arena the
// files are loaded concurrently.
func loadRuns(paths []string, a *arena.Arena) ([]*sortedrun.Run, error) {
	runs := make([]*sortedrun.Run, len(paths))
	if a != nil {
		// An arena is not safe for concurrent use.
		for i, path := range paths {
			r, err := loadRun(path, sortedrun.NewBuilderInArena(base.DefaultComparer, a))
			if err != nil {
				return nil, err
			}
			runs[i] = r
		}
		return runs, nil
	}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			r, err := loadRun(path, sortedrun.NewBuilder(base.DefaultComparer))
			runs[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

// source is a set of loaded input files.
type source struct {
	// mem, if set, is the newest source and takes priority over the runs.
	mem   *memtable.MemTable
	runs  []*sortedrun.Run
	arena *arena.Arena
	stats merger.IterStats
}

func openSource(paths []string) (*source, error) {
	s := &source{}
	if arenaSize > 0 {
		s.arena = arena.New(arenaSize)
	}
	if memtablePath != "" {
		mem, err := loadMemTable(memtablePath)
		if err != nil {
			return nil, err
		}
		s.mem = mem
	}
	runs, err := loadRuns(paths, s.arena)
	if err != nil {
		return nil, err
	}
	s.runs = runs
	return s, nil
}

// newIter returns an iterator over the merged runs, in file order. The
// iterator must be closed before the source.
func (s *source) newIter() base.InternalIterator {
	if s.arena != nil {
		// Children in the arena are closed by Reset, so the merging iterator is
		// created even for a single run to keep the caller's Close from reaching
		// them. A memtable iterator holds nothing worth releasing and is left
		// to the garbage collector.
		var iters []base.InternalIterator
		if s.mem != nil {
			iters = append(iters, s.mem.NewIter())
		}
		for _, r := range s.runs {
			iters = append(iters, r.NewIterInArena(s.arena))
		}
		return merger.NewMergingIter(&merger.Options{Arena: s.arena, Stats: &s.stats}, iters...)
	}
	var iters []base.InternalIterator
	if s.mem != nil {
		iters = append(iters, s.mem.NewIter())
	}
	for _, r := range s.runs {
		iters = append(iters, r.NewIter())
	}
	b := merger.NewMergeIterBuilder(&merger.Options{Stats: &s.stats})
	for _, it := range iters {
		// The merging iterator is never pinned here, so Add cannot fail.
		if err := b.Add(it); err != nil {
			panic(err)
		}
	}
	return b.Finish()
}

// close releases the source. Iterators created by newIter must have been
// closed.
func (s *source) close() error {
	if s.arena != nil {
		return s.arena.Reset()
	}
	return nil
}

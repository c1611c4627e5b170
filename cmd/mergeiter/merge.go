// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/sortedmerge/merger/internal/base"
	"github.com/spf13/cobra"
)

var (
	mergeReverse bool
	mergeSeek    string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <file>...",
	Short: "print the merged entries of the input files",
	Long: `
Print the merged contents of the input files, one "key<TAB>value" entry per
line. A key present in several files is printed once, with the value from the
first file listing it.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

// withIter loads the input files and calls fn with an iterator over their
// merged contents.
func withIter(paths []string, fn func(s *source, iter base.InternalIterator) error) error {
	s, err := openSource(paths)
	if err != nil {
		return err
	}
	iter := s.newIter()
	err = fn(s, iter)
	err = errors.CombineErrors(err, iter.Close())
	return errors.CombineErrors(err, s.close())
}

func writeKV(w io.Writer, kv *base.KV) {
	fmt.Fprintf(w, "%s\t%s\n", kv.K, kv.V)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if mergeReverse && mergeSeek != "" {
		return errors.New("--reverse and --seek are mutually exclusive")
	}
	return withIter(args, func(_ *source, iter base.InternalIterator) error {
		w := bufio.NewWriter(cmd.OutOrStdout())
		var kv *base.KV
		switch {
		case mergeReverse:
			for kv = iter.SeekToLast(); kv != nil; kv = iter.Prev() {
				writeKV(w, kv)
			}
		case mergeSeek != "":
			for kv = iter.SeekGE([]byte(mergeSeek)); kv != nil; kv = iter.Next() {
				writeKV(w, kv)
			}
		default:
			for kv = iter.SeekToFirst(); kv != nil; kv = iter.Next() {
				writeKV(w, kv)
			}
		}
		return errors.CombineErrors(iter.Error(), w.Flush())
	})
}

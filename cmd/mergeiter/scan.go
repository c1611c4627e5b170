// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/sortedmerge/merger/internal/base"
	"github.com/spf13/cobra"
)

var (
	scanUpper      string
	scanSkipPrefix string
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>...",
	Short: "forward scan the merged entries of the input files",
	Long: `
Forward scan the merged contents of the input files from the first key up to
an optional upper bound, optionally skipping keys with a given prefix. The
scan statistics are printed after the entries.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	return withIter(args, func(s *source, iter base.InternalIterator) error {
		w := bufio.NewWriter(cmd.OutOrStdout())
		var filter base.KeyFilter
		if scanSkipPrefix != "" {
			prefix := []byte(scanSkipPrefix)
			filter = func(userKey []byte) bool { return bytes.HasPrefix(userKey, prefix) }
		}
		var emitted int
		var res base.ScanForwardResult
		if iter.SeekToFirst() != nil {
			res = base.ScanForward(iter, base.DefaultComparer, []byte(scanUpper), filter,
				func(userKey, value []byte) bool {
					emitted++
					fmt.Fprintf(w, "%s\t%s\n", userKey, value)
					return true
				})
		}
		if err := iter.Error(); err != nil {
			return err
		}
		fmt.Fprintf(w, "visited %d, emitted %d\n", res.Visited, emitted)
		fmt.Fprintf(w, "%s\n", s.stats.String())
		return w.Flush()
	})
}

// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/olekukonko/tablewriter"
	"github.com/sortedmerge/merger/internal/base"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

var (
	benchOps  = 100000
	benchSeed = uint64(1)
)

var benchCmd = &cobra.Command{
	Use:   "bench <file>...",
	Short: "measure the latency of merging iterator operations",
	Long: `
Measure the latency of Next, Prev and SeekGE on an iterator over the merged
contents of the input files. SeekGE targets are keys drawn at random from the
inputs.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBench,
}

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(1, int64(time.Second), 3)
}

type benchOp struct {
	name string
	hist *hdrhistogram.Histogram
}

func runBench(cmd *cobra.Command, args []string) error {
	return withIter(args, func(s *source, iter base.InternalIterator) error {
		var keys [][]byte
		for _, r := range s.runs {
			it := r.NewIter()
			for kv := it.SeekToFirst(); kv != nil; kv = it.Next() {
				keys = append(keys, append([]byte(nil), kv.K...))
			}
			if err := it.Close(); err != nil {
				return err
			}
		}
		if len(keys) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no entries")
			return nil
		}
		rng := rand.New(rand.NewSource(benchSeed))

		ops := []benchOp{
			{name: "next", hist: newHistogram()},
			{name: "prev", hist: newHistogram()},
			{name: "seek-ge", hist: newHistogram()},
		}
		record := func(op *benchOp, start time.Time) {
			_ = op.hist.RecordValue(time.Since(start).Nanoseconds())
		}

		iter.SeekToFirst()
		for i := 0; i < benchOps; i++ {
			start := time.Now()
			if iter.Next() == nil {
				iter.SeekToFirst()
			}
			record(&ops[0], start)
		}
		iter.SeekToLast()
		for i := 0; i < benchOps; i++ {
			start := time.Now()
			if iter.Prev() == nil {
				iter.SeekToLast()
			}
			record(&ops[1], start)
		}
		for i := 0; i < benchOps; i++ {
			key := keys[rng.Intn(len(keys))]
			start := time.Now()
			iter.SeekGE(key)
			record(&ops[2], start)
		}
		if err := iter.Error(); err != nil {
			return err
		}

		tbl := tablewriter.NewWriter(cmd.OutOrStdout())
		tbl.SetHeader([]string{"op", "count", "p50(ns)", "p95(ns)", "p99(ns)", "max(ns)", "mean(ns)"})
		for _, op := range ops {
			h := op.hist
			tbl.Append([]string{
				op.name,
				fmt.Sprintf("%d", h.TotalCount()),
				fmt.Sprintf("%d", h.ValueAtQuantile(50)),
				fmt.Sprintf("%d", h.ValueAtQuantile(95)),
				fmt.Sprintf("%d", h.ValueAtQuantile(99)),
				fmt.Sprintf("%d", h.Max()),
				fmt.Sprintf("%.1f", h.Mean()),
			})
		}
		tbl.Render()
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", s.stats.String())
		return nil
	})
}

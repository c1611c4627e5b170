// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/sortedmerge/merger/internal/base"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>...",
	Short: "check that every way of walking the merged input agrees",
	Long: `
Walk the merged contents of the input files forward with Next, backward with
Prev and forward with ScanForward, and check that the three walks produce the
same entries. The command fails if the digests of the walks differ.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func digestKV(d *xxhash.Digest, key, value []byte) {
	// Length-prefix each entry so that adjacent entries cannot alias.
	var buf [2 * binary.MaxVarintLen64]byte
	lens := binary.AppendUvarint(buf[:0], uint64(len(key)))
	lens = binary.AppendUvarint(lens, uint64(len(value)))
	_, _ = d.Write(lens)
	_, _ = d.Write(key)
	_, _ = d.Write(value)
}

func runVerify(cmd *cobra.Command, args []string) error {
	var forward, reverse, scan uint64
	var count int
	err := withIter(args, func(s *source, iter base.InternalIterator) error {
		d := xxhash.New()
		for kv := iter.SeekToFirst(); kv != nil; kv = iter.Next() {
			digestKV(d, kv.K, kv.V)
			count++
		}
		if err := iter.Error(); err != nil {
			return err
		}
		forward = d.Sum64()

		// Walk backwards, collecting the entries so they can be digested in
		// forward order.
		var entries []base.KV
		for kv := iter.SeekToLast(); kv != nil; kv = iter.Prev() {
			entries = append(entries, base.KV{
				K: append([]byte(nil), kv.K...),
				V: append([]byte(nil), kv.V...),
			})
		}
		if err := iter.Error(); err != nil {
			return err
		}
		d.Reset()
		for i := len(entries) - 1; i >= 0; i-- {
			digestKV(d, entries[i].K, entries[i].V)
		}
		reverse = d.Sum64()

		d.Reset()
		if iter.SeekToFirst() != nil {
			base.ScanForward(iter, base.DefaultComparer, nil, nil, func(userKey, value []byte) bool {
				digestKV(d, userKey, value)
				return true
			})
		}
		scan = d.Sum64()
		return iter.Error()
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "entries: %d\nforward: %016x\nreverse: %016x\nscan:    %016x\n",
		count, forward, reverse, scan)
	if forward != reverse || forward != scan {
		return errors.Newf("digest mismatch")
	}
	return nil
}

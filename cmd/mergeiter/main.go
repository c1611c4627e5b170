// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command mergeiter merges sorted text files through a merging iterator.
//
// Every input file holds one "key<TAB>value" entry per line, in strictly
// increasing key order. Files ending in .sz are snappy framed and files
// ending in .zst are zstd compressed. When several files hold the same key,
// the value from the file listed first wins. A file given with --memtable may
// be unsorted and takes priority over all the others.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	arenaSize    uint32
	memtablePath string
)

var rootCmd = &cobra.Command{
	Use:   "mergeiter [command] (flags)",
	Short: "merging iterator tool",
	Long:  ``,
}

func init() {
	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		mergeCmd,
		scanCmd,
		verifyCmd,
		benchCmd,
	)
	rootCmd.PersistentFlags().Uint32Var(
		&arenaSize, "arena-size", 0,
		"load the inputs into an arena of this many bytes (0 loads them onto the heap concurrently)")
	rootCmd.PersistentFlags().StringVar(
		&memtablePath, "memtable", "",
		"load this unsorted file into a memtable that takes priority over every input file")

	mergeCmd.Flags().BoolVarP(
		&mergeReverse, "reverse", "r", false, "print the merged entries in reverse order")
	mergeCmd.Flags().StringVar(
		&mergeSeek, "seek", "", "start at the first key greater than or equal to this key")

	scanCmd.Flags().StringVar(
		&scanUpper, "upper", "", "exclusive upper bound of the scan (empty means unbounded)")
	scanCmd.Flags().StringVar(
		&scanSkipPrefix, "skip-prefix", "", "skip keys with this prefix")

	benchCmd.Flags().IntVarP(
		&benchOps, "ops", "n", benchOps, "number of operations of each kind")
	benchCmd.Flags().Uint64Var(
		&benchSeed, "seed", benchSeed, "random seed for the seek keys")
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

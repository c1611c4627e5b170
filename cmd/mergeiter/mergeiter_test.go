// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func writeInputs(t *testing.T) []string {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(plain, []byte("a\t1\nc\t1\n"), 0644))

	var buf bytes.Buffer
	sw := snappy.NewBufferedWriter(&buf)
	_, err := sw.Write([]byte("a\t2\nb\t2\n"))
	require.NoError(t, err)
	require.NoError(t, sw.Close())
	sz := filepath.Join(dir, "b.sz")
	require.NoError(t, os.WriteFile(sz, buf.Bytes(), 0644))

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zst := filepath.Join(dir, "c.zst")
	require.NoError(t, os.WriteFile(zst, enc.EncodeAll([]byte("c\t3\nd\t3\n"), nil), 0644))
	require.NoError(t, enc.Close())
	return []string{plain, sz, zst}
}

func runCmd(t *testing.T, args ...string) (string, error) {
	mergeReverse, mergeSeek = false, ""
	scanUpper, scanSkipPrefix = "", ""
	arenaSize = 0
	memtablePath = ""
	benchOps = 1000

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMerge(t *testing.T) {
	inputs := writeInputs(t)
	for _, arena := range []string{"0", "4096"} {
		t.Run("arena-size="+arena, func(t *testing.T) {
			out, err := runCmd(t, append([]string{"merge", "--arena-size", arena}, inputs...)...)
			require.NoError(t, err)
			require.Equal(t, "a\t1\nb\t2\nc\t1\nd\t3\n", out)

			out, err = runCmd(t, append([]string{"merge", "--arena-size", arena, "--reverse"}, inputs...)...)
			require.NoError(t, err)
			require.Equal(t, "d\t3\nc\t1\nb\t2\na\t1\n", out)

			out, err = runCmd(t, append([]string{"merge", "--arena-size", arena, "--seek", "bb"}, inputs...)...)
			require.NoError(t, err)
			require.Equal(t, "c\t1\nd\t3\n", out)
		})
	}
}

func TestMergeSingleInputInArena(t *testing.T) {
	inputs := writeInputs(t)
	out, err := runCmd(t, "merge", "--arena-size", "1024", inputs[0])
	require.NoError(t, err)
	require.Equal(t, "a\t1\nc\t1\n", out)
}

func TestMergeArenaFull(t *testing.T) {
	inputs := writeInputs(t)
	_, err := runCmd(t, append([]string{"merge", "--arena-size", "4"}, inputs...)...)
	require.Error(t, err)
	require.Contains(t, err.Error(), "arena is full")
}

func TestMergeOutOfOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("b\t1\na\t1\n"), 0644))
	_, err := runCmd(t, "merge", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "keys out of order")

	require.NoError(t, os.WriteFile(path, []byte("a\t1\nb\n"), 0644))
	_, err = runCmd(t, "merge", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad.txt:2: missing tab separator")
}

func TestScan(t *testing.T) {
	inputs := writeInputs(t)
	out, err := runCmd(t, append([]string{"scan", "--upper", "d", "--skip-prefix", "b"}, inputs...)...)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Equal(t, []string{"a\t1", "c\t1"}, lines[:2])
	require.True(t, strings.HasPrefix(lines[2], "visited "), lines[2])
	require.Contains(t, lines[2], "emitted 2")
}

func TestVerify(t *testing.T) {
	inputs := writeInputs(t)
	out, err := runCmd(t, append([]string{"verify"}, inputs...)...)
	require.NoError(t, err)
	require.Contains(t, out, "entries: 4\n")
}

func TestBench(t *testing.T) {
	inputs := writeInputs(t)
	out, err := runCmd(t, append([]string{"bench"}, inputs...)...)
	require.NoError(t, err)
	for _, op := range []string{"next", "prev", "seek-ge"} {
		require.Contains(t, out, op)
	}
	require.Contains(t, out, "seeks: 1000")
}

func TestMergeMemTable(t *testing.T) {
	inputs := writeInputs(t)
	mem := filepath.Join(t.TempDir(), "mem.txt")
	// Unsorted, with a key set twice.
	require.NoError(t, os.WriteFile(mem, []byte("d\tm1\nb\tm2\nd\tm3\n"), 0644))
	for _, arena := range []string{"0", "4096"} {
		t.Run("arena-size="+arena, func(t *testing.T) {
			args := append([]string{"merge", "--arena-size", arena, "--memtable", mem}, inputs...)
			out, err := runCmd(t, args...)
			require.NoError(t, err)
			require.Equal(t, "a\t1\nb\tm2\nc\t1\nd\tm3\n", out)

			args = append([]string{"verify", "--arena-size", arena, "--memtable", mem}, inputs...)
			out, err = runCmd(t, args...)
			require.NoError(t, err)
			require.Contains(t, out, "entries: 4\n")
		})
	}
}

// Copyright 2023 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package itertest provides facilities for testing internal iterators.
package itertest

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/crlib/crstrings"
	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/sortedmerge/merger/internal/base"
)

type iterCmdOpts struct {
	cmp          *base.Comparer
	formatKey    base.FormatKey
	parseKey     func(string) []byte
	showCommands bool
	stats        func() string
}

// An IterOpt configures the behavior of RunIterCmd.
type IterOpt func(*iterCmdOpts)

// ShowCommands configures RunIterCmd to show the command in each output line
// (so you don't have to visually match the line to the command).
func ShowCommands(opts *iterCmdOpts) {
	opts.showCommands = true
}

// WithComparer configures the comparer used by the scan command. It must
// order user keys. The default is base.DefaultComparer.
func WithComparer(cmp *base.Comparer) IterOpt {
	return func(opts *iterCmdOpts) { opts.cmp = cmp }
}

// WithKeyFormat configures the formatter used to print keys returned by
// positioning operations. The default is base.DefaultFormatter.
func WithKeyFormat(formatKey base.FormatKey) IterOpt {
	return func(opts *iterCmdOpts) { opts.formatKey = formatKey }
}

// WithKeyParser configures the parser for the key argument of seek-ge. The
// default uses the argument verbatim.
func WithKeyParser(parseKey func(string) []byte) IterOpt {
	return func(opts *iterCmdOpts) { opts.parseKey = parseKey }
}

// WithStats configures RunIterCmd to print the result of statsFn for the
// stats command.
func WithStats(statsFn func() string) IterOpt {
	return func(opts *iterCmdOpts) { opts.stats = statsFn }
}

func formatKV(w io.Writer, kv *base.KV, iter base.InternalIterator, formatKey base.FormatKey) {
	if kv != nil {
		fmt.Fprintf(w, "%s:%s", formatKey(kv.K), kv.V)
	} else if err := iter.Error(); err != nil {
		fmt.Fprintf(w, "err=%v", err)
	} else {
		fmt.Fprint(w, ".")
	}
}

// RunIterCmd evaluates a datadriven command controlling an internal
// iterator, returning a string with the results of the iterator operations.
//
// Every line of the input is one operation:
//
//	first | last | seek-ge <key> | next | prev | entry
//	pin | unpin | is-key-pinned | error | stats
//	scan [upper=<key>] [skip=<prefix>] [stop-after=<n>]
func RunIterCmd(
	t *testing.T, d *datadriven.TestData, iter base.InternalIterator, opts ...IterOpt,
) string {
	var buf bytes.Buffer
	RunIterCmdWriter(t, &buf, d.Input, iter, opts...)
	return buf.String()
}

// RunIterCmdWriter evaluates the operations in input against iter, writing
// the results of the operations to the provided Writer.
func RunIterCmdWriter(
	t *testing.T, w io.Writer, input string, iter base.InternalIterator, opts ...IterOpt,
) {
	o := iterCmdOpts{
		cmp:       base.DefaultComparer,
		formatKey: base.DefaultFormatter,
		parseKey:  func(s string) []byte { return []byte(s) },
	}
	for _, opt := range opts {
		opt(&o)
	}

	lines := crstrings.Lines(input)
	maxCmdLen := 1
	for _, line := range lines {
		maxCmdLen = max(maxCmdLen, len(line))
	}
	for _, line := range lines {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if o.showCommands {
			fmt.Fprintf(w, "%*s: ", min(maxCmdLen, 40), line)
		}
		var kv *base.KV
		switch parts[0] {
		case "first":
			kv = iter.SeekToFirst()
		case "last":
			kv = iter.SeekToLast()
		case "seek-ge":
			if len(parts) != 2 {
				fmt.Fprint(w, "seek-ge <key>\n")
				return
			}
			kv = iter.SeekGE(o.parseKey(parts[1]))
		case "next":
			kv = iter.Next()
		case "prev":
			kv = iter.Prev()
		case "entry":
			kv = iter.Entry()
		case "pin":
			fmt.Fprintln(w, resultString(iter.Pin()))
			continue
		case "unpin":
			fmt.Fprintln(w, resultString(iter.Unpin()))
			continue
		case "is-key-pinned":
			fmt.Fprintln(w, iter.IsKeyPinned())
			continue
		case "error":
			fmt.Fprintln(w, resultString(iter.Error()))
			continue
		case "stats":
			if o.stats != nil {
				fmt.Fprintln(w, o.stats())
			}
			continue
		case "scan":
			if err := runScan(w, parts[1:], iter, o.cmp); err != nil {
				fmt.Fprintf(w, "%s\n", err)
				return
			}
			continue
		default:
			fmt.Fprintf(w, "unknown op: %s\n", parts[0])
			return
		}
		formatKV(w, kv, iter, o.formatKey)
		fmt.Fprintln(w)
	}
}

func resultString(err error) string {
	if err != nil {
		return fmt.Sprintf("err=%v", err)
	}
	return "ok"
}

func runScan(w io.Writer, args []string, iter base.InternalIterator, cmp *base.Comparer) error {
	var upper, skip []byte
	stopAfter := -1
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return errors.Newf("scan: malformed argument %q", arg)
		}
		switch k {
		case "upper":
			upper = []byte(v)
		case "skip":
			skip = []byte(v)
		case "stop-after":
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrap(err, "scan")
			}
			stopAfter = n
		default:
			return errors.Newf("scan: unknown argument %q", k)
		}
	}
	var filter base.KeyFilter
	if skip != nil {
		filter = func(userKey []byte) bool { return bytes.HasPrefix(userKey, skip) }
	}
	var emitted []string
	emit := func(userKey, value []byte) bool {
		emitted = append(emitted, fmt.Sprintf("%s:%s", userKey, value))
		return stopAfter < 0 || len(emitted) < stopAfter
	}
	if !iter.Valid() {
		fmt.Fprintln(w, "scan: <invalid>")
		return nil
	}
	res := base.ScanForward(iter, cmp, upper, filter, emit)
	fmt.Fprint(w, "scan:")
	for _, e := range emitted {
		fmt.Fprintf(w, " %s", e)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "visited=%d reached-upper-bound=%t\n", res.Visited, res.ReachedUpperBound)
	return nil
}

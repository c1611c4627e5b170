// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "github.com/cockroachdb/errors"

// ErrCorruption is a marker to indicate that data in a source is corrupted.
var ErrCorruption = errors.New("merger: corruption")

// ErrPinFailed is a marker to indicate that an iterator could not pin the
// memory backing its entries.
var ErrPinFailed = errors.New("merger: pin failed")

// ErrNotPinned is returned by iterators asked to unpin memory they have not
// pinned.
var ErrNotPinned = errors.New("merger: not pinned")

// AssertionFailedf creates an assertion error. Callers are expected to panic
// with or return the resulting error.
var AssertionFailedf = errors.AssertionFailedf

// IsCorruptionError returns true if the given error indicates corruption.
func IsCorruptionError(err error) bool {
	return errors.Is(err, ErrCorruption)
}

// CorruptionErrorf formats according to a format specifier and returns
// the string as an error value that is marked as a corruption error.
func CorruptionErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrCorruption)
}

// PinErrorf formats according to a format specifier and returns the string as
// an error value that is marked as a pin failure.
func PinErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrPinFailed)
}

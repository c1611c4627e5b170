// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/redact"
)

// SeqNum is a sequence number defining precedence among identical keys. A
// key with a higher sequence number takes precedence over a key with an
// equal user key of a lower sequence number.
type SeqNum uint64

// SeqNumMax is the largest valid sequence number.
const SeqNumMax SeqNum = 1<<56 - 1

func (s SeqNum) String() string {
	if s == SeqNumMax {
		return "inf"
	}
	return strconv.FormatUint(uint64(s), 10)
}

// SafeFormat implements redact.SafeFormatter.
func (s SeqNum) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(s.String()))
}

// InternalKeyKind enumerates the kind of key.
type InternalKeyKind uint8

// These constants are part of the key encoding, and should not be changed.
const (
	InternalKeyKindDelete  InternalKeyKind = 0
	InternalKeyKindSet     InternalKeyKind = 1
	InternalKeyKindMerge   InternalKeyKind = 2
	InternalKeyKindInvalid InternalKeyKind = 0xff
)

var internalKeyKindNames = map[InternalKeyKind]string{
	InternalKeyKindDelete:  "DEL",
	InternalKeyKindSet:     "SET",
	InternalKeyKindMerge:   "MERGE",
	InternalKeyKindInvalid: "INVALID",
}

var kindsMap = map[string]InternalKeyKind{
	"DEL":   InternalKeyKindDelete,
	"SET":   InternalKeyKindSet,
	"MERGE": InternalKeyKindMerge,
}

func (k InternalKeyKind) String() string {
	if s, ok := internalKeyKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("UNKNOWN:%d", k)
}

// InternalKeyTrailer encodes a SeqNum and an InternalKeyKind.
type InternalKeyTrailer uint64

// MakeTrailer constructs an internal key trailer from the specified sequence
// number and kind.
func MakeTrailer(seqNum SeqNum, kind InternalKeyKind) InternalKeyTrailer {
	return (InternalKeyTrailer(seqNum) << 8) | InternalKeyTrailer(kind)
}

// SeqNum returns the sequence number component of the trailer.
func (t InternalKeyTrailer) SeqNum() SeqNum {
	return SeqNum(t >> 8)
}

// Kind returns the key kind component of the trailer.
func (t InternalKeyTrailer) Kind() InternalKeyKind {
	return InternalKeyKind(t & 0xff)
}

// InternalTrailerLen is the number of bytes used to encode an internal key
// trailer.
const InternalTrailerLen = 8

// InternalKey is a key used for the in-memory and on-disk partial DBs that
// make up a sorted source. It consists of the user key followed by an 8-byte
// trailer holding the sequence number and kind.
type InternalKey struct {
	UserKey []byte
	Trailer InternalKeyTrailer
}

// MakeInternalKey constructs an encoded internal key from a specified user
// key, sequence number and kind.
func MakeInternalKey(userKey []byte, seqNum SeqNum, kind InternalKeyKind) []byte {
	buf := make([]byte, len(userKey)+InternalTrailerLen)
	InternalKey{UserKey: userKey, Trailer: MakeTrailer(seqNum, kind)}.Encode(buf)
	return buf
}

// DecodeInternalKey decodes an encoded internal key. Keys too short to hold a
// trailer decode to a nil user key of kind InternalKeyKindInvalid.
func DecodeInternalKey(encodedKey []byte) InternalKey {
	n := len(encodedKey) - InternalTrailerLen
	var trailer InternalKeyTrailer
	if n >= 0 {
		trailer = InternalKeyTrailer(binary.LittleEndian.Uint64(encodedKey[n:]))
		encodedKey = encodedKey[:n:n]
	} else {
		trailer = InternalKeyTrailer(InternalKeyKindInvalid)
		encodedKey = nil
	}
	return InternalKey{
		UserKey: encodedKey,
		Trailer: trailer,
	}
}

// ExtractUserKey returns the user key portion of an encoded internal key.
func ExtractUserKey(encodedKey []byte) []byte {
	return DecodeInternalKey(encodedKey).UserKey
}

// InternalCompare compares two internal keys using the specified comparison
// function. For equal user keys, internal keys compare in descending sequence
// number order.
func InternalCompare(userCmp Compare, a, b InternalKey) int {
	if x := userCmp(a.UserKey, b.UserKey); x != 0 {
		return x
	}
	// Reverse order for trailer comparison.
	return cmp.Compare(b.Trailer, a.Trailer)
}

// Encode encodes the receiver into the buffer. The buffer must be large enough
// to hold the encoded data.
func (k InternalKey) Encode(buf []byte) {
	i := copy(buf, k.UserKey)
	binary.LittleEndian.PutUint64(buf[i:], uint64(k.Trailer))
}

// SeqNum returns the sequence number component of the key.
func (k InternalKey) SeqNum() SeqNum {
	return k.Trailer.SeqNum()
}

// Kind returns the kind component of the key.
func (k InternalKey) Kind() InternalKeyKind {
	return k.Trailer.Kind()
}

// String returns a string representation of the key.
func (k InternalKey) String() string {
	return fmt.Sprintf("%s#%s,%s", FormatBytes(k.UserKey), k.SeqNum(), k.Kind())
}

// Pretty returns a formatter for the key.
func (k InternalKey) Pretty(f FormatKey) fmt.Formatter {
	return prettyInternalKey{k, f}
}

type prettyInternalKey struct {
	InternalKey
	formatKey FormatKey
}

func (k prettyInternalKey) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%s#%s,%s", k.formatKey(k.UserKey), k.SeqNum(), k.Kind())
}

// ParseInternalKey parses the string representation of an internal key and
// returns its encoding. The format is `<user-key>#<seq-num>,<kind>`.
func ParseInternalKey(s string) []byte {
	sep1 := strings.Index(s, "#")
	sep2 := strings.Index(s, ",")
	if sep1 == -1 || sep2 == -1 || sep2 < sep1 {
		panic(fmt.Sprintf("invalid internal key %q", s))
	}
	seqNum, err := strconv.ParseUint(s[sep1+1:sep2], 10, 64)
	if err != nil {
		panic(fmt.Sprintf("error parsing %q as seqnum: %s", s[sep1+1:sep2], err))
	}
	kind, ok := kindsMap[s[sep2+1:]]
	if !ok {
		panic(fmt.Sprintf("unknown kind: %q", s[sep2+1:]))
	}
	return MakeInternalKey([]byte(s[:sep1]), SeqNum(seqNum), kind)
}

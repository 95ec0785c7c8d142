// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fgsave

import (
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// readBoundedChunk caps a single allocation so that a hostile, very large
// byte count never causes more than one readBoundedChunk-sized step to be
// allocated ahead of what has actually been read off the wire.
const readBoundedChunk = 32 * 1024

// readBounded reads exactly n bytes from r in bounded increments, never
// allocating more than readBoundedChunk bytes ahead of what has already
// been confirmed to exist on the stream. A length prefix from untrusted
// input must never be used to size a single allocation directly.
func readBounded(r io.Reader, n int64) ([]byte, error) {
	if n < 0 {
		n = 0
	}
	buf := make([]byte, 0, min64(n, readBoundedChunk))
	var read int64
	for read < n {
		step := n - read
		if step > readBoundedChunk {
			step = readBoundedChunk
		}
		chunk := make([]byte, step)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return nil, ioErr("string payload", err)
		}
		buf = append(buf, chunk...)
		read += step
	}
	return buf, nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// readString consumes a length-prefixed string: a signed 32-bit length
// prefix whose sign selects the encoding.
//
//   - L == 0: empty string, no further bytes.
//   - L > 0: L-1 bytes of UTF-8 payload, then one NUL terminator byte.
//   - L < 0: a UTF-16LE payload, -L bytes total (including a 2-byte NUL
//     terminator covered by the length).
//
// Both encodings decode losslessly for well-formed input and lossily
// substitute the Unicode replacement character for ill-formed input; this
// function never fails on content, only on a short read.
func readString(r io.Reader) (string, error) {
	length, err := readI32(r)
	if err != nil {
		return "", err
	}

	switch {
	case length == 0:
		return "", nil

	case length > 0:
		payloadLen := int64(length) - 1
		if payloadLen < 0 {
			payloadLen = 0
		}
		payload, err := readBounded(r, payloadLen)
		if err != nil {
			return "", err
		}
		// One NUL terminator byte always follows when length > 0.
		if _, err := readU8(r); err != nil {
			return "", err
		}
		return strings.ToValidUTF8(string(payload), string(utf8.RuneError)), nil

	default: // length < 0
		total := -int64(length)  // widen before negating: -length overflows int32 when length == math.MinInt32
		units := (total - 1) / 2 // total >= 1, so this is already non-negative
		payload, err := readBounded(r, units*2)
		if err != nil {
			return "", err
		}
		// Consume whatever remains of the field (the 2-byte NUL
		// terminator, usually) so the stream stays in sync for the
		// next field regardless of rounding.
		if remainder := total - units*2; remainder > 0 {
			if _, err := readBounded(r, remainder); err != nil {
				return "", err
			}
		}

		codeUnits := make([]uint16, units)
		for i := int64(0); i < units; i++ {
			codeUnits[i] = uint16(payload[i*2]) | uint16(payload[i*2+1])<<8
		}
		return string(utf16.Decode(codeUnits)), nil
	}
}

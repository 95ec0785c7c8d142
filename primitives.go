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
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// isEOF reports whether err is the kind of error io.ReadFull returns when
// the reader ran out of bytes, whether none were read (io.EOF) or only some
// were (io.ErrUnexpectedEOF).
func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// readN reads exactly n bytes from r, translating a short read into
// ErrUnexpectedEnd.
func readN(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ioErr("read", err)
	}
	return buf, nil
}

func readI8(r io.Reader) (int8, error) {
	b, err := readN(r, 1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func readU8(r io.Reader) (uint8, error) {
	b, err := readN(r, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func readI32(r io.Reader) (int32, error) {
	b, err := readN(r, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func readU32(r io.Reader) (uint32, error) {
	b, err := readN(r, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func readI64(r io.Reader) (int64, error) {
	b, err := readN(r, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func readF32(r io.Reader) (float32, error) {
	b, err := readN(r, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// readU16s reads n little-endian 16-bit code units from r.
func readU16s(r io.Reader, n int) ([]uint16, error) {
	if n == 0 {
		return nil, nil
	}
	b, err := readN(r, n*2)
	if err != nil {
		return nil, err
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2 : i*2+2])
	}
	return units, nil
}

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
	"fmt"
	"io"
	"log"

	"github.com/klauspost/compress/zlib"
)

// expectedPackageTag and expectedMaxChunkSize are the values every frame
// header is supposed to carry. A mismatch is logged but tolerated;
// downstream decoding is attempted regardless.
const (
	expectedPackageTag   = 0x9E2A83C1
	expectedMaxChunkSize = 0x20000
)

// frameHeader is the fixed 48-byte structure prefixing each compressed
// chunk. compressedLength2/uncompressedLength2 duplicate the fields before
// them; both are read and ignored.
type frameHeader struct {
	packageTag          int64
	maxChunkSize        int64
	compressedLength    int64
	uncompressedLength  int64
	compressedLength2   int64
	uncompressedLength2 int64
}

// readFrameHeader reads one frame header from r. A clean end-of-input
// (nothing at all, or a partial header) is reported back as ErrUnexpectedEnd
// so the caller can distinguish "no more chunks" from a genuine I/O failure.
func readFrameHeader(r io.Reader) (frameHeader, error) {
	var h frameHeader
	var err error

	if h.packageTag, err = readI64(r); err != nil {
		return frameHeader{}, err
	}
	if h.packageTag != expectedPackageTag {
		log.Printf("fgsave: unexpected package file tag: %#x", h.packageTag)
	}

	if h.maxChunkSize, err = readI64(r); err != nil {
		return frameHeader{}, err
	}
	if h.maxChunkSize != expectedMaxChunkSize {
		log.Printf("fgsave: unexpected max chunk size: %#x", h.maxChunkSize)
	}

	if h.compressedLength, err = readI64(r); err != nil {
		return frameHeader{}, err
	}
	if h.uncompressedLength, err = readI64(r); err != nil {
		return frameHeader{}, err
	}
	if h.compressedLength2, err = readI64(r); err != nil {
		return frameHeader{}, err
	}
	if h.uncompressedLength2, err = readI64(r); err != nil {
		return frameHeader{}, err
	}

	return h, nil
}

// chunkedZlibReader adapts the compressed body of a save, a concatenation
// of independently-deflated chunks each prefixed by a frameHeader, into a
// single logical io.Reader.
//
// It holds at most one active inflate session at a time, over a bounded
// view of the upstream sized to the current chunk's compressed length; the
// session is an optional slot that gets swapped out at each chunk boundary,
// never nested or held concurrently with another.
type chunkedZlibReader struct {
	r    io.Reader // upstream, positioned exactly at the next frameHeader once a chunk is exhausted
	cur  io.Reader // bounded view of r for the current chunk, nil once exhausted
	zr   io.ReadCloser
	done bool
}

// newChunkedZlibReader opens the first chunk immediately. Unlike a chunk
// boundary encountered mid-stream (see advanceChunk), a header failure here
// is never treated as a clean end of stream: the compressed body is
// expected to contain at least one chunk.
func newChunkedZlibReader(r io.Reader) (*chunkedZlibReader, error) {
	c := &chunkedZlibReader{r: r}
	header, err := readFrameHeader(r)
	if err != nil {
		return nil, fmt.Errorf("fgsave: reading chunk frame header: %w", err)
	}
	if err := c.openChunk(header); err != nil {
		return nil, err
	}
	return c, nil
}

// openChunk opens an inflate session over the chunk described by header.
func (c *chunkedZlibReader) openChunk(header frameHeader) error {
	bounded := &io.LimitedReader{R: c.r, N: header.compressedLength}
	c.cur = bounded

	zr, err := zlib.NewReader(bounded)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInflate, err)
	}
	c.zr = zr

	// The inflated stream's first 4 bytes are a data-length field; its
	// value is not validated. Read and discard it.
	if _, err := readI32(c.zr); err != nil {
		return err
	}

	return nil
}

// advanceChunk drains whatever remains of the current bounded view (so the
// upstream is guaranteed to sit exactly past the chunk's compressed bytes,
// regardless of whether the inflate session itself consumed all of them),
// closes the current session, and opens the next chunk.
func (c *chunkedZlibReader) advanceChunk() error {
	if c.zr != nil {
		_ = c.zr.Close()
		c.zr = nil
	}
	if lr, ok := c.cur.(*io.LimitedReader); ok && lr.N > 0 {
		if _, err := io.CopyN(io.Discard, lr.R, lr.N); err != nil {
			return fmt.Errorf("fgsave: draining chunk: %w", err)
		}
	}
	c.cur = nil

	header, err := readFrameHeader(c.r)
	if err != nil {
		if isEOF(err) {
			c.done = true
			return nil
		}
		return fmt.Errorf("fgsave: reading chunk frame header: %w", err)
	}
	return c.openChunk(header)
}

// Read implements io.Reader. It presents the concatenation of every
// chunk's inflated payload (minus each chunk's 4-byte inner data-length
// prefix) as one logical stream, transparently crossing chunk boundaries.
func (c *chunkedZlibReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if c.done {
		return 0, io.EOF
	}

	n, err := c.zr.Read(p)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w: %w", ErrInflate, err)
	}

	if n == len(p) && err == nil {
		return n, nil
	}

	// The session yielded fewer bytes than requested: end of this chunk.
	if advErr := c.advanceChunk(); advErr != nil {
		return n, advErr
	}
	if c.done {
		if n > 0 {
			return n, nil
		}
		return 0, io.EOF
	}
	if n == 0 {
		return c.Read(p)
	}
	return n, nil
}

// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package indent provides an io.Writer that prefixes every line written
// to it with a fixed string, and helpers to do the same over an
// in-memory string or byte slice.
package indent

import (
	"bytes"
	"io"
)

// String returns s with prefix inserted at the start of every line.
// A line is any run of bytes up to and including its terminating '\n';
// the final, possibly unterminated, line is prefixed too as long as it
// is non-empty.
func String(prefix, s string) string {
	return string(Bytes([]byte(prefix), []byte(s)))
}

// Bytes is String's []byte equivalent.
func Bytes(prefix, b []byte) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf, string(prefix))
	w.Write(b)
	return buf.Bytes()
}

// Writer wraps an io.Writer, inserting its prefix at the start of
// every line written through it. It is safe to call Write multiple
// times with arbitrarily sized chunks; the line-start state persists
// across calls.
type Writer struct {
	w       io.Writer
	prefix  []byte
	atStart bool
}

// NewWriter returns a Writer that inserts prefix at the start of every
// line written to w.
func NewWriter(w io.Writer, prefix string) *Writer {
	return &Writer{w: w, prefix: []byte(prefix), atStart: true}
}

// Write implements io.Writer. The returned count is the number of
// bytes of p that were fully committed to the underlying writer,
// counting a line's prefix as part of the first byte of that line; a
// partially written prefix does not count that line's byte as
// written.
func (iw *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	boundaries := make([]int, len(p))
	atStart := iw.atStart
	for i, c := range p {
		if atStart {
			buf.Write(iw.prefix)
		}
		buf.WriteByte(c)
		atStart = c == '\n'
		boundaries[i] = buf.Len()
	}

	n, err := iw.w.Write(buf.Bytes())

	consumed := 0
	for consumed < len(p) && boundaries[consumed] <= n {
		consumed++
	}
	if consumed > 0 {
		iw.atStart = p[consumed-1] == '\n'
	}
	if err == nil && consumed < len(p) {
		err = io.ErrShortWrite
	}
	return consumed, err
}

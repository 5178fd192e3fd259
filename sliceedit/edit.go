// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package sliceedit wraps rsc.io/edit to queue offset based edits
// against a source text and apply them all in a single allocation.
// Offsets always refer to the original text, not to the edited one.
package sliceedit

import (
	"fmt"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given source.
type Buffer struct {
	ed   *edit.Buffer
	size int
}

// NewBuffer returns a new buffer to accumulate changes to src.
// The returned buffer keeps a reference to src, so the caller must not
// modify it until the Buffer is no longer used.
func NewBuffer(src []byte) *Buffer {
	return &Buffer{
		ed:   edit.NewBuffer(src),
		size: len(src),
	}
}

// NewBufferString is like NewBuffer for a string source.
func NewBufferString(src string) *Buffer {
	return NewBuffer([]byte(src))
}

func (b *Buffer) check(start, end int) error {
	if start < 0 || end < start || end > b.size {
		return fmt.Errorf("sliceedit: invalid range [%d:%d] for source of length %d", start, end, b.size)
	}
	return nil
}

// Replace queues the replacement of src[start:end] with s.
// Queued ranges must not overlap.
func (b *Buffer) Replace(start, end int, s string) error {
	if err := b.check(start, end); err != nil {
		return err
	}
	b.ed.Replace(start, end, s)
	return nil
}

// String returns the source with the queued edits applied.
// It panics if two queued edits overlap, like rsc.io/edit does.
func (b *Buffer) String() string {
	return b.ed.String()
}

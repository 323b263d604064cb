// Package wordlist streams password candidates to an output sink, one per line.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
)

// ErrWriteFailure wraps any error raised while writing to the sink.
var ErrWriteFailure = errors.New("write failure")

const bufferSize = 64 * 1024

// Writer is a buffered line writer that counts what it writes.
type Writer struct {
	w     *bufio.Writer
	bytes int64
	lines int64
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, bufferSize)}
}

// WriteLine writes s followed by a newline.
func (w *Writer) WriteLine(s string) error {
	n, err := w.w.WriteString(s)
	w.bytes += int64(n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	w.bytes++
	w.lines++
	return nil
}

// WriteLines writes each string on its own line.
func (w *Writer) WriteLines(lines []string) error {
	for _, s := range lines {
		if err := w.WriteLine(s); err != nil {
			return err
		}
	}
	return nil
}

// Flush pushes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	return nil
}

// Bytes returns the number of bytes accepted so far, including buffered bytes.
func (w *Writer) Bytes() int64 { return w.bytes }

// Written returns the number of bytes that reached the underlying writer.
// After a failed flush the bytes still held in the buffer are excluded.
func (w *Writer) Written() int64 { return w.bytes - int64(w.w.Buffered()) }

// Lines returns the number of complete lines written so far.
func (w *Writer) Lines() int64 { return w.lines }

// Write streams a wordlist to sink and returns the bytes that reached it.
//
// With includeKeyboard the keyboard walks open the list. Every candidate from
// candidates follows in order. With includeCommon the walks are written again
// at the end, so enabling both flags writes them twice; that is intended.
// Seed lines bypass any length filtering. On error, whatever has already
// reached the sink stays there.
func Write(sink io.Writer, candidates iter.Seq2[[]string, error], walks []string, includeKeyboard, includeCommon bool) (int64, error) {
	w := NewWriter(sink)
	err := write(w, candidates, walks, includeKeyboard, includeCommon)
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return w.Written(), err
}

func write(w *Writer, candidates iter.Seq2[[]string, error], walks []string, includeKeyboard, includeCommon bool) error {
	if includeKeyboard {
		if err := w.WriteLines(walks); err != nil {
			return err
		}
	}

	for lines, err := range candidates {
		if err != nil {
			return fmt.Errorf("generate candidates: %w", err)
		}
		if err := w.WriteLines(lines); err != nil {
			return err
		}
	}

	if includeCommon {
		if err := w.WriteLines(walks); err != nil {
			return err
		}
	}
	return nil
}

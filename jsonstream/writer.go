/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonstream

import (
	stderrors "errors"
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/suparena/healthprofile/sink"
)

// ErrWriterClosed is returned when writing after Close.
var ErrWriterClosed = stderrors.New("document writer is closed")

type writerState int

const (
	stateMetadata writerState = iota
	stateRecords
	stateClosed
)

// Writer emits a profile document to a sink, one field or record at a time.
// Metadata fields must all be written before the first record.
type Writer struct {
	out     sink.Sink
	stream  *jsoniter.Stream
	options Options
	state   writerState
	fields  int
	records int
}

// NewWriter opens out (if needed) and starts a document on it.
func NewWriter(out sink.Sink, opts ...Option) (*Writer, error) {
	if !out.IsOpen() {
		if err := out.Open(); err != nil {
			return nil, fmt.Errorf("open sink: %w", err)
		}
	}
	options := buildOptions(opts)
	w := &Writer{
		out:     out,
		stream:  jsoniter.NewStream(jsoniter.ConfigCompatibleWithStandardLibrary, out, options.BufferSize),
		options: options,
	}
	w.stream.WriteObjectStart()
	return w, nil
}

// WriteMetadata writes one top-level metadata field.
func (w *Writer) WriteMetadata(key string, value any) error {
	switch w.state {
	case stateClosed:
		return ErrWriterClosed
	case stateRecords:
		return fmt.Errorf("metadata field %q written after records", key)
	}
	if key == w.options.RecordsField {
		return fmt.Errorf("metadata field %q collides with the records field", key)
	}
	w.field(key)
	w.stream.WriteVal(value)
	return w.flushIfFull()
}

// WriteRecord appends one record. Fields are written in key order after the
// discriminant; a field named like the discriminant is skipped.
func (w *Writer) WriteRecord(typeTag string, fields map[string]any) error {
	switch w.state {
	case stateClosed:
		return ErrWriterClosed
	case stateMetadata:
		w.field(w.options.RecordsField)
		w.stream.WriteArrayStart()
		w.state = stateRecords
	}

	if w.records > 0 {
		w.stream.WriteMore()
	}
	w.stream.WriteObjectStart()
	w.stream.WriteObjectField(w.options.Discriminant)
	w.stream.WriteString(typeTag)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != w.options.Discriminant {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.stream.WriteMore()
		w.stream.WriteObjectField(k)
		w.stream.WriteVal(fields[k])
	}
	w.stream.WriteObjectEnd()
	w.records++
	return w.flushIfFull()
}

// Records returns the number of records written so far.
func (w *Writer) Records() int {
	return w.records
}

// Close finishes the document, flushes it and closes the sink.
func (w *Writer) Close() error {
	if w.state == stateClosed {
		return nil
	}
	if w.state == stateMetadata {
		w.field(w.options.RecordsField)
		w.stream.WriteEmptyArray()
	} else {
		w.stream.WriteArrayEnd()
	}
	w.stream.WriteObjectEnd()
	w.state = stateClosed

	if err := w.stream.Flush(); err != nil {
		_ = w.out.Close()
		return fmt.Errorf("flush document: %w", err)
	}
	if w.stream.Error != nil {
		_ = w.out.Close()
		return fmt.Errorf("encode document: %w", w.stream.Error)
	}
	return w.out.Close()
}

func (w *Writer) field(key string) {
	if w.fields > 0 {
		w.stream.WriteMore()
	}
	w.stream.WriteObjectField(key)
	w.fields++
}

func (w *Writer) flushIfFull() error {
	if w.stream.Error != nil {
		return fmt.Errorf("encode document: %w", w.stream.Error)
	}
	if w.stream.Buffered() < w.options.BufferSize {
		return nil
	}
	if err := w.stream.Flush(); err != nil {
		return fmt.Errorf("flush document: %w", err)
	}
	return nil
}

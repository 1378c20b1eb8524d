/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonstream

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/suparena/healthprofile/errors"
)

// Reader walks a profile document of the form
//
//	{ metadataField*, "records": [ { "type": "<tag>", ...fields }* ] }
//
// and hands its parts to a Handler. It pulls tokens through a fixed-size
// buffer, so memory stays bounded by the buffer plus one record no matter
// how large the document is.
type Reader struct {
	api     jsoniter.API
	options Options
}

// NewReader creates a Reader.
func NewReader(opts ...Option) *Reader {
	return &Reader{
		api:     jsoniter.ConfigCompatibleWithStandardLibrary,
		options: buildOptions(opts),
	}
}

// Options returns the reader's effective options.
func (r *Reader) Options() Options {
	return r.options
}

// ReadFile reads the document at path. A missing file or a structurally
// invalid document yields an *errors.ReadError.
func (r *Reader) ReadFile(path string, h Handler) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewReadError(path, err)
	}
	defer f.Close()

	if err := r.read(f, h); err != nil {
		return errors.NewReadError(path, err)
	}
	return nil
}

// Read reads a document from src. Structural failures yield an *errors.ReadError.
func (r *Reader) Read(src io.Reader, h Handler) error {
	if err := r.read(src, h); err != nil {
		return errors.NewReadError("", err)
	}
	return nil
}

func (r *Reader) read(src io.Reader, h Handler) error {
	iter := jsoniter.Parse(r.api, src, r.options.BufferSize)

	if next := iter.WhatIsNext(); next != jsoniter.ObjectValue {
		if iter.Error != nil {
			return parseError(iter.Error)
		}
		return fmt.Errorf("document must be an object, found %s", valueTypeName(next))
	}

	aborted := false
	ok := iter.ReadObjectCB(func(iter *jsoniter.Iterator, key string) bool {
		if key == r.options.RecordsField {
			if obs, ok := h.(RecordsStartObserver); ok {
				obs.OnRecordsStart()
			}
			if h.ShouldAbort() {
				aborted = true
				return false
			}
			return r.readRecords(iter, h)
		}

		value := iter.Read()
		if iter.Error != nil {
			return false
		}
		h.OnMetadataField(key, value)
		if h.ShouldAbort() {
			aborted = true
			return false
		}
		return true
	})

	if aborted {
		return nil
	}
	if iter.Error != nil {
		return parseError(iter.Error)
	}
	if !ok {
		return stderrors.New("document is not well-formed")
	}
	return nil
}

func (r *Reader) readRecords(iter *jsoniter.Iterator, h Handler) bool {
	switch next := iter.WhatIsNext(); next {
	case jsoniter.ArrayValue, jsoniter.NilValue:
	default:
		iter.ReportError("readRecords", fmt.Sprintf("%q must be an array, found %s", r.options.RecordsField, valueTypeName(next)))
		return false
	}

	return iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
		if iter.WhatIsNext() != jsoniter.ObjectValue {
			iter.Skip()
			return iter.Error == nil
		}

		var tag string
		fields := make(map[string]any)
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
			value := iter.Read()
			if field == r.options.Discriminant {
				tag, _ = value.(string)
			} else {
				fields[field] = value
			}
			return iter.Error == nil
		})
		if iter.Error != nil {
			return false
		}

		h.OnRecord(tag, fields)
		return true
	})
}

// parseError reports running out of input as a truncated document.
func parseError(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func valueTypeName(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "bool"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	default:
		return "invalid input"
	}
}

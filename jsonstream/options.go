/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonstream

// Defaults for the document layout and read buffer.
const (
	DefaultDiscriminant = "type"
	DefaultRecordsField = "records"
	DefaultBufferSize   = 16 * 1024
)

// Options configures readers and writers.
type Options struct {
	BufferSize   int    // Read/write buffer size in bytes (default: 16KiB)
	Discriminant string // Record field holding the type tag (default: "type")
	RecordsField string // Top-level field holding the records array (default: "records")
}

// Option is a functional option for configuring readers and writers
type Option func(*Options)

// DefaultOptions returns default options
func DefaultOptions() Options {
	return Options{
		BufferSize:   DefaultBufferSize,
		Discriminant: DefaultDiscriminant,
		RecordsField: DefaultRecordsField,
	}
}

// WithBufferSize sets the buffer size
func WithBufferSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.BufferSize = size
		}
	}
}

// WithDiscriminant sets the record field that carries the type tag
func WithDiscriminant(field string) Option {
	return func(o *Options) {
		if field != "" {
			o.Discriminant = field
		}
	}
}

// WithRecordsField sets the top-level field that carries the records array
func WithRecordsField(field string) Option {
	return func(o *Options) {
		if field != "" {
			o.RecordsField = field
		}
	}
}

func buildOptions(opts []Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

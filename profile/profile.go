/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package profile

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/suparena/healthprofile/errors"
	"github.com/suparena/healthprofile/jsonstream"
	"github.com/suparena/healthprofile/records"
	"github.com/suparena/healthprofile/registry"
)

// ErrClosed is returned for work submitted after Close.
var ErrClosed = stderrors.New("profile is closed")

// Profile is one exported health profile document on disk.
type Profile struct {
	path     string
	fileName string
	fileSize int64

	registry *registry.Registry
	reader   *jsonstream.Reader
	log      *zap.Logger

	// readMu keeps at most one read in flight, inline or queued.
	readMu sync.Mutex
	queue  *serialQueue
}

// Option configures a Profile.
type Option func(*Profile)

// WithRegistry sets the registry records are imported with.
func WithRegistry(r *registry.Registry) Option {
	return func(p *Profile) {
		p.registry = r
	}
}

// WithReader sets the document reader.
func WithReader(r *jsonstream.Reader) Option {
	return func(p *Profile) {
		p.reader = r
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Profile) {
		p.log = log
	}
}

// Open returns the Profile for the document at path. The file is stat'ed
// once; its name and size are cached.
func Open(path string, opts ...Option) (*Profile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewIOError("stat", path, err)
	}
	if info.IsDir() {
		return nil, errors.NewIOError("stat", path, fmt.Errorf("is a directory"))
	}

	p := &Profile{
		path:     path,
		fileName: filepath.Base(path),
		fileSize: info.Size(),
		queue:    newSerialQueue(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = registry.Default()
	}
	if p.reader == nil {
		p.reader = jsonstream.NewReader()
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	p.log = p.log.With(zap.String("profile", p.fileName))
	return p, nil
}

func (p *Profile) Path() string {
	return p.path
}

func (p *Profile) FileName() string {
	return p.fileName
}

// FileSize returns the size of the document in bytes, as of Open.
func (p *Profile) FileSize() int64 {
	return p.fileSize
}

func (p *Profile) String() string {
	return fmt.Sprintf("%s %d", p.fileName, p.fileSize)
}

// LoadMetadata reads the profile's metadata and passes it to callback. With
// async the read is queued behind earlier reads of this profile and
// LoadMetadata returns at once; otherwise it runs on the caller's goroutine.
// A document that cannot be read yields whatever metadata was collected.
func (p *Profile) LoadMetadata(async bool, callback func(Metadata)) error {
	if !async {
		callback(p.readMetadata())
		return nil
	}
	if !p.queue.submit(func() { callback(p.readMetadata()) }) {
		return ErrClosed
	}
	return nil
}

// Metadata is LoadMetadata without a callback.
func (p *Profile) Metadata() Metadata {
	return p.readMetadata()
}

func (p *Profile) readMetadata() Metadata {
	p.readMu.Lock()
	defer p.readMu.Unlock()

	h := NewMetadataHandler()
	if err := p.reader.ReadFile(p.path, h); err != nil {
		p.log.Warn("metadata read failed, returning partial metadata", zap.Error(err))
	}
	return h.Metadata()
}

// ImportRecords scans the whole document and calls onRecord for every record
// the registry can reconstruct, in document order. Unknown and malformed
// records are skipped. A document that cannot be read yields an
// *errors.ReadError.
func (p *Profile) ImportRecords(onRecord func(records.Record)) (ImportStats, error) {
	p.readMu.Lock()
	defer p.readMu.Unlock()

	h := NewImportHandler(p.registry, onRecord, p.log)
	err := p.reader.ReadFile(p.path, h)
	stats := h.Stats()
	if err != nil {
		return stats, err
	}
	p.log.Debug("imported records",
		zap.Int("delivered", stats.Delivered),
		zap.Int("unknown", stats.Unknown),
		zap.Int("malformed", stats.Malformed))
	return stats, nil
}

// DeleteFile removes the document. Failure, including a document that is
// already gone, yields an *errors.IOError.
func (p *Profile) DeleteFile() error {
	p.readMu.Lock()
	defer p.readMu.Unlock()

	if err := os.Remove(p.path); err != nil {
		return errors.NewIOError("remove", p.path, err)
	}
	return nil
}

// Close waits for queued reads and stops the profile's worker.
func (p *Profile) Close() {
	p.queue.close()
}

var nameReplacer = strings.NewReplacer(
	"/", "", "\\", "", "?", "", "%", "", "*", "", "|", "",
	".", "", ":", "", ",", "", " ", "", "\"", "", "<", "", ">", "",
)

// NormalizeName turns user input into something usable as a file name.
func NormalizeName(name string) string {
	return nameReplacer.Replace(strings.TrimSpace(name))
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sink

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"sync"

	"github.com/suparena/healthprofile/errors"
)

// ErrClosed is returned when writing to a sink that is not open.
var ErrClosed = stderrors.New("sink is not open")

// Sink is a byte destination for an exported document.
type Sink interface {
	Open() error
	Write(p []byte) (int, error)
	Close() error
	IsOpen() bool
}

// WriteString writes s to the sink as UTF-8.
func WriteString(s Sink, str string) error {
	_, err := s.Write([]byte(str))
	return err
}

// MemorySink accumulates the document in memory. The whole document must fit.
type MemorySink struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	open bool
}

// NewMemorySink returns a closed, empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (m *MemorySink) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	return nil
}

func (m *MemorySink) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return 0, ErrClosed
	}
	return m.buf.Write(p)
}

func (m *MemorySink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	return nil
}

func (m *MemorySink) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// String closes the sink and returns everything written to it.
func (m *MemorySink) String() string {
	_ = m.Close()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.String()
}

// FileSink writes the document to a file. Opening truncates any existing content.
type FileSink struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// NewFileSink returns a FileSink for path. The file is created on Open.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the file the sink writes to.
func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f != nil {
		return nil
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.NewIOError("open", s.path, err)
	}
	s.f = f
	return nil
}

func (s *FileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return 0, ErrClosed
	}
	n, err := s.f.Write(p)
	if err != nil {
		return n, errors.NewIOError("write", s.path, err)
	}
	return n, nil
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	if err != nil {
		return errors.NewIOError("close", s.path, err)
	}
	return nil
}

func (s *FileSink) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f != nil
}

// String closes the sink and returns the file content.
func (s *FileSink) String() (string, error) {
	if err := s.Close(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read back %s: %w", s.path, err)
	}
	return string(data), nil
}

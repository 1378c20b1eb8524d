/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"

	"github.com/suparena/healthprofile/records"
)

// Creator reconstructs a typed record from a document field map.
type Creator interface {
	Create(fields map[string]any) (records.Record, error)
}

// CreatorFunc adapts a plain function to the Creator interface.
type CreatorFunc func(fields map[string]any) (records.Record, error)

// Create calls f(fields).
func (f CreatorFunc) Create(fields map[string]any) (records.Record, error) {
	return f(fields)
}

// Registry maps a type tag to its Creator. It is immutable once built, so
// lookups need no locking and may run from any number of reads at once.
type Registry struct {
	creators map[string]Creator
}

// Builder collects creators before a Registry is built.
type Builder struct {
	creators map[string]Creator
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{creators: make(map[string]Creator)}
}

// Register binds a creator to a type tag.
// If a creator is already registered for the tag, it panics to prevent accidental overrides.
func (b *Builder) Register(typeTag string, c Creator) *Builder {
	if _, exists := b.creators[typeTag]; exists {
		panic(fmt.Sprintf("type registry: creator for tag %q already registered", typeTag))
	}
	b.creators[typeTag] = c
	return b
}

// RegisterFunc is Register for a records.CreateFunc.
func (b *Builder) RegisterFunc(typeTag string, fn records.CreateFunc) *Builder {
	return b.Register(typeTag, CreatorFunc(fn))
}

// Build returns a Registry holding a copy of the registered creators.
func (b *Builder) Build() *Registry {
	creators := make(map[string]Creator, len(b.creators))
	for tag, c := range b.creators {
		creators[tag] = c
	}
	return &Registry{creators: creators}
}

// Get returns the creator registered for typeTag. It never fails; unknown
// tags report false.
func (r *Registry) Get(typeTag string) (Creator, bool) {
	c, ok := r.creators[typeTag]
	return c, ok
}

// Reconstruct turns a tagged field map into a Record. Unknown tags yield an
// *records.Unrecognized carrying the fields. ok is false only when a creator
// exists but rejected the fields; err then says why.
func (r *Registry) Reconstruct(typeTag string, fields map[string]any) (rec records.Record, ok bool, err error) {
	c, found := r.creators[typeTag]
	if !found {
		return &records.Unrecognized{TypeTag: typeTag, Raw: fields}, true, nil
	}
	rec, err = c.Create(fields)
	if err != nil {
		return nil, false, err
	}
	if rec == nil {
		return nil, false, fmt.Errorf("type registry: creator for tag %q returned no record", typeTag)
	}
	return rec, true, nil
}

// Tags returns the registered type tags, sorted.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.creators))
	for tag := range r.creators {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	return len(r.creators)
}

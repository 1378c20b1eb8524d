/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cleaner

import (
	"context"

	"go.uber.org/zap"

	"github.com/suparena/healthprofile/datastore"
	"github.com/suparena/healthprofile/registry"
	"github.com/suparena/healthprofile/storagemodels"
)

// DefaultPageSize is the number of records requested per page.
const DefaultPageSize int32 = 1000

// Cleaner deletes every record a source wrote to a store, one record type
// after another, page by page.
type Cleaner struct {
	store       datastore.SampleStore
	source      string
	pageSize    int32
	recordTypes []string
	log         *zap.Logger
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithPageSize sets the number of records requested per page.
func WithPageSize(n int32) Option {
	return func(c *Cleaner) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithRecordTypes sets the record types to clean, in order.
func WithRecordTypes(types ...string) Option {
	return func(c *Cleaner) {
		c.recordTypes = make([]string, len(types))
		copy(c.recordTypes, types)
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Cleaner) {
		c.log = log
	}
}

// New returns a Cleaner for the records source owns in store. By default it
// cleans every type of the default registry.
func New(store datastore.SampleStore, source string, opts ...Option) *Cleaner {
	c := &Cleaner{
		store:    store,
		source:   source,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.recordTypes == nil {
		c.recordTypes = registry.Default().Tags()
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	c.log = c.log.With(zap.String("source", source))
	return c
}

// RecordTypes returns the types Clean walks, in order.
func (c *Cleaner) RecordTypes() []string {
	return append([]string(nil), c.recordTypes...)
}

// Clean deletes the source's records of every type. onProgress, if set, is
// called once per type before the type is drained. Failures are logged and
// never stop the run: a failed query ends its type, a failed delete moves
// on to the next page. A cancelled ctx stops Clean between pages.
func (c *Cleaner) Clean(ctx context.Context, onProgress func(message string)) {
	for _, recordType := range c.recordTypes {
		if ctx.Err() != nil {
			c.log.Info("clean cancelled", zap.Error(ctx.Err()))
			return
		}
		if onProgress != nil {
			onProgress("deleting " + recordType)
		}
		c.cleanType(ctx, recordType)
	}
}

// cleanType drains one record type. The next page is requested only after
// the current page's delete has returned.
func (c *Cleaner) cleanType(ctx context.Context, recordType string) {
	log := c.log.With(zap.String("type", recordType))

	var (
		anchor  storagemodels.Anchor
		pages   int
		deleted int
	)
	for {
		if ctx.Err() != nil {
			return
		}

		page, err := c.store.PagedQuery(ctx, recordType, c.source, anchor, c.pageSize)
		if err != nil {
			log.Warn("paged query failed, skipping rest of type", zap.Int("page", pages), zap.Error(err))
			page = storagemodels.Page{}
		}
		if page.Len() == 0 {
			break
		}
		pages++

		if err := c.store.Delete(ctx, page.Records); err != nil {
			log.Error("delete failed", zap.Int("page", pages), zap.Int("records", page.Len()), zap.Error(err))
		} else {
			deleted += page.Len()
		}
		anchor = page.Anchor
	}

	log.Debug("type cleaned", zap.Int("pages", pages), zap.Int("deleted", deleted))
}

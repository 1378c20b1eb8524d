/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package profile

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/suparena/healthprofile/records"
	"github.com/suparena/healthprofile/registry"
)

// ImportStats counts what an import did with the records it saw.
type ImportStats struct {
	Delivered int
	Unknown   int
	Malformed int
}

// Total returns the number of records seen.
func (s ImportStats) Total() int {
	return s.Delivered + s.Unknown + s.Malformed
}

// ImportHandler reconstructs every record of a document and hands the
// recognized ones to a consumer, in document order.
type ImportHandler struct {
	registry *registry.Registry
	consumer func(records.Record)
	log      *zap.Logger
	stats    ImportStats
}

// NewImportHandler returns an ImportHandler. A nil logger disables logging.
func NewImportHandler(reg *registry.Registry, consumer func(records.Record), log *zap.Logger) *ImportHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImportHandler{registry: reg, consumer: consumer, log: log}
}

func (h *ImportHandler) OnMetadataField(string, any) {}

func (h *ImportHandler) ShouldAbort() bool {
	return false
}

func (h *ImportHandler) OnRecord(typeTag string, fields map[string]any) {
	creator, ok := h.registry.Get(typeTag)
	if !ok {
		h.stats.Unknown++
		return
	}

	rec, err := create(creator, fields)
	if err != nil {
		h.stats.Malformed++
		h.log.Debug("dropping malformed record", zap.String("type", typeTag), zap.Error(err))
		return
	}

	h.stats.Delivered++
	if h.consumer != nil {
		h.consumer(rec)
	}
}

// Stats returns the counts so far.
func (h *ImportHandler) Stats() ImportStats {
	return h.stats
}

func create(c registry.Creator, fields map[string]any) (rec records.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, err = nil, fmt.Errorf("creator panicked: %v", r)
		}
	}()
	rec, err = c.Create(fields)
	if err == nil && rec == nil {
		err = fmt.Errorf("creator returned no record")
	}
	return rec, err
}

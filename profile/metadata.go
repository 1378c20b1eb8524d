/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package profile

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// Metadata keys of a profile document.
const (
	KeyProfileName  = "profileName"
	KeyCreationDate = "creationDate"
	KeyVersion      = "version"
	KeyType         = "type"
)

var metadataKeys = [...]string{KeyProfileName, KeyCreationDate, KeyVersion, KeyType}

// Metadata describes a profile. Fields the document does not carry (or
// carries with the wrong type) stay nil.
type Metadata struct {
	// Name of the profile
	ProfileName *string `json:"profileName,omitempty"`

	// Time the profile was exported
	// Format: date-time
	CreationDate *strfmt.DateTime `json:"creationDate,omitempty"`

	// Version of the exporter that wrote the profile
	Version *string `json:"version,omitempty"`

	// Kind of export target that wrote the profile
	Type *string `json:"type,omitempty"`
}

// MetadataHandler collects the metadata fields of a document and asks the
// reader to stop once it has all of them or the records array begins.
type MetadataHandler struct {
	values map[string]any
	abort  bool
}

// NewMetadataHandler returns an empty MetadataHandler.
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{values: make(map[string]any, len(metadataKeys))}
}

func (h *MetadataHandler) OnMetadataField(key string, value any) {
	if !isMetadataKey(key) {
		return
	}
	if _, seen := h.values[key]; seen {
		return
	}
	h.values[key] = value
	if len(h.values) == len(metadataKeys) {
		h.abort = true
	}
}

func (h *MetadataHandler) ShouldAbort() bool {
	return h.abort
}

// OnRecordsStart stops the read at the records array.
func (h *MetadataHandler) OnRecordsStart() {
	h.abort = true
}

func (h *MetadataHandler) OnRecord(string, map[string]any) {}

// Metadata builds the metadata collected so far.
func (h *MetadataHandler) Metadata() Metadata {
	var m Metadata
	if s, ok := h.values[KeyProfileName].(string); ok {
		m.ProfileName = &s
	}
	if ms, ok := h.values[KeyCreationDate].(float64); ok {
		dt := strfmt.DateTime(time.UnixMilli(int64(ms)).UTC())
		m.CreationDate = &dt
	}
	if s, ok := h.values[KeyVersion].(string); ok {
		m.Version = &s
	}
	if s, ok := h.values[KeyType].(string); ok {
		m.Type = &s
	}
	return m
}

func isMetadataKey(key string) bool {
	for _, k := range metadataKeys {
		if k == key {
			return true
		}
	}
	return false
}

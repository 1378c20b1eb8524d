/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonstream

// Handler receives the parts of a profile document as the Reader walks it.
type Handler interface {
	// OnMetadataField is called for every top-level field other than the
	// records array, in document order.
	OnMetadataField(key string, value any)

	// ShouldAbort is asked after each metadata field and right before the
	// records array. Returning true ends the read successfully.
	ShouldAbort() bool

	// OnRecord is called for every record object. fields excludes the
	// discriminant and is only valid for the duration of the call.
	OnRecord(typeTag string, fields map[string]any)
}

// RecordsStartObserver is implemented by handlers that want to know when the
// records array is reached, before ShouldAbort is asked about it.
type RecordsStartObserver interface {
	OnRecordsStart()
}

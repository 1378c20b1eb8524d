/*
Package storagemodels defines the values exchanged with a backing store.

QueryParams:
Parameters for one page of a paged query:

	params := storagemodels.QueryParams{
	    RecordType: "HKQuantityTypeIdentifierStepCount",
	    Source:     "healthsync",
	    Anchor:     page.Anchor,
	    Limit:      1000,
	}

Anchor:
Where a paged query resumes. The zero value is the start of a record type;
every Page carries the anchor for the page after it. Anchors only live as
long as one pass over a type and are never persisted.

StoredRecord:
One record as the store knows it: its type, id and owning source, plus the
reconstructed records.Record when the payload could be decoded.
*/
package storagemodels

/*
Package ddb provides a DynamoDB implementation of the SampleStore interface.

All records live in one table. Keys are built from an IndexMap whose macros
are replaced with the stored record's values:

	indexMap := ddb.IndexMap{
	    ddb.PartitionKey: "TYPE#{RecordType}", // Becomes "TYPE#HKQuantityTypeIdentifierStepCount"
	    ddb.SortKey:      "{ID}",              // The record UUID
	}

Next to the keys every item carries EntityType (the record type tag), Source
(the application that wrote it), ID, and Payload (the record's document
fields as a map). Payloads are turned back into records through the
registry on read.

Paged queries:
PagedQuery reads one partition with a Source filter. DynamoDB applies Limit
before the filter, so the store keeps querying until the page is full:

	page, err := store.PagedQuery(ctx, recordType, source, anchor, 1000)
	// page.Anchor resumes after the last record of the page

Writes go through BatchWriteItem in chunks of 25; unprocessed items are
resubmitted a bounded number of times.
*/
package ddb

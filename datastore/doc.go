/*
Package datastore defines the backing store the importer writes to and the
cleaner drains.

	type SampleStore interface {
	    PagedQuery(ctx context.Context, recordType, source string, anchor storagemodels.Anchor, limit int32) (storagemodels.Page, error)
	    Delete(ctx context.Context, recs []storagemodels.StoredRecord) error
	    Save(ctx context.Context, source string, recs []records.Record) error
	}

Implementations:
  - ddb: DynamoDB implementation on a single table
  - mock: In-memory implementation for testing
*/
package datastore

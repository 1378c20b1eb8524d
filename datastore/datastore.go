/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/healthprofile/records"
	"github.com/suparena/healthprofile/storagemodels"
)

// SampleStore holds health records keyed by record type and owning source.
type SampleStore interface {
	// PagedQuery returns up to limit records of recordType written by source,
	// starting after anchor. An empty page means the type is drained.
	PagedQuery(ctx context.Context, recordType, source string, anchor storagemodels.Anchor, limit int32) (storagemodels.Page, error)

	// Delete removes the given records.
	Delete(ctx context.Context, recs []storagemodels.StoredRecord) error

	// Save writes recs as owned by source.
	Save(ctx context.Context, source string, recs []records.Record) error
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/healthprofile/errors"
	"github.com/suparena/healthprofile/records"
)

// DefaultPageLimit is the page size used when a query does not set one.
const DefaultPageLimit int32 = 1000

// Anchor is an opaque resume point of a paged query. The zero value starts
// at the beginning of a record type.
type Anchor struct {
	key       map[string]types.AttributeValue
	exhausted bool
}

// AnchorFromKey returns the anchor that resumes after key, the last key a
// page was read up to. An empty key means nothing is left to read.
func AnchorFromKey(key map[string]types.AttributeValue) Anchor {
	if len(key) == 0 {
		return ExhaustedAnchor()
	}
	return Anchor{key: key}
}

// ExhaustedAnchor returns an anchor past the last record. Queries from it
// return empty pages without touching the store.
func ExhaustedAnchor() Anchor {
	return Anchor{exhausted: true}
}

// IsStart reports whether the anchor is the zero value.
func (a Anchor) IsStart() bool {
	return !a.exhausted && len(a.key) == 0
}

// IsExhausted reports whether nothing is left to read after the anchor.
func (a Anchor) IsExhausted() bool {
	return a.exhausted
}

// Key returns the store key the anchor resumes after, or nil.
func (a Anchor) Key() map[string]types.AttributeValue {
	return a.key
}

// StoredRecord identifies one record in the backing store. Record is set when
// the store could reconstruct the payload.
type StoredRecord struct {
	RecordType string
	ID         string
	Source     string
	Record     records.Record
}

// Page is one page of a paged query.
type Page struct {
	Records []StoredRecord
	// Anchor resumes the query after the last record of this page.
	Anchor Anchor
}

// Len returns the number of records on the page.
func (p Page) Len() int {
	return len(p.Records)
}

// QueryParams selects one page of records of a type written by a source.
type QueryParams struct {
	// RecordType is the type tag to query.
	RecordType string
	// Source restricts the query to records this source wrote.
	Source string
	// Anchor is where the page starts.
	Anchor Anchor
	// Limit is the maximum number of records on the page.
	Limit int32
}

// Validate checks the parameters and fills in the default limit.
func (p *QueryParams) Validate() error {
	if p.RecordType == "" {
		return errors.NewValidationError("recordType", "must not be empty")
	}
	if p.Source == "" {
		return errors.NewValidationError("source", "must not be empty")
	}
	if p.Limit < 0 {
		return errors.NewValidationError("limit", "must not be negative")
	}
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	return nil
}

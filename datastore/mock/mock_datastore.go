/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory SampleStore for testing
package mock

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/healthprofile/datastore"
	"github.com/suparena/healthprofile/errors"
	"github.com/suparena/healthprofile/records"
	"github.com/suparena/healthprofile/storagemodels"
)

const seqAttribute = "seq"

var _ datastore.SampleStore = (*SampleStore)(nil)

type entry struct {
	seq    int64
	stored storagemodels.StoredRecord
}

// SampleStore is a mock implementation of datastore.SampleStore for testing.
// Records are returned in insertion order; anchors carry the sequence number
// of the last record of a page.
type SampleStore struct {
	mu      sync.RWMutex
	entries []entry
	nextSeq int64

	queryFunc       func(ctx context.Context, params storagemodels.QueryParams) (storagemodels.Page, error)
	queryError      error
	queryErrorTypes map[string]error
	deleteError     error
	saveError       error

	queries     []storagemodels.QueryParams
	pageSizes   map[string][]int
	deleteCalls [][]storagemodels.StoredRecord
}

// New creates a new mock SampleStore
func New() *SampleStore {
	return &SampleStore{
		queryErrorTypes: make(map[string]error),
		pageSizes:       make(map[string][]int),
	}
}

// WithQueryFunc sets a custom query function for testing
func (m *SampleStore) WithQueryFunc(f func(ctx context.Context, params storagemodels.QueryParams) (storagemodels.Page, error)) *SampleStore {
	m.queryFunc = f
	return m
}

// WithQueryError makes every PagedQuery return an error
func (m *SampleStore) WithQueryError(err error) *SampleStore {
	m.queryError = err
	return m
}

// WithQueryErrorFor makes PagedQuery return an error for one record type
func (m *SampleStore) WithQueryErrorFor(recordType string, err error) *SampleStore {
	m.queryErrorTypes[recordType] = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *SampleStore) WithDeleteError(err error) *SampleStore {
	m.deleteError = err
	return m
}

// WithSaveError makes Save operations return an error
func (m *SampleStore) WithSaveError(err error) *SampleStore {
	m.saveError = err
	return m
}

// PagedQuery returns the next page of records of a type owned by source
func (m *SampleStore) PagedQuery(ctx context.Context, recordType, source string, anchor storagemodels.Anchor, limit int32) (storagemodels.Page, error) {
	params := storagemodels.QueryParams{RecordType: recordType, Source: source, Anchor: anchor, Limit: limit}
	if err := params.Validate(); err != nil {
		return storagemodels.Page{}, err
	}

	m.mu.Lock()
	m.queries = append(m.queries, params)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return storagemodels.Page{}, err
	}
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params)
	}
	if m.queryError != nil {
		return storagemodels.Page{}, m.queryError
	}
	if err, ok := m.queryErrorTypes[recordType]; ok {
		return storagemodels.Page{}, err
	}

	page, err := m.page(params)
	if err != nil {
		return storagemodels.Page{}, err
	}

	m.mu.Lock()
	m.pageSizes[recordType] = append(m.pageSizes[recordType], page.Len())
	m.mu.Unlock()
	return page, nil
}

func (m *SampleStore) page(params storagemodels.QueryParams) (storagemodels.Page, error) {
	if params.Anchor.IsExhausted() {
		return storagemodels.Page{Anchor: params.Anchor}, nil
	}
	after, err := anchorSeq(params.Anchor)
	if err != nil {
		return storagemodels.Page{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		page storagemodels.Page
		last int64
	)
	for _, e := range m.entries {
		if len(page.Records) == int(params.Limit) {
			break
		}
		if e.seq <= after || e.stored.RecordType != params.RecordType || e.stored.Source != params.Source {
			continue
		}
		page.Records = append(page.Records, e.stored)
		last = e.seq
	}

	if len(page.Records) == 0 {
		page.Anchor = storagemodels.ExhaustedAnchor()
		return page, nil
	}
	page.Anchor = storagemodels.AnchorFromKey(map[string]types.AttributeValue{
		seqAttribute: &types.AttributeValueMemberN{Value: strconv.FormatInt(last, 10)},
	})
	return page, nil
}

// Delete removes records. Records that are not stored are ignored.
func (m *SampleStore) Delete(ctx context.Context, recs []storagemodels.StoredRecord) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, append([]storagemodels.StoredRecord(nil), recs...))
	m.mu.Unlock()

	if m.deleteError != nil {
		return m.deleteError
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doomed := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		doomed[key(r.RecordType, r.ID)] = struct{}{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]
	for _, e := range m.entries {
		if _, ok := doomed[key(e.stored.RecordType, e.stored.ID)]; !ok {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(m.entries); i++ {
		m.entries[i] = entry{}
	}
	m.entries = kept
	return nil
}

// Save stores records as owned by source. A record whose type and id are
// already stored replaces it in place.
func (m *SampleStore) Save(ctx context.Context, source string, recs []records.Record) error {
	if m.saveError != nil {
		return m.saveError
	}
	if source == "" {
		return errors.NewValidationError("source", "must not be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	positions := make(map[string]int, len(m.entries))
	for i, e := range m.entries {
		positions[key(e.stored.RecordType, e.stored.ID)] = i
	}
	for _, rec := range recs {
		stored := storagemodels.StoredRecord{
			RecordType: rec.Tag(),
			ID:         datastore.RecordID(rec),
			Source:     source,
			Record:     rec,
		}
		k := key(stored.RecordType, stored.ID)
		if i, ok := positions[k]; ok {
			m.entries[i].stored = stored
			continue
		}
		m.nextSeq++
		positions[k] = len(m.entries)
		m.entries = append(m.entries, entry{seq: m.nextSeq, stored: stored})
	}
	return nil
}

// Helper methods for testing

// Records returns a copy of the stored records in insertion order
func (m *SampleStore) Records() []storagemodels.StoredRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]storagemodels.StoredRecord, len(m.entries))
	for i, e := range m.entries {
		result[i] = e.stored
	}
	return result
}

// Count returns the number of stored records
func (m *SampleStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// CountOf returns the number of stored records of a type owned by source
func (m *SampleStore) CountOf(recordType, source string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, e := range m.entries {
		if e.stored.RecordType == recordType && e.stored.Source == source {
			n++
		}
	}
	return n
}

// Queries returns the parameters of every PagedQuery call
func (m *SampleStore) Queries() []storagemodels.QueryParams {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]storagemodels.QueryParams(nil), m.queries...)
}

// PageSizes returns the sizes of the pages served for a record type
func (m *SampleStore) PageSizes(recordType string) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.pageSizes[recordType]...)
}

// DeleteCalls returns the records passed to every Delete call
func (m *SampleStore) DeleteCalls() [][]storagemodels.StoredRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([][]storagemodels.StoredRecord(nil), m.deleteCalls...)
}

// Clear removes all data and recorded calls
func (m *SampleStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.queries = nil
	m.deleteCalls = nil
	m.pageSizes = make(map[string][]int)
}

func anchorSeq(a storagemodels.Anchor) (int64, error) {
	if a.IsStart() {
		return 0, nil
	}
	attr, ok := a.Key()[seqAttribute].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.NewValidationError("anchor", "not issued by this store")
	}
	seq, err := strconv.ParseInt(attr.Value, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("anchor", fmt.Sprintf("bad sequence %q", attr.Value))
	}
	return seq, nil
}

func key(recordType, id string) string {
	return recordType + "|" + id
}

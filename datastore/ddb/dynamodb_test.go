/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/suparena/healthprofile/errors"
	"github.com/suparena/healthprofile/records"
	"github.com/suparena/healthprofile/storagemodels"
)

const (
	table     = "health-test"
	stepCount = "HKQuantityTypeIdentifierStepCount"
	owner     = "healthsync"
)

func newTestStore(t *testing.T) (*SampleStore, *fakeClient) {
	t.Helper()
	client := newFakeClient()
	store, err := New(client, table, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return store, client
}

func stepSamples(n int) []records.Record {
	recs := make([]records.Record, n)
	for i := range recs {
		start := time.UnixMilli(1446760800000 + int64(i)*1000).UTC()
		recs[i] = &records.QuantitySample{
			Type:  stepCount,
			UUID:  strfmt.UUID(uuid.NewString()),
			Start: start,
			End:   start.Add(time.Second),
			Unit:  "count",
			Value: float64(i),
		}
	}
	return recs
}

func drain(t *testing.T, store *SampleStore, recordType, source string, limit int32) []storagemodels.Page {
	t.Helper()
	var (
		pages  []storagemodels.Page
		anchor storagemodels.Anchor
	)
	for i := 0; i < 100; i++ {
		page, err := store.PagedQuery(context.Background(), recordType, source, anchor, limit)
		require.NoError(t, err)
		pages = append(pages, page)
		if page.Len() == 0 {
			return pages
		}
		anchor = page.Anchor
	}
	t.Fatal("paged query never returned an empty page")
	return nil
}

func TestNew(t *testing.T) {
	_, err := New(nil, table)
	assert.True(t, errors.IsValidationError(err))

	_, err = New(newFakeClient(), "")
	assert.True(t, errors.IsValidationError(err))

	_, err = New(newFakeClient(), table, WithIndexMap(IndexMap{PartitionKey: "{Source}", SortKey: "{ID}"}))
	assert.True(t, errors.IsValidationError(err))

	store, err := New(newFakeClient(), table)
	require.NoError(t, err)
	assert.Equal(t, table, store.TableName())
}

func TestSaveAndPagedQuery(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore(t)

	owned := stepSamples(60)
	require.NoError(t, store.Save(ctx, owner, owned))
	require.NoError(t, store.Save(ctx, "other", stepSamples(40)))
	assert.Equal(t, 100, client.count("TYPE#"+stepCount))
	for _, b := range client.batches {
		assert.LessOrEqual(t, len(b.RequestItems[table]), maxBatchWrite)
	}

	pages := drain(t, store, stepCount, owner, 25)
	require.GreaterOrEqual(t, len(pages), 4)
	assert.Equal(t, 25, pages[0].Len(), "page must be filled across filtered items")
	assert.Equal(t, 0, pages[len(pages)-1].Len())

	want := make(map[string]records.Record, len(owned))
	for _, r := range owned {
		want[records.IDOf(r).String()] = r
	}
	got := 0
	for _, p := range pages {
		for _, r := range p.Records {
			assert.Equal(t, owner, r.Source)
			assert.Equal(t, stepCount, r.RecordType)
			require.Contains(t, want, r.ID)
			assert.Equal(t, want[r.ID], r.Record)
			delete(want, r.ID)
			got++
		}
	}
	assert.Equal(t, 60, got)
	assert.Empty(t, want)
}

func TestPagedQueryResumesAfterAnchor(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore(t)
	require.NoError(t, store.Save(ctx, owner, stepSamples(10)))

	first, err := store.PagedQuery(ctx, stepCount, owner, storagemodels.Anchor{}, 4)
	require.NoError(t, err)
	require.Equal(t, 4, first.Len())
	assert.False(t, first.Anchor.IsExhausted())

	second, err := store.PagedQuery(ctx, stepCount, owner, first.Anchor, 4)
	require.NoError(t, err)
	require.Equal(t, 4, second.Len())
	assert.Less(t, first.Records[3].ID, second.Records[0].ID)

	last := client.queries[len(client.queries)-1]
	assert.Equal(t, first.Anchor.Key(), last.ExclusiveStartKey)
	assert.Equal(t, "TYPE#"+stepCount, last.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value)
}

func TestPagedQueryExhaustedAnchor(t *testing.T) {
	store, client := newTestStore(t)

	page, err := store.PagedQuery(context.Background(), stepCount, owner, storagemodels.ExhaustedAnchor(), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Len())
	assert.True(t, page.Anchor.IsExhausted())
	assert.Empty(t, client.queries)
}

func TestPagedQueryError(t *testing.T) {
	store, client := newTestStore(t)
	client.queryErr = fmt.Errorf("throttled")

	_, err := store.PagedQuery(context.Background(), stepCount, owner, storagemodels.Anchor{}, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, client.queryErr)

	_, err = store.PagedQuery(context.Background(), stepCount, "", storagemodels.Anchor{}, 10)
	assert.True(t, errors.IsValidationError(err))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore(t)
	require.NoError(t, store.Save(ctx, owner, stepSamples(30)))

	page, err := store.PagedQuery(ctx, stepCount, owner, storagemodels.Anchor{}, 30)
	require.NoError(t, err)
	require.Equal(t, 30, page.Len())

	// Duplicates are sent once.
	require.NoError(t, store.Delete(ctx, append(page.Records, page.Records[0])))
	assert.Equal(t, 0, client.count("TYPE#"+stepCount))

	sent := 0
	for _, b := range client.batches {
		sent += len(b.RequestItems[table])
	}
	assert.Equal(t, 60, sent, "30 puts and 30 deletes")

	err = store.Delete(ctx, []storagemodels.StoredRecord{{RecordType: stepCount}})
	assert.Error(t, err)
}

func TestBatchWriteResubmitsUnprocessed(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore(t)
	client.unprocessed = 3

	require.NoError(t, store.Save(ctx, owner, stepSamples(10)))
	assert.Len(t, client.batches, 2)
	assert.Len(t, client.batches[1].RequestItems[table], 3)
	assert.Equal(t, 10, client.count("TYPE#"+stepCount))
}

func TestBatchWriteGivesUp(t *testing.T) {
	store, client := newTestStore(t)
	client.unprocessed = 1000

	err := store.Save(context.Background(), owner, stepSamples(5))
	require.Error(t, err)
	assert.Len(t, client.batches, maxUnprocessedRounds)
}

func TestBatchWriteError(t *testing.T) {
	store, client := newTestStore(t)
	client.batchErr = fmt.Errorf("access denied")

	err := store.Save(context.Background(), owner, stepSamples(1))
	assert.ErrorIs(t, err, client.batchErr)

	err = store.Save(context.Background(), "", stepSamples(1))
	assert.True(t, errors.IsValidationError(err))
}

func TestDecodeStoredPayloads(t *testing.T) {
	store, client := newTestStore(t)

	put := func(entityType, id string, payload map[string]any) {
		item, err := attributevalue.MarshalMap(sampleItem{EntityType: entityType, Source: owner, ID: id, Payload: payload})
		require.NoError(t, err)
		item[PartitionKey] = &types.AttributeValueMemberS{Value: "TYPE#" + entityType}
		item[SortKey] = &types.AttributeValueMemberS{Value: id}
		client.put(item)
	}
	put("HKUnknownTypeIdentifier", "a", map[string]any{"x": 1.0})
	put(stepCount, "b", map[string]any{"sdate": 1.0})
	client.put(map[string]types.AttributeValue{
		PartitionKey: &types.AttributeValueMemberS{Value: "TYPE#" + stepCount},
		SortKey:      &types.AttributeValueMemberS{Value: "c"},
		AttrSource:   &types.AttributeValueMemberS{Value: owner},
	})

	page, err := store.PagedQuery(context.Background(), "HKUnknownTypeIdentifier", owner, storagemodels.Anchor{}, 10)
	require.NoError(t, err)
	require.Equal(t, 1, page.Len())
	unknown, ok := page.Records[0].Record.(*records.Unrecognized)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"x": 1.0}, unknown.Raw)

	page, err = store.PagedQuery(context.Background(), stepCount, owner, storagemodels.Anchor{}, 10)
	require.NoError(t, err)
	require.Equal(t, 1, page.Len(), "item without EntityType is skipped")
	assert.Equal(t, "b", page.Records[0].ID)
	assert.Nil(t, page.Records[0].Record, "malformed payload stays deletable")
}

func TestIndexMap(t *testing.T) {
	tests := []struct {
		name    string
		m       IndexMap
		wantErr bool
	}{
		{"default", DefaultIndexMap, false},
		{"prefixed sort key", IndexMap{PartitionKey: "HEALTH#{RecordType}", SortKey: "SAMPLE#{ID}"}, false},
		{"missing sort key", IndexMap{PartitionKey: "{RecordType}"}, true},
		{"missing partition key", IndexMap{SortKey: "{ID}"}, true},
		{"partition key per record", IndexMap{PartitionKey: "{RecordType}#{ID}", SortKey: "{ID}"}, true},
		{"sort key without id", IndexMap{PartitionKey: "{RecordType}", SortKey: "{Source}"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	key, err := DefaultIndexMap.key(storagemodels.StoredRecord{RecordType: stepCount, ID: "42", Source: owner})
	require.NoError(t, err)
	assert.Equal(t, "TYPE#"+stepCount, key[PartitionKey].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "42", key[SortKey].(*types.AttributeValueMemberS).Value)

	_, err = expand("{ID}", map[string]string{})
	assert.True(t, errors.IsValidationError(err))
}

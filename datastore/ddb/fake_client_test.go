/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"sync"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient is an in-memory table that evaluates Query the way DynamoDB
// does: Limit counts evaluated items, the filter runs afterwards, and
// LastEvaluatedKey is set whenever Limit was reached.
type fakeClient struct {
	mu sync.Mutex

	// partitions holds items per PK in sort key order of insertion.
	partitions map[string][]map[string]types.AttributeValue

	queryErr    error
	batchErr    error
	unprocessed int // requests held back on the next BatchWriteItem call

	queries []*sdk.QueryInput
	batches []*sdk.BatchWriteItemInput
}

func newFakeClient() *fakeClient {
	return &fakeClient{partitions: make(map[string][]map[string]types.AttributeValue)}
}

func str(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeClient) Query(_ context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *in
	f.queries = append(f.queries, &copied)
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	pkName := in.ExpressionAttributeNames["#pk"]
	srcName := in.ExpressionAttributeNames["#src"]
	pk := str(in.ExpressionAttributeValues[":pk"])
	src := str(in.ExpressionAttributeValues[":src"])
	items := f.partitions[pk]

	start := 0
	if len(in.ExclusiveStartKey) > 0 {
		if str(in.ExclusiveStartKey[pkName]) != pk {
			return nil, fmt.Errorf("ExclusiveStartKey outside the queried partition")
		}
		after := str(in.ExclusiveStartKey[SortKey])
		start = len(items)
		for i, item := range items {
			if str(item[SortKey]) > after {
				start = i
				break
			}
		}
	}

	limit := len(items)
	if in.Limit != nil {
		limit = int(*in.Limit)
	}

	out := &sdk.QueryOutput{}
	evaluated := 0
	for i := start; i < len(items) && evaluated < limit; i++ {
		evaluated++
		item := items[i]
		if str(item[srcName]) == src {
			out.Items = append(out.Items, item)
		}
		if evaluated == limit {
			out.LastEvaluatedKey = map[string]types.AttributeValue{
				PartitionKey: item[PartitionKey],
				SortKey:      item[SortKey],
			}
		}
	}
	return out, nil
}

func (f *fakeClient) BatchWriteItem(_ context.Context, in *sdk.BatchWriteItemInput, _ ...func(*sdk.Options)) (*sdk.BatchWriteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.batches = append(f.batches, in)
	if f.batchErr != nil {
		return nil, f.batchErr
	}

	out := &sdk.BatchWriteItemOutput{UnprocessedItems: map[string][]types.WriteRequest{}}
	for table, requests := range in.RequestItems {
		if len(requests) > maxBatchWrite {
			return nil, fmt.Errorf("too many requests: %d", len(requests))
		}
		held := min(f.unprocessed, len(requests))
		f.unprocessed -= held
		if held > 0 {
			out.UnprocessedItems[table] = requests[len(requests)-held:]
		}
		for _, r := range requests[:len(requests)-held] {
			switch {
			case r.PutRequest != nil:
				f.put(r.PutRequest.Item)
			case r.DeleteRequest != nil:
				f.delete(r.DeleteRequest.Key)
			}
		}
	}
	return out, nil
}

func (f *fakeClient) put(item map[string]types.AttributeValue) {
	pk, sk := str(item[PartitionKey]), str(item[SortKey])
	items := f.partitions[pk]
	for i, existing := range items {
		switch s := str(existing[SortKey]); {
		case s == sk:
			items[i] = item
			return
		case s > sk:
			items = append(items[:i], append([]map[string]types.AttributeValue{item}, items[i:]...)...)
			f.partitions[pk] = items
			return
		}
	}
	f.partitions[pk] = append(items, item)
}

func (f *fakeClient) delete(key map[string]types.AttributeValue) {
	pk, sk := str(key[PartitionKey]), str(key[SortKey])
	items := f.partitions[pk]
	for i, existing := range items {
		if str(existing[SortKey]) == sk {
			f.partitions[pk] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

func (f *fakeClient) count(pk string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.partitions[pk])
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/healthprofile/errors"
	"github.com/suparena/healthprofile/records"
	"github.com/suparena/healthprofile/storagemodels"
)

const (
	// maxBatchWrite is the most requests BatchWriteItem accepts at once.
	maxBatchWrite = 25

	// maxUnprocessedRounds bounds how often unprocessed items of one chunk
	// are resubmitted.
	maxUnprocessedRounds = 5
)

// Delete removes the given records. Records that are not stored are ignored
// by DynamoDB.
func (s *SampleStore) Delete(ctx context.Context, recs []storagemodels.StoredRecord) error {
	requests := make([]types.WriteRequest, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		key, err := s.indexMap.key(r)
		if err != nil {
			return fmt.Errorf("failed to build key for Delete: %w", err)
		}
		if dedupe(seen, key) {
			continue
		}
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: key},
		})
	}
	return s.batchWrite(ctx, requests)
}

// Save writes recs as owned by source. A record without a UUID is stored
// under a new random id.
func (s *SampleStore) Save(ctx context.Context, source string, recs []records.Record) error {
	if source == "" {
		return errors.NewValidationError("source", "must not be empty")
	}

	requests := make([]types.WriteRequest, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		_, item, err := s.encode(source, rec)
		if err != nil {
			return err
		}
		if dedupe(seen, map[string]types.AttributeValue{PartitionKey: item[PartitionKey], SortKey: item[SortKey]}) {
			continue
		}
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}
	return s.batchWrite(ctx, requests)
}

// batchWrite sends requests in chunks of maxBatchWrite and resubmits what
// DynamoDB reports as unprocessed.
func (s *SampleStore) batchWrite(ctx context.Context, requests []types.WriteRequest) error {
	for start := 0; start < len(requests); start += maxBatchWrite {
		pending := map[string][]types.WriteRequest{
			s.tableName: requests[start:min(start+maxBatchWrite, len(requests))],
		}

		for round := 0; len(pending[s.tableName]) > 0; round++ {
			if round == maxUnprocessedRounds {
				return fmt.Errorf("BatchWriteItem left %d requests unprocessed", len(pending[s.tableName]))
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			out, err := s.client.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return fmt.Errorf("BatchWriteItem failed: %w", err)
			}
			pending = out.UnprocessedItems
			if n := len(pending[s.tableName]); n > 0 {
				s.log.Debug("resubmitting unprocessed items", zap.Int("count", n), zap.Int("round", round+1))
			}
		}
	}
	return nil
}

// dedupe reports whether key was already seen, and marks it seen.
// BatchWriteItem rejects a batch that names one key twice.
func dedupe(seen map[string]struct{}, key map[string]types.AttributeValue) bool {
	var pk, sk string
	if v, ok := key[PartitionKey].(*types.AttributeValueMemberS); ok {
		pk = v.Value
	}
	if v, ok := key[SortKey].(*types.AttributeValueMemberS); ok {
		sk = v.Value
	}
	id := pk + "\x00" + sk
	if _, ok := seen[id]; ok {
		return true
	}
	seen[id] = struct{}{}
	return false
}

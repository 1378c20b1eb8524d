/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/healthprofile/storagemodels"
)

// PagedQuery returns up to limit records of recordType owned by source,
// starting after anchor.
//
// DynamoDB applies Limit before the Source filter, so one Query call may
// return fewer owned records than asked for while more remain. PagedQuery
// keeps querying until the page is full or the partition is exhausted.
func (s *SampleStore) PagedQuery(ctx context.Context, recordType, source string, anchor storagemodels.Anchor, limit int32) (storagemodels.Page, error) {
	params := storagemodels.QueryParams{RecordType: recordType, Source: source, Anchor: anchor, Limit: limit}
	if err := params.Validate(); err != nil {
		return storagemodels.Page{}, err
	}
	if params.Anchor.IsExhausted() {
		return storagemodels.Page{Anchor: params.Anchor}, nil
	}

	input, err := s.buildQueryInput(params)
	if err != nil {
		return storagemodels.Page{}, err
	}

	var page storagemodels.Page
	for {
		input.Limit = aws.Int32(params.Limit - int32(len(page.Records)))

		out, err := s.client.Query(ctx, input)
		if err != nil {
			return storagemodels.Page{}, fmt.Errorf("query error: %w", err)
		}

		for _, item := range out.Items {
			stored, err := s.decode(item)
			if err != nil {
				s.log.Warn("skipping undecodable item", zap.String("type", recordType), zap.Error(err))
				continue
			}
			page.Records = append(page.Records, stored)
		}

		if len(out.LastEvaluatedKey) == 0 {
			page.Anchor = storagemodels.ExhaustedAnchor()
			return page, nil
		}
		if int32(len(page.Records)) >= params.Limit {
			page.Anchor = storagemodels.AnchorFromKey(out.LastEvaluatedKey)
			return page, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (s *SampleStore) buildQueryInput(params storagemodels.QueryParams) (*sdk.QueryInput, error) {
	pk, err := s.indexMap.partitionValue(params.RecordType)
	if err != nil {
		return nil, err
	}
	return &sdk.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("#pk = :pk"),
		FilterExpression:       aws.String("#src = :src"),
		ExpressionAttributeNames: map[string]string{
			"#pk":  PartitionKey,
			"#src": AttrSource,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":  &types.AttributeValueMemberS{Value: pk},
			":src": &types.AttributeValueMemberS{Value: params.Source},
		},
		ExclusiveStartKey: params.Anchor.Key(),
	}, nil
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/healthprofile/datastore"
	"github.com/suparena/healthprofile/records"
	"github.com/suparena/healthprofile/storagemodels"
)

// Attribute names written next to the table keys.
const (
	AttrEntityType = "EntityType"
	AttrSource     = "Source"
	AttrID         = "ID"
	AttrPayload    = "Payload"
)

// sampleItem is the non-key part of a stored record. Payload holds the
// record's document fields.
type sampleItem struct {
	EntityType string         `dynamodbav:"EntityType"`
	Source     string         `dynamodbav:"Source"`
	ID         string         `dynamodbav:"ID"`
	Payload    map[string]any `dynamodbav:"Payload"`
}

// encode builds the table item of rec owned by source.
func (s *SampleStore) encode(source string, rec records.Record) (storagemodels.StoredRecord, map[string]types.AttributeValue, error) {
	stored := storagemodels.StoredRecord{
		RecordType: rec.Tag(),
		ID:         datastore.RecordID(rec),
		Source:     source,
		Record:     rec,
	}

	av, err := attributevalue.MarshalMap(sampleItem{
		EntityType: stored.RecordType,
		Source:     source,
		ID:         stored.ID,
		Payload:    rec.Fields(),
	})
	if err != nil {
		return stored, nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	key, err := s.indexMap.key(stored)
	if err != nil {
		return stored, nil, err
	}
	for k, v := range key {
		av[k] = v
	}
	return stored, av, nil
}

// decode turns a table item back into a StoredRecord. The payload goes
// through the registry; a payload the registry rejects leaves Record nil so
// the item can still be deleted.
func (s *SampleStore) decode(raw map[string]types.AttributeValue) (storagemodels.StoredRecord, error) {
	var item sampleItem
	if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
		return storagemodels.StoredRecord{}, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	if item.EntityType == "" {
		return storagemodels.StoredRecord{}, fmt.Errorf("missing %s attribute in item", AttrEntityType)
	}
	if item.ID == "" {
		return storagemodels.StoredRecord{}, fmt.Errorf("missing %s attribute in item", AttrID)
	}

	stored := storagemodels.StoredRecord{
		RecordType: item.EntityType,
		ID:         item.ID,
		Source:     item.Source,
	}
	rec, ok, err := s.registry.Reconstruct(item.EntityType, item.Payload)
	if !ok {
		s.log.Debug("stored payload not reconstructed",
			zap.String("type", item.EntityType),
			zap.String("id", item.ID),
			zap.Error(err))
		return stored, nil
	}
	stored.Record = rec
	return stored, nil
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/healthprofile/errors"
	"github.com/suparena/healthprofile/storagemodels"
)

// Key attribute names of the table.
const (
	PartitionKey = "PK"
	SortKey      = "SK"
)

// Macros an IndexMap template may use.
const (
	MacroRecordType = "RecordType"
	MacroID         = "ID"
	MacroSource     = "Source"
)

// IndexMap holds the templates the table keys are built from. Macros such
// as "{RecordType}" are replaced with the stored record's values:
//
//	IndexMap{
//	    PartitionKey: "TYPE#{RecordType}", // Becomes "TYPE#HKWorkoutTypeIdentifier"
//	    SortKey:      "{ID}",              // The record UUID
//	}
//
// The partition key may only depend on the record type, so that one Query
// covers a type.
type IndexMap map[string]string

// DefaultIndexMap is the key layout used unless WithIndexMap says otherwise.
var DefaultIndexMap = IndexMap{
	PartitionKey: "TYPE#{" + MacroRecordType + "}",
	SortKey:      "{" + MacroID + "}",
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// Validate checks that the map has both keys, that the partition key only
// uses {RecordType} and that the sort key identifies a record.
func (m IndexMap) Validate() error {
	pk, ok := m[PartitionKey]
	if !ok || pk == "" {
		return errors.NewValidationError("indexMap", "missing "+PartitionKey+" template")
	}
	sk, ok := m[SortKey]
	if !ok || sk == "" {
		return errors.NewValidationError("indexMap", "missing "+SortKey+" template")
	}
	for _, macro := range macros(pk) {
		if macro != MacroRecordType {
			return errors.NewValidationError("indexMap", fmt.Sprintf("%s template may only use {%s}, found {%s}", PartitionKey, MacroRecordType, macro))
		}
	}
	if !strings.Contains(sk, "{"+MacroID+"}") {
		return errors.NewValidationError("indexMap", fmt.Sprintf("%s template must use {%s}", SortKey, MacroID))
	}
	return nil
}

// partitionValue returns the partition key value of a record type.
func (m IndexMap) partitionValue(recordType string) (string, error) {
	return expand(m[PartitionKey], map[string]string{MacroRecordType: recordType})
}

// key builds the table key of a stored record.
func (m IndexMap) key(rec storagemodels.StoredRecord) (map[string]types.AttributeValue, error) {
	values := map[string]string{
		MacroRecordType: rec.RecordType,
		MacroID:         rec.ID,
		MacroSource:     rec.Source,
	}

	key := make(map[string]types.AttributeValue, 2)
	for _, name := range []string{PartitionKey, SortKey} {
		v, err := expand(m[name], values)
		if err != nil {
			return nil, err
		}
		if v == "" {
			return nil, errors.NewValidationError(name, "expands to an empty key")
		}
		key[name] = &types.AttributeValueMemberS{Value: v}
	}
	return key, nil
}

// expand replaces every macro of template. A macro without a value, or with
// an empty one, is an error.
func expand(template string, values map[string]string) (string, error) {
	var missing string
	expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
		name := strings.Trim(macro, "{}")
		v, ok := values[name]
		if !ok || v == "" {
			if missing == "" {
				missing = name
			}
			return ""
		}
		return v
	})
	if missing != "" {
		return "", errors.NewValidationError(missing, fmt.Sprintf("no value for macro in %q", template))
	}
	return expanded, nil
}

func macros(template string) []string {
	var names []string
	for _, m := range macroPattern.FindAllStringSubmatch(template, -1) {
		names = append(names, m[1])
	}
	return names
}

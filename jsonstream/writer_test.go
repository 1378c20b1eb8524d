/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonstream

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/healthprofile/sink"
)

func TestWriterProducesReadableDocument(t *testing.T) {
	out := sink.NewMemorySink()
	w, err := NewWriter(out, WithBufferSize(32))
	require.NoError(t, err)

	require.NoError(t, w.WriteMetadata("profileName", "Profilname"))
	require.NoError(t, w.WriteMetadata("creationDate", int64(1446760800000)))
	for i := 0; i < 100; i++ {
		require.NoError(t, w.WriteRecord("HKQuantityTypeIdentifierStepCount", map[string]any{
			"sdate": float64(i),
			"edate": float64(i + 1),
			"unit":  "count",
			"value": float64(i * 2),
			"type":  "ignored",
		}))
	}
	assert.Equal(t, 100, w.Records())
	require.NoError(t, w.Close())
	assert.False(t, out.IsOpen())

	doc := out.String()
	assert.True(t, json.Valid([]byte(doc)), doc)

	h := &recordingHandler{}
	require.NoError(t, NewReader().Read(strings.NewReader(doc), h))
	assert.Equal(t, []field{
		{"profileName", "Profilname"},
		{"creationDate", float64(1446760800000)},
	}, h.metadata)
	require.Len(t, h.records, 100)
	assert.Equal(t, "HKQuantityTypeIdentifierStepCount", h.records[99].tag)
	assert.Equal(t, float64(198), h.records[99].fields["value"])
}

func TestWriterWithoutRecords(t *testing.T) {
	out := sink.NewMemorySink()
	w, err := NewWriter(out)
	require.NoError(t, err)
	require.NoError(t, w.WriteMetadata("version", "1"))
	require.NoError(t, w.Close())

	assert.JSONEq(t, `{"version":"1","records":[]}`, out.String())
}

func TestWriterOrdering(t *testing.T) {
	w, err := NewWriter(sink.NewMemorySink())
	require.NoError(t, err)

	assert.Error(t, w.WriteMetadata("records", "x"))
	require.NoError(t, w.WriteRecord("A", nil))
	assert.Error(t, w.WriteMetadata("late", 1))

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.WriteRecord("A", nil), ErrWriterClosed)
	assert.ErrorIs(t, w.WriteMetadata("x", 1), ErrWriterClosed)
}

func TestWriterToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	out := sink.NewFileSink(path)

	w, err := NewWriter(out)
	require.NoError(t, err)
	require.NoError(t, w.WriteRecord("HKWorkoutTypeIdentifier", map[string]any{"duration": 60.0}))
	require.NoError(t, w.Close())

	h := &recordingHandler{}
	require.NoError(t, NewReader().ReadFile(path, h))
	require.Len(t, h.records, 1)
	assert.Equal(t, map[string]any{"duration": 60.0}, h.records[0].fields)
}

// SPDX-License-Identifier: Apache-2.0

package results_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resultsproj/results-mcp/internal/results"
)

func makeRecords(n int) []results.StudentRecord {
	records := make([]results.StudentRecord, n)
	for i := range records {
		records[i] = results.StudentRecord{StudentID: fmt.Sprintf("20B1A%03d", i)}
	}
	return records
}

func TestBatches_Reconstruction(t *testing.T) {
	// Concatenating the batches, in order, reproduces the unbatched
	// sequence exactly, for any size >= 1.
	for _, n := range []int{0, 1, 2, 49, 50, 51, 137} {
		records := makeRecords(n)
		for size := 1; size <= n+2; size++ {
			rebuilt := make([]results.StudentRecord, 0, n)
			for _, batch := range results.Batches(records, size) {
				rebuilt = append(rebuilt, batch...)
			}
			assert.Equal(t, records, rebuilt, "n=%d size=%d", n, size)
		}
	}
}

func TestBatches_Windows(t *testing.T) {
	records := makeRecords(7)

	batches := results.Batches(records, 3)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 3)
	assert.Len(t, batches[1], 3)
	assert.Len(t, batches[2], 1, "final partial window")

	// Every batch except possibly the last is full.
	for i, batch := range batches[:len(batches)-1] {
		assert.Len(t, batch, 3, "batch %d", i)
	}
}

func TestBatches_SizeLargerThanSequence(t *testing.T) {
	records := makeRecords(4)
	batches := results.Batches(records, 10)
	require.Len(t, batches, 1)
	assert.Equal(t, records, batches[0])
}

func TestBatches_EmptySequence(t *testing.T) {
	assert.Nil(t, results.Batches(nil, 5))
	assert.Nil(t, results.Batches([]results.StudentRecord{}, 5))
}

func TestBatches_SizeBelowOneCoerced(t *testing.T) {
	records := makeRecords(3)
	batches := results.Batches(records, 0)
	require.Len(t, batches, 3)
	for i, batch := range batches {
		assert.Len(t, batch, 1, "batch %d", i)
	}
}

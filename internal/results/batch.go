// SPDX-License-Identifier: Apache-2.0

package results

// Batches chunks an ordered record sequence into consecutive windows of
// size records, with a final partial window when the length is not a
// multiple. This is post-hoc chunking of an already fully extracted
// sequence, not incremental parsing: concatenating the returned batches in
// order reproduces the input exactly. The windows alias the input slice; the
// caller must not mutate them. A size below 1 is coerced to 1.
func Batches(records []StudentRecord, size int) [][]StudentRecord {
	if len(records) == 0 {
		return nil
	}
	if size < 1 {
		size = 1
	}
	batches := make([][]StudentRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end:end])
	}
	return batches
}

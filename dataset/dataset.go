// Package dataset loads record values and extracts hit indices.
//
// A dataset is a CSV file with a "value" column; the row position is the
// global record id. The search marks every record whose value equals the
// probed target value.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/grovego/blobstore"
)

// ErrMissingValueColumn indicates a CSV without the required "value"
// column.
var ErrMissingValueColumn = errors.New(`csv missing column "value"`)

// ReadValues parses the "value" column of a CSV stream. Rows with a
// non-integer value are skipped, matching the tolerant ingestion of the
// plan builders that produced the historical datasets.
func ReadValues(r io.Reader) ([]int64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingValueColumn
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	valueCol := -1
	for i, name := range header {
		if name == "value" {
			valueCol = i
			break
		}
	}
	if valueCol < 0 {
		return nil, ErrMissingValueColumn
	}

	var values []int64
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if valueCol >= len(row) {
			continue
		}
		v, err := strconv.ParseInt(row[valueCol], 10, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}

// ReadValuesBlob loads a dataset from a blob store.
func ReadValuesBlob(ctx context.Context, store blobstore.BlobStore, name string) ([]int64, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	return ReadValues(io.NewSectionReader(blob, 0, blob.Size()))
}

// FindTargets returns the set of record ids whose value equals want.
// The bitmap is naturally deduplicated, which the involutive oracle phase
// flip requires.
func FindTargets(values []int64, want int64) *roaring64.Bitmap {
	targets := roaring64.New()
	for i, v := range values {
		if v == want {
			targets.Add(uint64(i))
		}
	}
	return targets
}

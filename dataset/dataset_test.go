package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/grovego/blobstore"
)

func TestReadValues(t *testing.T) {
	csv := strings.Join([]string{
		"id,value",
		"0,10",
		"1,42",
		"2,10",
	}, "\n")

	values, err := ReadValues(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 42, 10}, values)
}

func TestReadValuesSkipsBadRows(t *testing.T) {
	csv := strings.Join([]string{
		"value",
		"7",
		"not-a-number",
		"",
		"9",
	}, "\n")

	values, err := ReadValues(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 9}, values)
}

func TestReadValuesMissingColumn(t *testing.T) {
	_, err := ReadValues(strings.NewReader("id,score\n0,1\n"))
	require.ErrorIs(t, err, ErrMissingValueColumn)

	_, err = ReadValues(strings.NewReader(""))
	require.ErrorIs(t, err, ErrMissingValueColumn)
}

func TestReadValuesBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "data.csv", []byte("value\n1\n2\n3\n")))

	values, err := ReadValuesBlob(ctx, store, "data.csv")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, values)

	_, err = ReadValuesBlob(ctx, store, "missing.csv")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestFindTargets(t *testing.T) {
	values := []int64{5, 1, 5, 9, 5}

	hits := FindTargets(values, 5)
	assert.Equal(t, uint64(3), hits.GetCardinality())
	assert.True(t, hits.Contains(0))
	assert.True(t, hits.Contains(2))
	assert.True(t, hits.Contains(4))
	assert.False(t, hits.Contains(1))

	assert.True(t, FindTargets(values, 99).IsEmpty())
}

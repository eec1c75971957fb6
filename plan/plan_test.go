package plan

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/grovego/blobstore"
	"github.com/hupe1980/grovego/codec"
)

func datasetCSV(values []int64) []byte {
	csv := "id,value\n"
	for i, v := range values {
		csv += fmt.Sprintf("%d,%d\n", i, v)
	}
	return []byte(csv)
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	// k=3: hit at global index 5. k=4: no hit. k=5 is absent.
	require.NoError(t, store.Put(ctx, "data/low_selectivity_data_3.csv",
		datasetCSV([]int64{1, 2, 3, 4, 5, 42, 7, 8})))
	require.NoError(t, store.Put(ctx, "data/low_selectivity_data_4.csv",
		datasetCSV([]int64{1, 2, 3, 4})))

	p, err := Build(ctx, Config{
		Store:         store,
		DatasetPrefix: "data",
		KMin:          3,
		KMax:          5,
		TargetValue:   42,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, p.MeasuredWidth)
	assert.Equal(t, 2000, p.Shots)
	assert.Equal(t, 4, p.BlockBits)
	assert.Equal(t, uint64(16), p.BlockSize)
	require.Len(t, p.Records, 3)

	hit := p.Records[0]
	assert.Equal(t, 3, hit.K)
	assert.Equal(t, Status(""), hit.Status)
	assert.Equal(t, 8, hit.NFile)
	assert.Equal(t, uint64(8), hit.NFormula)
	assert.Equal(t, []uint64{5}, hit.Targets)
	assert.Equal(t, 1, hit.M)
	require.NotNil(t, hit.RepTarget)
	assert.Equal(t, uint64(5), *hit.RepTarget)
	require.NotNil(t, hit.BlockID)
	assert.Equal(t, uint64(0), *hit.BlockID)
	assert.Equal(t, []uint64{5}, hit.LocalTargets)
	assert.True(t, hit.GlobalTargets().Contains(5))

	miss := p.Records[1]
	assert.Equal(t, 4, miss.K)
	assert.Empty(t, miss.Targets)
	assert.Nil(t, miss.RepTarget)
	assert.Nil(t, miss.BlockID)

	absent := p.Records[2]
	assert.Equal(t, 5, absent.K)
	assert.Equal(t, StatusMissingDataset, absent.Status)
}

func TestBuildBlockEncoding(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	// Hit at global index 21 = block 1, local 5 under 4-bit blocks.
	values := make([]int64, 32)
	values[21] = 42
	require.NoError(t, store.Put(ctx, "low_selectivity_data_5.csv", datasetCSV(values)))

	p, err := Build(ctx, Config{
		Store:       store,
		KMin:        5,
		KMax:        5,
		TargetValue: 42,
	})
	require.NoError(t, err)
	require.Len(t, p.Records, 1)

	rec := p.Records[0]
	require.NotNil(t, rec.BlockID)
	assert.Equal(t, uint64(1), *rec.BlockID)
	assert.Equal(t, []uint64{5}, rec.LocalTargets)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	rep := uint64(5)
	blockID := uint64(0)
	p := &Plan{
		KMin:          3,
		KMax:          3,
		TargetValue:   42,
		MeasuredWidth: 10,
		Shots:         2000,
		BlockBits:     4,
		BlockSize:     16,
		Records: []Record{{
			K:            3,
			DatasetPath:  "data/low_selectivity_data_3.csv",
			TargetValue:  42,
			Targets:      []uint64{5},
			M:            1,
			BlockBits:    4,
			BlockSize:    16,
			BlockID:      &blockID,
			LocalTargets: []uint64{5},
			RepTarget:    &rep,
		}},
	}

	require.NoError(t, p.Save(ctx, store, "plans/plan.json", codec.Default))

	loaded, err := Load(ctx, store, "plans/plan.json", codec.Default)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)

	_, err = Load(ctx, store, "plans/missing.json", nil)
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

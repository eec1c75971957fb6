package ddb

import (
	"context"
	"sort"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/grovego/bitorder"
)

// fakeClient keeps items per version and enforces the conditional put.
type fakeClient struct {
	items   map[uint64]map[string]types.AttributeValue
	putErr  error
	putKeys []uint64
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[uint64]map[string]types.AttributeValue)}
}

func (c *fakeClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if c.putErr != nil {
		return nil, c.putErr
	}

	versionAttr := params.Item["version"].(*types.AttributeValueMemberN)
	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return nil, err
	}
	if _, exists := c.items[version]; exists {
		return nil, &types.ConditionalCheckFailedException{}
	}

	c.items[version] = params.Item
	c.putKeys = append(c.putKeys, version)
	return &dynamodb.PutItemOutput{}, nil
}

func (c *fakeClient) Query(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if len(c.items) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}

	versions := make([]uint64, 0, len(c.items))
	for v := range c.items {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] > versions[j] })

	return &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{c.items[versions[0]]},
	}, nil
}

func sampleReport() *bitorder.ProbeReport {
	return &bitorder.ProbeReport{
		MeasuredWidth: 4,
		Shots:         2000,
		Mapping:       bitorder.Mapping{0: 2, 1: 0, 2: 1, 3: 3},
		Top: map[int]bitorder.TopOutcome{
			0: {Bitstring: "0010", Prob: 0.98},
		},
	}
}

func TestStoreSaveAndLatest(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := NewStore(client, "calibrations", "hw-1")

	version, err := store.Save(ctx, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)

	report, version, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
	assert.Equal(t, sampleReport(), report)

	// Versions increase monotonically.
	version, err = store.Save(ctx, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
	assert.Equal(t, []uint64{1, 2}, client.putKeys)
}

func TestStoreLatestEmpty(t *testing.T) {
	store := NewStore(newFakeClient(), "calibrations", "hw-1")

	_, _, err := store.Latest(context.Background())
	require.ErrorIs(t, err, ErrNoCalibration)
}

func TestStoreConcurrentUpdate(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()

	store := NewStore(client, "calibrations", "hw-1")
	_, err := store.Save(ctx, sampleReport())
	require.NoError(t, err)

	// A racing writer claimed the next version between the read and the
	// conditional put.
	client.putErr = &types.ConditionalCheckFailedException{}
	_, err = store.Save(ctx, sampleReport())
	require.ErrorIs(t, err, ErrConcurrentUpdate)
}

package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	for bits := 1; bits <= 10; bits++ {
		size, err := Size(bits)
		require.NoError(t, err)
		assert.Equal(t, uint64(1)<<bits, size)
	}

	for _, bits := range []int{0, -1} {
		_, err := Size(bits)
		var e *ErrInvalidBlockBits
		require.ErrorAs(t, err, &e)
		assert.Equal(t, bits, e.Bits)
	}
}

func TestEncode(t *testing.T) {
	blockID, local, err := Encode(5, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), blockID)
	assert.Equal(t, uint64(5), local)

	blockID, local, err = Encode(21, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), blockID)
	assert.Equal(t, uint64(5), local)

	_, _, err = Encode(5, 0)
	var e *ErrInvalidBlockBits
	require.ErrorAs(t, err, &e)
}

func TestDecode(t *testing.T) {
	global, err := Decode(1, 5, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(21), global)

	_, err = Decode(1, 5, 0)
	var e *ErrInvalidBlockBits
	require.ErrorAs(t, err, &e)
}

func TestRoundTrip(t *testing.T) {
	for bits := 1; bits <= 10; bits++ {
		size, err := Size(bits)
		require.NoError(t, err)

		for global := uint64(0); global < 1024; global++ {
			blockID, local, err := Encode(global, bits)
			require.NoError(t, err)
			assert.Less(t, local, size)
			assert.Equal(t, global>>bits, blockID)

			back, err := Decode(blockID, local, bits)
			require.NoError(t, err)
			assert.Equal(t, global, back)
		}
	}
}

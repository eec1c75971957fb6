package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string             `json:"name"`
	Probs map[string]float64 `json:"probs"`
}

func samplePayload() payload {
	return payload{
		Name: "record-7",
		Probs: map[string]float64{
			"1010000000": 0.47,
			"0000000000": 0.03,
		},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	codecs := []Codec{
		JSON{},
		GoJSON{},
		Compressed(JSON{}, Zstd{}),
		Compressed(GoJSON{}, Zstd{}),
		Compressed(JSON{}, LZ4{}),
		Compressed(GoJSON{}, LZ4{}),
	}

	in := samplePayload()
	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(in)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			var out payload
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestByName(t *testing.T) {
	names := []string{"json", "go-json", "json+zstd", "json+lz4", "go-json+zstd", "go-json+lz4"}
	for _, name := range names {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("gob")
	assert.False(t, ok)
}

func TestCompressedName(t *testing.T) {
	c := Compressed(GoJSON{}, Zstd{})
	assert.Equal(t, "go-json+zstd", c.Name())
}

func TestCompressorRoundTrip(t *testing.T) {
	data := []byte("0000000000111111111100000000001111111111")

	for _, comp := range []Compressor{Zstd{}, LZ4{}} {
		t.Run(comp.Name(), func(t *testing.T) {
			packed, err := comp.Compress(data)
			require.NoError(t, err)

			back, err := comp.Decompress(packed)
			require.NoError(t, err)
			assert.Equal(t, data, back)
		})
	}
}

func TestMustMarshal(t *testing.T) {
	data := MustMarshal(nil, samplePayload())
	assert.NotEmpty(t, data)

	assert.Panics(t, func() {
		MustMarshal(JSON{}, make(chan int))
	})
}

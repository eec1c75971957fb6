package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor compresses encoded bytes. Implementations must be safe for
// concurrent use.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Name() string
}

// Compressed wraps an inner codec with a compressor. Result files carry
// per-record probability tables that compress well; a compressed codec
// keeps them cheap to ship to object storage.
func Compressed(inner Codec, comp Compressor) Codec {
	return compressed{inner: inner, comp: comp}
}

type compressed struct {
	inner Codec
	comp  Compressor
}

func (c compressed) Marshal(v any) ([]byte, error) {
	data, err := c.inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	return c.comp.Compress(data)
}

func (c compressed) Unmarshal(data []byte, v any) error {
	raw, err := c.comp.Decompress(data)
	if err != nil {
		return err
	}
	return c.inner.Unmarshal(raw, v)
}

func (c compressed) Name() string {
	return fmt.Sprintf("%s+%s", c.inner.Name(), c.comp.Name())
}

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	zstdDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
)

// Zstd compresses with klauspost/compress zstd.
type Zstd struct{}

// Compress implements Compressor.
func (Zstd) Compress(data []byte) ([]byte, error) {
	return zstdEncoder.EncodeAll(data, nil), nil
}

// Decompress implements Compressor.
func (Zstd) Decompress(data []byte) ([]byte, error) {
	return zstdDecoder.DecodeAll(data, nil)
}

// Name returns "zstd".
func (Zstd) Name() string { return "zstd" }

// LZ4 compresses with the lz4 frame format.
type LZ4 struct{}

// Compress implements Compressor.
func (LZ4) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress implements Compressor.
func (LZ4) Decompress(data []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}

// Name returns "lz4".
func (LZ4) Name() string { return "lz4" }

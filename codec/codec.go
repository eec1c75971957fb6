// Package codec centralizes encoding of persisted artifacts (experiment
// plans, calibration reports, merged results).
//
// Codec selection is a breaking-change boundary: blobs written by one codec
// may not decode under another, so persisted formats should record the
// codec name and reopen via ByName.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	case "json+zstd":
		return Compressed(JSON{}, Zstd{}), true
	case "json+lz4":
		return Compressed(JSON{}, LZ4{}), true
	case "go-json+zstd":
		return Compressed(GoJSON{}, Zstd{}), true
	case "go-json+lz4":
		return Compressed(GoJSON{}, LZ4{}), true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}

// Default is the default codec used by the library.
var Default Codec = GoJSON{}

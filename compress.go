package kummu

import (
	"bytes"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4"
	"github.com/pkg/errors"
)

// CompressAlgorithm selects how page images are encoded on the swap device.
type CompressAlgorithm uint16

const (
	CompSnappy CompressAlgorithm = iota // default
	CompNone
	CompLz4
)

type Compressor func([]byte) []byte
type DeCompressor func([]byte) ([]byte, error)

var (
	SnappyCompress Compressor = func(in []byte) []byte {
		return snappy.Encode(nil, in)
	}
	SnappyDeCompress DeCompressor = func(in []byte) ([]byte, error) {
		return snappy.Decode(nil, in)
	}
)

var (
	// Lz4Compress returns nil when the stream cannot be produced; the image
	// codec then falls back to storing the raw bytes.
	Lz4Compress Compressor = func(in []byte) []byte {
		buf := &bytes.Buffer{}
		writer := lz4.NewWriter(buf)
		writer.NoChecksum = true
		if _, err := writer.Write(in); err != nil {
			return nil
		}
		if err := writer.Close(); err != nil {
			return nil
		}
		return buf.Bytes()
	}

	Lz4DeCompress DeCompressor = func(in []byte) ([]byte, error) {
		buf := &bytes.Buffer{}
		reader := lz4.NewReader(bytes.NewReader(in))
		_, err := buf.ReadFrom(reader)
		return buf.Bytes(), err
	}
)

// codec returns the compressor pair for alg. CompNone yields nil funcs.
func (alg CompressAlgorithm) codec() (Compressor, DeCompressor, error) {
	switch alg {
	case CompSnappy:
		return SnappyCompress, SnappyDeCompress, nil
	case CompLz4:
		return Lz4Compress, Lz4DeCompress, nil
	case CompNone:
		return nil, nil, nil
	}
	return nil, nil, errors.Errorf("unknown compression algorithm %d", alg)
}

func (alg CompressAlgorithm) String() string {
	switch alg {
	case CompSnappy:
		return "snappy"
	case CompLz4:
		return "lz4"
	case CompNone:
		return "none"
	}
	return "unknown"
}

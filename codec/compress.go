package codec

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression suffixes understood by Decompress.
const (
	SuffixZstd = ".zst"
	SuffixLZ4  = ".lz4"
	SuffixGzip = ".gz"
)

// zstdDecoder is shared; DecodeAll is safe for concurrent use.
var zstdDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))

// Decompress strips a known compression suffix from name and returns the
// remaining name with the decompressed data. Data of an uncompressed name is
// returned unchanged.
func Decompress(name string, data []byte) (string, []byte, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, SuffixZstd):
		out, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return "", nil, fmt.Errorf("codec: zstd %s: %w", name, err)
		}
		return name[:len(name)-len(SuffixZstd)], out, nil
	case strings.HasSuffix(lower, SuffixLZ4):
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return "", nil, fmt.Errorf("codec: lz4 %s: %w", name, err)
		}
		return name[:len(name)-len(SuffixLZ4)], out, nil
	case strings.HasSuffix(lower, SuffixGzip):
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", nil, fmt.Errorf("codec: gzip %s: %w", name, err)
		}
		defer func() { _ = zr.Close() }()
		out, err := io.ReadAll(zr)
		if err != nil {
			return "", nil, fmt.Errorf("codec: gzip %s: %w", name, err)
		}
		return name[:len(name)-len(SuffixGzip)], out, nil
	default:
		return name, data, nil
	}
}

// Package codec decodes catalog files into records.
//
// A catalog file name carries its format and, optionally, a compression
// suffix: "stars.yaml", "dso.json.zst", "comets.yml.lz4". Decode strips the
// compression, picks the format codec and returns one record per entry.
package codec

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/hupe1980/astrocat/record"
)

var (
	// ErrUnknownFormat is returned for a file name without a known format
	// extension.
	ErrUnknownFormat = errors.New("codec: unknown catalog format")
	// ErrMalformed is returned when a document is not a list of mappings or a
	// single mapping.
	ErrMalformed = errors.New("codec: malformed catalog document")
)

// Codec decodes a catalog document.
// Implementations must be safe for concurrent use.
type Codec interface {
	Decode(data []byte) ([]record.Hash, error)
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "yaml":
		return YAML{}, true
	case "json":
		return JSON{}, true
	default:
		return nil, false
	}
}

// ForFile returns the codec for a file name with any compression suffix
// already removed.
func ForFile(name string) (Codec, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".ssc", ".stc", ".dsc":
		return YAML{}, nil
	case ".json":
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Decode decompresses data according to name and decodes it.
func Decode(name string, data []byte) ([]record.Hash, error) {
	base, raw, err := Decompress(name, data)
	if err != nil {
		return nil, err
	}
	c, err := ForFile(base)
	if err != nil {
		return nil, err
	}
	recs, err := c.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return recs, nil
}

// toRecords converts a decoded document into records.
func toRecords(doc any) ([]record.Hash, error) {
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []record.Hash{record.Hash(v)}, nil
	case []any:
		out := make([]record.Hash, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: entry %d is %T", ErrMalformed, i, item)
			}
			out = append(out, record.Hash(m))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: top level is %T", ErrMalformed, doc)
	}
}

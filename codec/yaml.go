package codec

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/astrocat/record"
)

// YAML decodes YAML catalogs. A stream may hold several documents; each is a
// list of entries or a single entry.
type YAML struct{}

// Decode implements Codec.
func (YAML) Decode(data []byte) ([]record.Hash, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var out []record.Hash
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		recs, err := toRecords(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
}

// Name returns "yaml".
func (YAML) Name() string { return "yaml" }

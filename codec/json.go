package codec

import (
	gojson "github.com/goccy/go-json"

	"github.com/hupe1980/astrocat/record"
)

// JSON decodes JSON catalogs backed by github.com/goccy/go-json. The top
// level is an array of entries or a single entry.
type JSON struct{}

// Decode implements Codec.
func (JSON) Decode(data []byte) ([]record.Hash, error) {
	var doc any
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return toRecords(doc)
}

// Name returns "json".
func (JSON) Name() string { return "json" }

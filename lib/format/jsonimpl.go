package format

import (
	"encoding/json"

	"github.com/ValentinKolb/encbench/lib/record"
	gojson "github.com/goccy/go-json"
)

var (
	_ IFormat[record.Product] = (*jsonFormatImpl)(nil)
	_ IFormat[record.Product] = (*goJSONFormatImpl)(nil)
)

// NewJSONFormat creates a new format using the standard library json encoding
func NewJSONFormat() IFormat[record.Product] {
	return &jsonFormatImpl{}
}

// NewGoJSONFormat creates a new format using goccy/go-json, a drop-in
// replacement for encoding/json that produces identical output
func NewGoJSONFormat() IFormat[record.Product] {
	return &goJSONFormatImpl{}
}

// jsonFormatImpl implements the IFormat interface using encoding/json
type jsonFormatImpl struct {
}

// goJSONFormatImpl implements the IFormat interface using goccy/go-json
type goJSONFormatImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see format.IFormat)
// --------------------------------------------------------------------------

func (j jsonFormatImpl) Encode(p *record.Product) ([]byte, error) {
	return json.Marshal(p)
}

func (j jsonFormatImpl) Decode(b []byte, p *record.Product) error {
	return json.Unmarshal(b, p)
}

func (j goJSONFormatImpl) Encode(p *record.Product) ([]byte, error) {
	return gojson.Marshal(p)
}

func (j goJSONFormatImpl) Decode(b []byte, p *record.Product) error {
	return gojson.Unmarshal(b, p)
}

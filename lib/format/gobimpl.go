package format

import (
	"bytes"
	"encoding/gob"

	"github.com/ValentinKolb/encbench/lib/record"
)

// NewGOBFormat creates a new format using Go's binary gob format.
// Every encoded record carries its own type description since a fresh
// encoder is used per record.
func NewGOBFormat() IFormat[record.Product] {
	return &gobFormatImpl{}
}

// gobFormatImpl implements the IFormat interface using gob encoding
type gobFormatImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see format.IFormat)
// --------------------------------------------------------------------------

func (g gobFormatImpl) Encode(p *record.Product) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobFormatImpl) Decode(b []byte, p *record.Product) error {
	buf := bytes.NewBuffer(b)
	dec := gob.NewDecoder(buf)
	return dec.Decode(p)
}

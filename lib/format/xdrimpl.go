package format

import (
	"bytes"
	"fmt"

	"github.com/ValentinKolb/encbench/lib/record"
	"github.com/davecgh/go-xdr/xdr2"
)

var _ IFormat[record.Product] = (*xdrFormatImpl)(nil)

// NewXDRFormat creates a new format using XDR (RFC 4506).
// XDR has a fixed schema given by the field order of the struct: no field
// names or tags are written, every item is padded to a multiple of four bytes.
//
// Decoding is limited to the size of the input, so a corrupt length or
// element count fails instead of allocating what the count claims.
func NewXDRFormat() IFormat[record.Product] {
	return &xdrFormatImpl{}
}

// xdrFormatImpl implements the IFormat interface using davecgh/go-xdr
type xdrFormatImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see format.IFormat)
// --------------------------------------------------------------------------

func (x xdrFormatImpl) Encode(p *record.Product) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := xdr.Marshal(&buf, p); err != nil {
		return nil, fmt.Errorf("xdr serialization failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (x xdrFormatImpl) Decode(b []byte, p *record.Product) error {
	dec := xdr.NewDecoderLimited(bytes.NewReader(b), uint(len(b)))
	n, err := dec.Decode(p)
	if err != nil {
		return fmt.Errorf("xdr deserialization failed: %w", err)
	}
	if n != len(b) {
		return fmt.Errorf("xdr deserialization failed: %d trailing bytes", len(b)-n)
	}
	return nil
}

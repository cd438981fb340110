package format

import (
	"fmt"

	"github.com/ValentinKolb/encbench/lib/record"
	"github.com/fxamacker/cbor/v2"
)

var (
	_ IFormat[record.Product] = (*cborFormatImpl)(nil)
	_ IFormat[record.Product] = (*cborDetFormatImpl)(nil)
)

// NewCBORFormat creates a new format using CBOR (RFC 8949).
// Structs are encoded as maps keyed by the cbor (or json) tag names.
func NewCBORFormat() IFormat[record.Product] {
	return &cborFormatImpl{}
}

// NewCBORDetFormat creates a CBOR format using the core deterministic
// encoding of RFC 8949 section 4.2.1: sorted map keys and the shortest
// float that keeps the value. Decoding rejects duplicate map keys.
func NewCBORDetFormat() IFormat[record.Product] {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor: invalid encoding options: %v", err))
	}
	decMode, err := cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cbor: invalid decoding options: %v", err))
	}
	return &cborDetFormatImpl{enc: encMode, dec: decMode}
}

// cborFormatImpl implements the IFormat interface using fxamacker/cbor
type cborFormatImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see format.IFormat)
// --------------------------------------------------------------------------

func (c cborFormatImpl) Encode(p *record.Product) ([]byte, error) {
	data, err := cbor.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("cbor serialization failed: %w", err)
	}
	return data, nil
}

func (c cborFormatImpl) Decode(b []byte, p *record.Product) error {
	if err := cbor.Unmarshal(b, p); err != nil {
		return fmt.Errorf("cbor deserialization failed: %w", err)
	}
	return nil
}

// cborDetFormatImpl implements the IFormat interface using fxamacker/cbor
// with deterministic encoding options
type cborDetFormatImpl struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func (c cborDetFormatImpl) Encode(p *record.Product) ([]byte, error) {
	data, err := c.enc.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("cbor serialization failed: %w", err)
	}
	return data, nil
}

func (c cborDetFormatImpl) Decode(b []byte, p *record.Product) error {
	if err := c.dec.Unmarshal(b, p); err != nil {
		return fmt.Errorf("cbor deserialization failed: %w", err)
	}
	return nil
}

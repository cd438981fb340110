package format

import (
	"fmt"

	"github.com/ValentinKolb/encbench/lib/record"
	"github.com/vmihailenco/msgpack/v5"
)

var _ IFormat[record.Product] = (*msgpackFormatImpl)(nil)

// NewMsgpackFormat creates a new format using MessagePack.
// The reflection based encoder writes structs as maps keyed by field name.
func NewMsgpackFormat() IFormat[record.Product] {
	return &msgpackFormatImpl{}
}

// msgpackFormatImpl implements the IFormat interface using vmihailenco/msgpack
type msgpackFormatImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see format.IFormat)
// --------------------------------------------------------------------------

func (m msgpackFormatImpl) Encode(p *record.Product) ([]byte, error) {
	data, err := msgpack.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("msgpack serialization failed: %w", err)
	}
	return data, nil
}

func (m msgpackFormatImpl) Decode(b []byte, p *record.Product) error {
	if err := msgpack.Unmarshal(b, p); err != nil {
		return fmt.Errorf("msgpack deserialization failed: %w", err)
	}
	return nil
}

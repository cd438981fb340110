package format

import (
	"github.com/ValentinKolb/encbench/lib/record"
	"github.com/tinylib/msgp/msgp"
)

var _ IFormat[record.Product] = (*msgpFormatImpl)(nil)

// NewMsgpFormat creates a new MessagePack format built on the tinylib/msgp
// runtime. The wire format matches NewMsgpackFormat (a map keyed by field
// name) but the code is written the way msgp's code generator would emit it:
// no reflection, a single allocation per encode.
func NewMsgpFormat() IFormat[record.Product] {
	return &msgpFormatImpl{}
}

// msgpFormatImpl implements the IFormat interface with msgp append/read helpers
type msgpFormatImpl struct {
}

// field names, shared with the msgpack struct tags of record.Product
const (
	msgpFieldID      = "id"
	msgpFieldName    = "name"
	msgpFieldPrice   = "price"
	msgpFieldInStock = "in_stock"
	msgpFieldTags    = "tags"
	msgpFieldCount   = 5
)

// --------------------------------------------------------------------------
// Interface Methods (docu see format.IFormat)
// --------------------------------------------------------------------------

func (m msgpFormatImpl) Encode(p *record.Product) ([]byte, error) {
	o := make([]byte, 0, m.sizeBytes(p))

	o = msgp.AppendMapHeader(o, msgpFieldCount)
	o = msgp.AppendString(o, msgpFieldID)
	o = msgp.AppendUint64(o, p.ID)
	o = msgp.AppendString(o, msgpFieldName)
	o = msgp.AppendString(o, p.Name)
	o = msgp.AppendString(o, msgpFieldPrice)
	o = msgp.AppendFloat64(o, p.Price)
	o = msgp.AppendString(o, msgpFieldInStock)
	o = msgp.AppendBool(o, p.InStock)
	o = msgp.AppendString(o, msgpFieldTags)
	o = msgp.AppendArrayHeader(o, uint32(len(p.Tags)))
	for _, tag := range p.Tags {
		o = msgp.AppendString(o, tag)
	}

	return o, nil
}

func (m msgpFormatImpl) Decode(bts []byte, p *record.Product) error {
	fields, bts, err := msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		return msgp.WrapError(err)
	}

	var field []byte
	for ; fields > 0; fields-- {
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			return msgp.WrapError(err)
		}

		switch msgp.UnsafeString(field) {
		case msgpFieldID:
			p.ID, bts, err = msgp.ReadUint64Bytes(bts)
		case msgpFieldName:
			p.Name, bts, err = msgp.ReadStringBytes(bts)
		case msgpFieldPrice:
			p.Price, bts, err = msgp.ReadFloat64Bytes(bts)
		case msgpFieldInStock:
			p.InStock, bts, err = msgp.ReadBoolBytes(bts)
		case msgpFieldTags:
			bts, err = m.readTags(bts, p)
		default:
			bts, err = msgp.Skip(bts)
		}
		if err != nil {
			return msgp.WrapError(err, string(field))
		}
	}

	if len(bts) != 0 {
		return msgp.WrapError(msgp.ErrShortBytes, "trailing bytes")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// readTags reads the tag array into p.Tags and returns the remaining bytes
func (m msgpFormatImpl) readTags(bts []byte, p *record.Product) ([]byte, error) {
	count, bts, err := msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		return bts, err
	}

	// every string needs at least one byte, reject counts the input cannot hold
	if int(count) > len(bts) {
		return bts, msgp.ErrShortBytes
	}

	// Allocate only if needed
	if cap(p.Tags) >= int(count) {
		p.Tags = p.Tags[:count]
	} else {
		p.Tags = make([]string, count)
	}
	for i := range p.Tags {
		p.Tags[i], bts, err = msgp.ReadStringBytes(bts)
		if err != nil {
			return bts, msgp.WrapError(err, i)
		}
	}
	return bts, nil
}

// sizeBytes returns an upper bound for the encoded size, like a generated Msgsize
func (m msgpFormatImpl) sizeBytes(p *record.Product) int {
	s := msgp.MapHeaderSize +
		msgp.StringPrefixSize + len(msgpFieldID) + msgp.Uint64Size +
		msgp.StringPrefixSize + len(msgpFieldName) + msgp.StringPrefixSize + len(p.Name) +
		msgp.StringPrefixSize + len(msgpFieldPrice) + msgp.Float64Size +
		msgp.StringPrefixSize + len(msgpFieldInStock) + msgp.BoolSize +
		msgp.StringPrefixSize + len(msgpFieldTags) + msgp.ArrayHeaderSize
	for _, tag := range p.Tags {
		s += msgp.StringPrefixSize + len(tag)
	}
	return s
}

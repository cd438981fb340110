package format

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ValentinKolb/encbench/lib/record"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	_ IFormat[record.Product] = (*protoFormatImpl)(nil)
	_ IFormat[ProductProto]   = (*protoPreparedFormatImpl)(nil)
)

// Field numbers of the product message:
//
//	message Product {
//	  uint64 id = 1;
//	  string name = 2;
//	  double price = 3;
//	  bool in_stock = 4;
//	  repeated string tags = 5;
//	}
const (
	protoFieldID      protowire.Number = 1
	protoFieldName    protowire.Number = 2
	protoFieldPrice   protowire.Number = 3
	protoFieldInStock protowire.Number = 4
	protoFieldTags    protowire.Number = 5
)

// ProductProto is the protobuf representation of a product.
// Zero values are not written (proto3 semantics).
type ProductProto struct {
	Id      uint64
	Name    string
	Price   float64
	InStock bool
	Tags    []string
}

// ToProto converts a product into its protobuf representation.
// Strings are copied so the result does not share memory with p.
func ToProto(p *record.Product) ProductProto {
	tags := make([]string, len(p.Tags))
	for i, tag := range p.Tags {
		tags[i] = strings.Clone(tag)
	}
	return ProductProto{
		Id:      p.ID,
		Name:    strings.Clone(p.Name),
		Price:   p.Price,
		InStock: p.InStock,
		Tags:    tags,
	}
}

// ToProtoSlice converts a whole dataset, used to benchmark encoding without conversion cost
func ToProtoSlice(data []record.Product) []ProductProto {
	result := make([]ProductProto, len(data))
	for i := range data {
		result[i] = ToProto(&data[i])
	}
	return result
}

// ProtoKey returns the id of a protobuf product
func ProtoKey(m *ProductProto) uint64 {
	return m.Id
}

// Size returns the size of the encoded message in bytes
func (m *ProductProto) Size() int {
	n := 0
	if m.Id != 0 {
		n += protowire.SizeTag(protoFieldID) + protowire.SizeVarint(m.Id)
	}
	if m.Name != "" {
		n += protowire.SizeTag(protoFieldName) + protowire.SizeBytes(len(m.Name))
	}
	if m.Price != 0 {
		n += protowire.SizeTag(protoFieldPrice) + protowire.SizeFixed64()
	}
	if m.InStock {
		n += protowire.SizeTag(protoFieldInStock) + protowire.SizeVarint(1)
	}
	for _, tag := range m.Tags {
		n += protowire.SizeTag(protoFieldTags) + protowire.SizeBytes(len(tag))
	}
	return n
}

// Marshal encodes the message in protobuf wire format
func (m *ProductProto) Marshal() []byte {
	b := make([]byte, 0, m.Size())
	if m.Id != 0 {
		b = protowire.AppendTag(b, protoFieldID, protowire.VarintType)
		b = protowire.AppendVarint(b, m.Id)
	}
	if m.Name != "" {
		b = protowire.AppendTag(b, protoFieldName, protowire.BytesType)
		b = protowire.AppendString(b, m.Name)
	}
	if m.Price != 0 {
		b = protowire.AppendTag(b, protoFieldPrice, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(m.Price))
	}
	if m.InStock {
		b = protowire.AppendTag(b, protoFieldInStock, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(m.InStock))
	}
	for _, tag := range m.Tags {
		b = protowire.AppendTag(b, protoFieldTags, protowire.BytesType)
		b = protowire.AppendString(b, tag)
	}
	return b
}

// Unmarshal decodes protobuf wire data into m. Unknown fields are skipped.
func (m *ProductProto) Unmarshal(b []byte) error {
	*m = ProductProto{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == protoFieldID && typ == protowire.VarintType:
			m.Id, n = protowire.ConsumeVarint(b)
		case num == protoFieldName && typ == protowire.BytesType:
			m.Name, n = protowire.ConsumeString(b)
		case num == protoFieldPrice && typ == protowire.Fixed64Type:
			var bits uint64
			bits, n = protowire.ConsumeFixed64(b)
			m.Price = math.Float64frombits(bits)
		case num == protoFieldInStock && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			m.InStock = protowire.DecodeBool(v)
		case num == protoFieldTags && typ == protowire.BytesType:
			var tag string
			tag, n = protowire.ConsumeString(b)
			m.Tags = append(m.Tags, tag)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}

// NewProtoFormat creates a new protobuf format starting from record.Product.
// Every encode converts the product into a ProductProto first, so the
// conversion cost is part of the measurement.
func NewProtoFormat() IFormat[record.Product] {
	return &protoFormatImpl{}
}

// NewProtoPreparedFormat creates a new protobuf format working on values that
// were converted before the measurement started (see ToProtoSlice)
func NewProtoPreparedFormat() IFormat[ProductProto] {
	return &protoPreparedFormatImpl{}
}

// protoFormatImpl implements IFormat for record.Product via ProductProto
type protoFormatImpl struct {
}

// protoPreparedFormatImpl implements IFormat for ProductProto
type protoPreparedFormatImpl struct {
}

// errEmptyProto is returned when a nil value is encoded
var errEmptyProto = errors.New("protobuf: nil message")

// --------------------------------------------------------------------------
// Interface Methods (docu see format.IFormat)
// --------------------------------------------------------------------------

func (f protoFormatImpl) Encode(p *record.Product) ([]byte, error) {
	if p == nil {
		return nil, errEmptyProto
	}
	m := ToProto(p)
	return m.Marshal(), nil
}

func (f protoFormatImpl) Decode(b []byte, p *record.Product) error {
	var m ProductProto
	if err := m.Unmarshal(b); err != nil {
		return fmt.Errorf("protobuf deserialization failed: %w", err)
	}
	*p = record.Product{
		ID:      m.Id,
		Name:    m.Name,
		Price:   m.Price,
		InStock: m.InStock,
		Tags:    m.Tags,
	}
	return nil
}

func (f protoPreparedFormatImpl) Encode(m *ProductProto) ([]byte, error) {
	if m == nil {
		return nil, errEmptyProto
	}
	return m.Marshal(), nil
}

func (f protoPreparedFormatImpl) Decode(b []byte, m *ProductProto) error {
	if err := m.Unmarshal(b); err != nil {
		return fmt.Errorf("protobuf deserialization failed: %w", err)
	}
	return nil
}

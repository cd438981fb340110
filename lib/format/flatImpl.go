package format

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/encbench/lib/record"
	flatbuffers "github.com/google/flatbuffers/go"
)

var (
	_ IFormat[record.Product] = (*flatFormatImpl)(nil)
	_ IFormat[record.Product] = (*flatUncheckedFormatImpl)(nil)
)

// NewFlatFormat creates a new format using FlatBuffers.
// Before any field is accessed the buffer is verified: every offset and
// length must point inside the buffer.
func NewFlatFormat() IFormat[record.Product] {
	return &flatFormatImpl{}
}

// NewFlatUncheckedFormat creates a FlatBuffers format that reads fields
// without verifying the buffer first. It produces the same bytes as
// NewFlatFormat and exists to measure the cost of verification.
//
// Decoding malformed input has undefined results: fields may be garbage
// or the runtime may panic with an out of range access. No error is reported.
func NewFlatUncheckedFormat() IFormat[record.Product] {
	return &flatUncheckedFormatImpl{}
}

// flatFormatImpl implements IFormat with verified FlatBuffers access
type flatFormatImpl struct {
}

// flatUncheckedFormatImpl implements IFormat with unverified FlatBuffers access
type flatUncheckedFormatImpl struct {
}

// Table layout of the product, in the order of the schema:
//
//	table Product { id:ulong; name:string; price:double; in_stock:bool; tags:[string]; }
const (
	flatSlotID = iota
	flatSlotName
	flatSlotPrice
	flatSlotInStock
	flatSlotTags
	flatSlotCount
)

// errFlatVerify is wrapped by every verification error
var errFlatVerify = errors.New("flatbuffers: verification failed")

// --------------------------------------------------------------------------
// Interface Methods (docu see format.IFormat)
// --------------------------------------------------------------------------

func (f flatFormatImpl) Encode(p *record.Product) ([]byte, error) {
	return buildFlatProduct(p), nil
}

func (f flatFormatImpl) Decode(b []byte, p *record.Product) error {
	if err := verifyFlatProduct(b); err != nil {
		return err
	}
	readFlatProduct(b, p)
	return nil
}

func (f flatUncheckedFormatImpl) Encode(p *record.Product) ([]byte, error) {
	return buildFlatProduct(p), nil
}

func (f flatUncheckedFormatImpl) Decode(b []byte, p *record.Product) error {
	readFlatProduct(b, p)
	return nil
}

// --------------------------------------------------------------------------
// Builder / Accessors
// --------------------------------------------------------------------------

// buildFlatProduct serializes p into a finished FlatBuffers buffer
func buildFlatProduct(p *record.Product) []byte {
	builder := flatbuffers.NewBuilder(64 + len(p.Name) + 16*len(p.Tags))

	// strings and vectors must be created before the table is started
	name := builder.CreateString(p.Name)

	tagOffsets := make([]flatbuffers.UOffsetT, len(p.Tags))
	for i, tag := range p.Tags {
		tagOffsets[i] = builder.CreateString(tag)
	}
	builder.StartVector(flatbuffers.SizeUOffsetT, len(tagOffsets), flatbuffers.SizeUOffsetT)
	for i := len(tagOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(tagOffsets[i])
	}
	tags := builder.EndVector(len(tagOffsets))

	builder.StartObject(flatSlotCount)
	builder.PrependUint64Slot(flatSlotID, p.ID, 0)
	builder.PrependFloat64Slot(flatSlotPrice, p.Price, 0)
	builder.PrependUOffsetTSlot(flatSlotName, name, 0)
	builder.PrependUOffsetTSlot(flatSlotTags, tags, 0)
	builder.PrependBoolSlot(flatSlotInStock, p.InStock, false)
	root := builder.EndObject()

	builder.Finish(root)
	return builder.FinishedBytes()
}

// vtableOffset returns the position of a slot inside the vtable
func vtableOffset(slot int) flatbuffers.VOffsetT {
	return flatbuffers.VOffsetT((slot + 2) * flatbuffers.SizeVOffsetT)
}

// readFlatProduct reads all fields of the product table in buf into p.
// The buffer is trusted, see verifyFlatProduct. Strings alias buf.
func readFlatProduct(buf []byte, p *record.Product) {
	t := flatbuffers.Table{Bytes: buf, Pos: flatbuffers.GetUOffsetT(buf)}

	*p = record.Product{}
	if o := flatbuffers.UOffsetT(t.Offset(vtableOffset(flatSlotID))); o != 0 {
		p.ID = t.GetUint64(o + t.Pos)
	}
	if o := flatbuffers.UOffsetT(t.Offset(vtableOffset(flatSlotName))); o != 0 {
		p.Name = t.String(o + t.Pos)
	}
	if o := flatbuffers.UOffsetT(t.Offset(vtableOffset(flatSlotPrice))); o != 0 {
		p.Price = t.GetFloat64(o + t.Pos)
	}
	if o := flatbuffers.UOffsetT(t.Offset(vtableOffset(flatSlotInStock))); o != 0 {
		p.InStock = t.GetBool(o + t.Pos)
	}
	if o := flatbuffers.UOffsetT(t.Offset(vtableOffset(flatSlotTags))); o != 0 {
		n := t.VectorLen(o)
		start := t.Vector(o)
		p.Tags = make([]string, n)
		for i := range p.Tags {
			p.Tags[i] = t.String(start + flatbuffers.UOffsetT(i*flatbuffers.SizeUOffsetT))
		}
	}
}

// --------------------------------------------------------------------------
// Verification
// --------------------------------------------------------------------------

// flatVerifier checks that every offset of a product table stays inside buf
type flatVerifier struct {
	buf []byte
}

// verifyFlatProduct checks the structure of a product buffer before it is accessed
func verifyFlatProduct(buf []byte) error {
	v := flatVerifier{buf: buf}
	return v.verifyProduct()
}

// within reports whether size bytes starting at pos are inside the buffer
func (v flatVerifier) within(pos, size int) bool {
	return pos >= 0 && size >= 0 && pos <= len(v.buf) && size <= len(v.buf)-pos
}

func (v flatVerifier) uoffset(pos int) int {
	return int(flatbuffers.GetUOffsetT(v.buf[pos:]))
}

func (v flatVerifier) verifyProduct() error {
	if !v.within(0, flatbuffers.SizeUOffsetT) {
		return fmt.Errorf("%w: buffer too short for root offset", errFlatVerify)
	}

	// table position and alignment
	table := v.uoffset(0)
	if !v.within(table, flatbuffers.SizeSOffsetT) || table%flatbuffers.SizeUOffsetT != 0 {
		return fmt.Errorf("%w: root table out of range", errFlatVerify)
	}

	// vtable header
	vtable := table - int(flatbuffers.GetSOffsetT(v.buf[table:]))
	if !v.within(vtable, 2*flatbuffers.SizeVOffsetT) || vtable%flatbuffers.SizeVOffsetT != 0 {
		return fmt.Errorf("%w: vtable out of range", errFlatVerify)
	}
	vtableSize := int(flatbuffers.GetVOffsetT(v.buf[vtable:]))
	tableSize := int(flatbuffers.GetVOffsetT(v.buf[vtable+flatbuffers.SizeVOffsetT:]))
	if vtableSize < 2*flatbuffers.SizeVOffsetT || vtableSize%flatbuffers.SizeVOffsetT != 0 || !v.within(vtable, vtableSize) {
		return fmt.Errorf("%w: invalid vtable size %d", errFlatVerify, vtableSize)
	}
	if !v.within(table, tableSize) {
		return fmt.Errorf("%w: invalid table size %d", errFlatVerify, tableSize)
	}

	// field returns the offset of a field inside the table, 0 if absent
	field := func(slot int) int {
		o := int(vtableOffset(slot))
		if o+flatbuffers.SizeVOffsetT > vtableSize {
			return 0
		}
		return int(flatbuffers.GetVOffsetT(v.buf[vtable+o:]))
	}

	// scalar fields must fit into the table
	scalars := []struct {
		slot int
		size int
	}{
		{flatSlotID, flatbuffers.SizeUint64},
		{flatSlotPrice, flatbuffers.SizeFloat64},
		{flatSlotInStock, flatbuffers.SizeBool},
	}
	for _, s := range scalars {
		if o := field(s.slot); o != 0 && o+s.size > tableSize {
			return fmt.Errorf("%w: field %d out of table", errFlatVerify, s.slot)
		}
	}

	// name
	if o := field(flatSlotName); o != 0 {
		if o+flatbuffers.SizeUOffsetT > tableSize {
			return fmt.Errorf("%w: name offset out of table", errFlatVerify)
		}
		if err := v.verifyString(table + o); err != nil {
			return fmt.Errorf("name: %w", err)
		}
	}

	// tags
	if o := field(flatSlotTags); o != 0 {
		if o+flatbuffers.SizeUOffsetT > tableSize {
			return fmt.Errorf("%w: tags offset out of table", errFlatVerify)
		}
		vec := table + o + v.uoffset(table+o)
		if !v.within(vec, flatbuffers.SizeUOffsetT) {
			return fmt.Errorf("%w: tags vector out of range", errFlatVerify)
		}
		n := v.uoffset(vec)
		elems := vec + flatbuffers.SizeUOffsetT
		if n > (len(v.buf)-elems)/flatbuffers.SizeUOffsetT {
			return fmt.Errorf("%w: tags vector length %d out of range", errFlatVerify, n)
		}
		for i := 0; i < n; i++ {
			if err := v.verifyString(elems + i*flatbuffers.SizeUOffsetT); err != nil {
				return fmt.Errorf("tag %d: %w", i, err)
			}
		}
	}

	return nil
}

// verifyString checks the string referenced by the offset stored at pos
func (v flatVerifier) verifyString(pos int) error {
	if !v.within(pos, flatbuffers.SizeUOffsetT) {
		return fmt.Errorf("%w: string offset out of range", errFlatVerify)
	}
	str := pos + v.uoffset(pos)
	if !v.within(str, flatbuffers.SizeUOffsetT) {
		return fmt.Errorf("%w: string out of range", errFlatVerify)
	}
	// string bytes plus the null terminator
	if n := v.uoffset(str); !v.within(str+flatbuffers.SizeUOffsetT, n+1) {
		return fmt.Errorf("%w: string length %d out of range", errFlatVerify, n)
	}
	return nil
}

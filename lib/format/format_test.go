package format

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"

	"github.com/ValentinKolb/encbench/lib/record"
)

// testFormats is a map of format name to factory function
var testFormats = map[string]func() IFormat[record.Product]{
	"JSON":          NewJSONFormat,
	"GoJSON":        NewGoJSONFormat,
	"CBOR":          NewCBORFormat,
	"CBORDet":       NewCBORDetFormat,
	"Msgpack":       NewMsgpackFormat,
	"Msgp":          NewMsgpFormat,
	"Proto":         NewProtoFormat,
	"Flat":          NewFlatFormat,
	"FlatUnchecked": NewFlatUncheckedFormat,
	"XDR":           NewXDRFormat,
	"GOB":           NewGOBFormat,
	"Binary":        NewBinaryFormat,
}

// testProducts creates a set of test products with different field values
func testProducts() []record.Product {
	products := []record.Product{
		// typical product
		{ID: 42, Name: "Widget", Price: 19.99, InStock: true, Tags: []string{"benchmark", "test"}},

		// largest id, not in stock
		{ID: ^uint64(0), Name: "abcdefghi", Price: 999.999, InStock: false, Tags: []string{"benchmark", "test"}},

		// multi byte name and tags
		{ID: 1 << 53, Name: "Grüße ☕", Price: 1.0, InStock: true, Tags: []string{"ä", "€uro", "日本"}},

		// single tag
		{ID: 7, Name: "x", Price: 0.5, InStock: true, Tags: []string{"only"}},
	}

	// and some generated ones
	return append(products, record.Generate(50, record.NewRand(7))...)
}

// TestFormatRoundTrip tests that products can be encoded and decoded correctly
func TestFormatRoundTrip(t *testing.T) {
	products := testProducts()

	for name, factory := range testFormats {
		t.Run(name, func(t *testing.T) {
			f := factory()

			for i, p := range products {
				// Encode
				data, err := f.Encode(&p)
				if err != nil {
					t.Errorf("Failed to encode product %d: %v", i, err)
					continue
				}

				// Decode
				var result record.Product
				if err := f.Decode(data, &result); err != nil {
					t.Errorf("Failed to decode product %d: %v", i, err)
					continue
				}

				// Compare
				if !reflect.DeepEqual(p, result) {
					t.Errorf("Product %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, p, result)
				}
			}
		})
	}
}

// TestFormatDeterministic tests that encoding the same product twice yields the same bytes
func TestFormatDeterministic(t *testing.T) {
	products := testProducts()

	for name, factory := range testFormats {
		t.Run(name, func(t *testing.T) {
			f := factory()

			for i, p := range products {
				first, err := f.Encode(&p)
				if err != nil {
					t.Fatalf("Failed to encode product %d: %v", i, err)
				}
				second, err := f.Encode(&p)
				if err != nil {
					t.Fatalf("Failed to encode product %d: %v", i, err)
				}
				if !bytes.Equal(first, second) {
					t.Errorf("Product %d: encoding is not deterministic", i)
				}
			}
		})
	}
}

// TestFormatDoesNotMutateInput makes sure encoding leaves the source product untouched
func TestFormatDoesNotMutateInput(t *testing.T) {
	for name, factory := range testFormats {
		t.Run(name, func(t *testing.T) {
			f := factory()
			p := record.Product{ID: 9, Name: "keep", Price: 3.5, InStock: true, Tags: []string{"benchmark", "test"}}
			original := record.Product{ID: 9, Name: "keep", Price: 3.5, InStock: true, Tags: []string{"benchmark", "test"}}

			if _, err := f.Encode(&p); err != nil {
				t.Fatalf("Failed to encode: %v", err)
			}
			if !reflect.DeepEqual(p, original) {
				t.Errorf("Encode mutated its input: %+v", p)
			}
		})
	}
}

// TestFormatZeroProduct tests the zero value for every format
func TestFormatZeroProduct(t *testing.T) {
	for name, factory := range testFormats {
		t.Run(name, func(t *testing.T) {
			f := factory()

			var p record.Product
			data, err := f.Encode(&p)
			if err != nil {
				t.Fatalf("Failed to encode zero product: %v", err)
			}

			// some formats cannot tell a nil slice from an empty one, only compare the content
			var result record.Product
			if err := f.Decode(data, &result); err != nil {
				t.Fatalf("Failed to decode zero product: %v", err)
			}
			if result.ID != 0 || result.Name != "" || result.Price != 0 || result.InStock || len(result.Tags) != 0 {
				t.Errorf("Zero product doesn't match after round trip: %+v", result)
			}
		})
	}
}

// TestFormatSizeAboveMinimum tests that no format beats the unframed floor on generated data
func TestFormatSizeAboveMinimum(t *testing.T) {
	data := record.Generate(500, record.NewRand(3))
	minimum := record.TheoreticalMinimum(data)

	for name, factory := range testFormats {
		t.Run(name, func(t *testing.T) {
			f := factory()

			total := 0
			for i := range data {
				encoded, err := f.Encode(&data[i])
				if err != nil {
					t.Fatalf("Failed to encode product %d: %v", i, err)
				}
				total += len(encoded)
			}

			if total < minimum {
				t.Errorf("Encoded size %d is below the theoretical minimum %d", total, minimum)
			}
		})
	}
}

// TestInvalidData tests how the formats handle corrupt or truncated data
func TestInvalidData(t *testing.T) {
	p := record.Product{ID: 12345, Name: "abcde", Price: 10.5, InStock: true, Tags: []string{"benchmark", "test"}}

	testCases := []struct {
		name    string
		format  IFormat[record.Product]
		corrupt func([]byte) []byte
	}{
		{"JSON/truncated", NewJSONFormat(), dropLastByte},
		{"JSON/empty", NewJSONFormat(), empty},
		{"GoJSON/truncated", NewGoJSONFormat(), dropLastByte},
		{"CBOR/truncated", NewCBORFormat(), dropLastByte},
		{"CBOR/empty", NewCBORFormat(), empty},
		{"CBORDet/truncated", NewCBORDetFormat(), dropLastByte},
		{"CBORDet/duplicate key", NewCBORDetFormat(), duplicateCBORKey},
		{"Msgpack/truncated", NewMsgpackFormat(), dropLastByte},
		{"Msgp/truncated", NewMsgpFormat(), dropLastByte},
		{"Msgp/empty", NewMsgpFormat(), empty},
		{"Msgp/trailing", NewMsgpFormat(), appendByte},
		{"Proto/truncated", NewProtoFormat(), dropLastByte},
		{"Proto/bad tag", NewProtoFormat(), func([]byte) []byte { return []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff} }},
		{"Flat/half", NewFlatFormat(), half},
		{"Flat/empty", NewFlatFormat(), empty},
		{"Flat/bad root", NewFlatFormat(), badRoot},
		{"XDR/truncated", NewXDRFormat(), dropLastByte},
		{"XDR/huge tag count", NewXDRFormat(), xdrCount(xdrTagCountOffset)},
		{"XDR/huge name length", NewXDRFormat(), xdrCount(xdrNameLenOffset)},
		{"XDR/trailing", NewXDRFormat(), func(b []byte) []byte { return append(append([]byte{}, b...), 0, 0, 0, 0) }},
		{"GOB/truncated", NewGOBFormat(), dropLastByte},
		{"GOB/empty", NewGOBFormat(), empty},
		{"Binary/truncated", NewBinaryFormat(), dropLastByte},
		{"Binary/empty", NewBinaryFormat(), empty},
		{"Binary/trailing", NewBinaryFormat(), appendByte},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := tc.format.Encode(&p)
			if err != nil {
				t.Fatalf("Failed to encode: %v", err)
			}

			var result record.Product
			if err := tc.format.Decode(tc.corrupt(data), &result); err == nil {
				t.Errorf("Expected error but got none (result %+v)", result)
			}
		})
	}
}

// TestInvalidBinaryData tests specific malformed inputs for the binary format
func TestInvalidBinaryData(t *testing.T) {
	f := NewBinaryFormat()

	header := func(flag byte) []byte {
		data := make([]byte, fixedHeaderSize)
		data[16] = flag
		return data
	}

	testCases := []struct {
		name        string
		data        []byte
		expectError bool
	}{
		{
			name:        "Too short header",
			data:        header(0),
			expectError: true,
		},
		{
			name:        "Valid empty product",
			data:        append(header(1), 0, 0, 0, 0, 0, 0, 0, 0),
			expectError: false,
		},
		{
			name:        "Invalid flag",
			data:        append(header(2), 0, 0, 0, 0, 0, 0, 0, 0),
			expectError: true,
		},
		{
			name:        "Invalid length for name",
			data:        append(header(0), 0, 0, 0, 5, 'a', 'b', 'c', 0, 0, 0, 0), // Claims name length 5 but only 3 bytes before tag count
			expectError: true,
		},
		{
			name:        "Too many tags",
			data:        append(header(0), 0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff),
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p record.Product
			err := f.Decode(tc.data, &p)

			if tc.expectError && err == nil {
				t.Errorf("Expected error but got none")
			} else if !tc.expectError && err != nil {
				t.Errorf("Did not expect error but got: %v", err)
			}
		})
	}
}

// TestFlatVariantsShareWireFormat tests that the checked and unchecked FlatBuffers formats are interchangeable
func TestFlatVariantsShareWireFormat(t *testing.T) {
	checked, unchecked := NewFlatFormat(), NewFlatUncheckedFormat()

	for i, p := range testProducts() {
		a, err := checked.Encode(&p)
		if err != nil {
			t.Fatalf("Failed to encode product %d: %v", i, err)
		}
		b, err := unchecked.Encode(&p)
		if err != nil {
			t.Fatalf("Failed to encode product %d: %v", i, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("Product %d: checked and unchecked encodings differ", i)
		}

		var viaChecked, viaUnchecked record.Product
		if err := checked.Decode(b, &viaChecked); err != nil {
			t.Errorf("Product %d: checked decode failed: %v", i, err)
		}
		if err := unchecked.Decode(a, &viaUnchecked); err != nil {
			t.Errorf("Product %d: unchecked decode failed: %v", i, err)
		}
		if !reflect.DeepEqual(viaChecked, viaUnchecked) {
			t.Errorf("Product %d: decoded values differ: %+v vs %+v", i, viaChecked, viaUnchecked)
		}
	}
}

// TestProtoVariantsShareWireFormat tests that converting up front does not change the encoding
func TestProtoVariantsShareWireFormat(t *testing.T) {
	products := testProducts()
	prepared := ToProtoSlice(products)

	direct, pre := NewProtoFormat(), NewProtoPreparedFormat()
	for i := range products {
		a, err := direct.Encode(&products[i])
		if err != nil {
			t.Fatalf("Failed to encode product %d: %v", i, err)
		}
		b, err := pre.Encode(&prepared[i])
		if err != nil {
			t.Fatalf("Failed to encode prepared product %d: %v", i, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("Product %d: encodings differ", i)
		}

		var m ProductProto
		if err := pre.Decode(a, &m); err != nil {
			t.Fatalf("Failed to decode product %d: %v", i, err)
		}
		if ProtoKey(&m) != products[i].ID {
			t.Errorf("Product %d: expected id %d, got %d", i, products[i].ID, m.Id)
		}
		if len(a) != m.Size() {
			t.Errorf("Product %d: Size() reports %d but encoding has %d bytes", i, m.Size(), len(a))
		}
	}
}

// TestProtoWireBytes checks the encoding against hand assembled protobuf bytes
func TestProtoWireBytes(t *testing.T) {
	m := ProductProto{Id: 1, Name: "ab", InStock: true, Tags: []string{"x"}}
	expected := []byte{
		0x08, 0x01, // id = 1
		0x12, 0x02, 'a', 'b', // name = "ab"
		0x20, 0x01, // in_stock = true
		0x2a, 0x01, 'x', // tags = ["x"]
	}

	if got := m.Marshal(); !bytes.Equal(got, expected) {
		t.Errorf("expected % x, got % x", expected, got)
	}
}

// TestProtoSkipsUnknownFields tests forward compatibility of the decoder
func TestProtoSkipsUnknownFields(t *testing.T) {
	data := []byte{
		0x08, 0x2a, // id = 42
		0x30, 0x07, // unknown field 6 = 7
		0x12, 0x01, 'z', // name = "z"
	}

	var m ProductProto
	if err := m.Unmarshal(data); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if m.Id != 42 || m.Name != "z" {
		t.Errorf("unexpected result %+v", m)
	}
}

// TestToProtoCopies tests that the converted value does not alias the source tags
func TestToProtoCopies(t *testing.T) {
	p := record.Product{ID: 1, Name: "n", Tags: []string{"a", "b"}}
	m := ToProto(&p)
	m.Tags[0] = "changed"

	if p.Tags[0] != "a" {
		t.Errorf("ToProto shares the tag slice with its source")
	}
}

// TestMsgpackInterop tests that both MessagePack implementations read each other's output
func TestMsgpackInterop(t *testing.T) {
	reflective, generated := NewMsgpackFormat(), NewMsgpFormat()

	for i, p := range testProducts() {
		a, err := reflective.Encode(&p)
		if err != nil {
			t.Fatalf("Failed to encode product %d: %v", i, err)
		}
		b, err := generated.Encode(&p)
		if err != nil {
			t.Fatalf("Failed to encode product %d: %v", i, err)
		}

		var fromReflective, fromGenerated record.Product
		if err := generated.Decode(a, &fromReflective); err != nil {
			t.Errorf("Product %d: msgp failed to read msgpack output: %v", i, err)
		}
		if err := reflective.Decode(b, &fromGenerated); err != nil {
			t.Errorf("Product %d: msgpack failed to read msgp output: %v", i, err)
		}
		if !reflect.DeepEqual(fromReflective, p) || !reflect.DeepEqual(fromGenerated, p) {
			t.Errorf("Product %d doesn't match after cross decoding", i)
		}
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func dropLastByte(b []byte) []byte { return b[:len(b)-1] }

func empty([]byte) []byte { return []byte{} }

func half(b []byte) []byte { return b[:len(b)/2] }

func appendByte(b []byte) []byte { return append(append([]byte{}, b...), 0) }

// XDR offsets of the product used in TestInvalidData ("abcde" is padded to 8 bytes)
const (
	xdrNameLenOffset  = 8                // after id
	xdrTagCountOffset = 8 + 4 + 8 + 8 + 4 // after id, name, price, in_stock
)

// xdrCount overwrites the 4 byte count at offset with a huge value
func xdrCount(offset int) func([]byte) []byte {
	return func(b []byte) []byte {
		c := append([]byte{}, b...)
		binary.BigEndian.PutUint32(c[offset:], 0x7e000002)
		return c
	}
}

// duplicateCBORKey prepends a second "id" entry to the encoded map
func duplicateCBORKey(b []byte) []byte {
	// b[0] is the map header with 5 entries (0xa5), 0xa6 announces 6
	c := []byte{0xa6, 0x62, 'i', 'd', 0x01}
	return append(c, b[1:]...)
}

// badRoot points the root offset behind the end of the buffer
func badRoot(b []byte) []byte {
	c := append([]byte{}, b...)
	c[0], c[1], c[2], c[3] = 0xf0, 0xff, 0xff, 0x7f
	return c
}

// Package format provides the serialization formats compared by the benchmark.
// It defines a common interface and one implementation per format; every
// implementation is a thin layer over the library doing the actual work.
//
// Key Components:
//
//   - IFormat: Core interface that all formats must satisfy. It is generic over
//     the in-memory type a format starts from, which is record.Product for all
//     formats except the prepared protobuf variant.
//
//   - Text formats: JSON via encoding/json and via goccy/go-json.
//
//   - Self describing binary formats: CBOR (fxamacker/cbor), MessagePack via
//     vmihailenco/msgpack (reflection) and via the tinylib/msgp runtime
//     (generated-code style), and Go's gob encoding.
//
//   - Schema based binary formats: Protobuf wire format (protowire), XDR
//     (davecgh/go-xdr), FlatBuffers and a custom binary layout.
//
// Variants:
//
//   - Protobuf is offered twice. NewProtoFormat converts each product into a
//     ProductProto inside Encode, NewProtoPreparedFormat works on values that
//     were converted up front (ToProtoSlice). The difference between both is the
//     conversion overhead.
//
//   - FlatBuffers is offered twice. NewFlatFormat verifies every buffer before
//     reading it, NewFlatUncheckedFormat reads without verification and gives no
//     guarantees for malformed input. The difference between both is the cost of
//     verification.
//
// Thread Safety:
//
//	All formats are stateless and safe for concurrent use across multiple
//	goroutines without additional synchronization.
//
// Usage:
//
//	f := format.NewCBORFormat()
//	data, err := f.Encode(&product)
//	// ...
//	var decoded record.Product
//	err = f.Decode(data, &decoded)
package format

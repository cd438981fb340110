package format

// IFormat is the interface for all benchmarked serialization formats.
// T is the in-memory type the format starts from: most formats encode
// record.Product directly, some work on their own representation.
type IFormat[T any] interface {
	// Encode serializes a value into a byte array.
	// The output is deterministic for a given value.
	Encode(v *T) ([]byte, error)
	// Decode deserializes a byte array produced by Encode into v.
	// It returns an error if the data is malformed.
	Decode(b []byte, v *T) error
}

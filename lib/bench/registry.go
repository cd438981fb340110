package bench

import (
	"strings"

	"github.com/ValentinKolb/encbench/lib/format"
	"github.com/ValentinKolb/encbench/lib/record"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rotisserie/eris"
)

// ErrUnknownFormat is returned when a format key is not registered
var ErrUnknownFormat = eris.New("unknown format")

// Entry is a named format as seen by the runner. The type parameter of the
// underlying format is hidden behind closures so entries of different
// in-memory types can live in one registry.
type Entry struct {
	// Key is the short identifier used on the command line (e.g. "proto-nocopy")
	Key string
	// Name is the display name used in the report (e.g. "└ No Copies")
	Name string

	run   func(data []record.Product, opts Options) (Result, error)
	sizes func(data []record.Product, observe func(size int)) error
}

// NewEntry creates an entry for a format working on T. prepare converts the
// dataset into T before any timing starts, key returns the id of a T that is
// compared after every round trip.
func NewEntry[T any](key, name string, f format.IFormat[T], prepare func([]record.Product) []T, id func(*T) uint64) Entry {
	e := Entry{Key: key, Name: name}

	e.run = func(data []record.Product, opts Options) (Result, error) {
		items := prepare(data)
		return measure(e, items, f, id, opts)
	}

	e.sizes = func(data []record.Product, observe func(size int)) error {
		items := prepare(data)
		for i := range items {
			encoded, err := f.Encode(&items[i])
			if err != nil {
				return eris.Wrapf(ErrEncode, "format %s, record %d: %v", name, i, err)
			}
			observe(len(encoded))
		}
		return nil
	}

	return e
}

// NewProductEntry creates an entry for a format that encodes record.Product directly
func NewProductEntry(key, name string, f format.IFormat[record.Product]) Entry {
	return NewEntry(key, name, f, identity, record.Key)
}

func identity(data []record.Product) []record.Product {
	return data
}

// --------------------------------------------------------------------------
// Registry
// --------------------------------------------------------------------------

// Registry is an ordered collection of entries. The order of registration is
// the order in which formats are measured and reported.
type Registry struct {
	entries []Entry
	index   *xsync.MapOf[string, int]
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		index: xsync.NewMapOf[string, int](),
	}
}

// Register appends an entry. Keys are case-insensitive and must be unique.
func (r *Registry) Register(e Entry) error {
	key := strings.ToLower(e.Key)
	if key == "" {
		return eris.Errorf("format %q has no key", e.Name)
	}
	if _, loaded := r.index.LoadOrStore(key, len(r.entries)); loaded {
		return eris.Errorf("format %q is already registered", e.Key)
	}
	r.entries = append(r.entries, e)
	return nil
}

// Entries returns all entries in registration order
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup returns the entry registered under key
func (r *Registry) Lookup(key string) (Entry, bool) {
	i, ok := r.index.Load(strings.ToLower(key))
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Select returns the entries for the given keys in registration order.
// An empty list selects all entries.
func (r *Registry) Select(keys []string) ([]Entry, error) {
	if len(keys) == 0 {
		return r.Entries(), nil
	}

	selected := make([]bool, len(r.entries))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		i, ok := r.index.Load(strings.ToLower(key))
		if !ok {
			return nil, eris.Wrapf(ErrUnknownFormat, "%q (known: %s)", key, strings.Join(r.Keys(), ", "))
		}
		selected[i] = true
	}

	out := make([]Entry, 0, len(keys))
	for i, ok := range selected {
		if ok {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

// Keys returns the keys of all entries in registration order
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Key
	}
	return keys
}

// DefaultRegistry returns a registry with all supported formats. Variants of
// a format follow their parent and are shown with a "└ " prefix.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, e := range []Entry{
		NewProductEntry("json", "JSON", format.NewJSONFormat()),
		NewProductEntry("gojson", "└ go-json", format.NewGoJSONFormat()),
		NewProductEntry("cbor", "CBOR", format.NewCBORFormat()),
		NewProductEntry("cbor-det", "└ core-det", format.NewCBORDetFormat()),
		NewProductEntry("msgpack", "MessagePack", format.NewMsgpackFormat()),
		NewProductEntry("msgp", "└ msgp", format.NewMsgpFormat()),
		NewProductEntry("proto", "Protobuf", format.NewProtoFormat()),
		NewEntry("proto-nocopy", "└ No Copies", format.NewProtoPreparedFormat(), format.ToProtoSlice, format.ProtoKey),
		NewProductEntry("flat", "FlatBuffers", format.NewFlatFormat()),
		NewProductEntry("flat-unsafe", "└ unsafe", format.NewFlatUncheckedFormat()),
		NewProductEntry("xdr", "XDR", format.NewXDRFormat()),
		NewProductEntry("gob", "GOB", format.NewGOBFormat()),
		NewProductEntry("binary", "Binary", format.NewBinaryFormat()),
	} {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}

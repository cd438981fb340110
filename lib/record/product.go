package record

// DefaultTags are the tags attached to every generated product
var DefaultTags = []string{"benchmark", "test"}

// Product is the record all formats are benchmarked with.
// Products are created once by Generate and only read afterwards.
type Product struct {
	ID      uint64   `json:"id" msgpack:"id" cbor:"id"`
	Name    string   `json:"name" msgpack:"name" cbor:"name"`
	Price   float64  `json:"price" msgpack:"price" cbor:"price"`
	InStock bool     `json:"in_stock" msgpack:"in_stock" cbor:"in_stock"`
	Tags    []string `json:"tags" msgpack:"tags" cbor:"tags"`
}

// Key returns the ID of the product, the field checked after every round trip
func Key(p *Product) uint64 {
	return p.ID
}

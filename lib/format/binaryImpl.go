package format

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ValentinKolb/encbench/lib/record"
)

// NewBinaryFormat creates a new format using a custom binary layout
// written for the product record. It is the closest a framed encoding
// gets to the theoretical minimum: fixed width numbers plus a length
// prefix per string and a count for the tag list.
func NewBinaryFormat() IFormat[record.Product] {
	return &binaryFormatImpl{}
}

// binaryFormatImpl implements IFormat using a fixed binary layout:
//
//	ID (8) | Price (8) | InStock (1) | len(Name) (4) | Name | len(Tags) (4) | { len(Tag) (4) | Tag }
type binaryFormatImpl struct {
}

const (
	// fixedHeaderSize is the size of ID, Price and InStock
	fixedHeaderSize = 8 + 8 + 1
	// lengthPrefixSize is the size of every length or count prefix
	lengthPrefixSize = 4
)

// --------------------------------------------------------------------------
// Interface Methods (docu see format.IFormat)
// --------------------------------------------------------------------------

func (b binaryFormatImpl) Encode(p *record.Product) ([]byte, error) {
	// Calculate total size needed
	result := make([]byte, b.sizeBytes(p))

	binary.BigEndian.PutUint64(result[0:8], p.ID)
	binary.BigEndian.PutUint64(result[8:16], math.Float64bits(p.Price))
	if p.InStock {
		result[16] = 1
	}

	pos := fixedHeaderSize

	// Write name
	pos = putString(result, pos, p.Name)

	// Write tags
	binary.BigEndian.PutUint32(result[pos:pos+lengthPrefixSize], uint32(len(p.Tags)))
	pos += lengthPrefixSize
	for _, tag := range p.Tags {
		pos = putString(result, pos, tag)
	}

	return result, nil
}

func (b binaryFormatImpl) Decode(data []byte, p *record.Product) error {
	// Check minimum size (fixed fields + name length + tag count)
	if len(data) < fixedHeaderSize+2*lengthPrefixSize {
		return fmt.Errorf("data too short for product header")
	}

	p.ID = binary.BigEndian.Uint64(data[0:8])
	p.Price = math.Float64frombits(binary.BigEndian.Uint64(data[8:16]))

	switch data[16] {
	case 0:
		p.InStock = false
	case 1:
		p.InStock = true
	default:
		return fmt.Errorf("invalid value %d for InStock flag", data[16])
	}

	pos := fixedHeaderSize

	// Read name
	name, pos, err := readString(data, pos)
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	p.Name = name

	// Read tags
	if pos+lengthPrefixSize > len(data) {
		return fmt.Errorf("data too short for tag count")
	}
	tagCount := int(binary.BigEndian.Uint32(data[pos : pos+lengthPrefixSize]))
	pos += lengthPrefixSize

	// every tag needs at least its length prefix
	if tagCount > (len(data)-pos)/lengthPrefixSize {
		return fmt.Errorf("data too short for %d tags", tagCount)
	}

	// Allocate only if needed
	if cap(p.Tags) < tagCount {
		p.Tags = make([]string, tagCount)
	} else {
		p.Tags = p.Tags[:tagCount]
	}
	for i := range p.Tags {
		p.Tags[i], pos, err = readString(data, pos)
		if err != nil {
			return fmt.Errorf("tag %d: %w", i, err)
		}
	}

	if pos != len(data) {
		return fmt.Errorf("unexpected %d trailing bytes", len(data)-pos)
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sizeBytes calculates the total size needed for serialization
func (b binaryFormatImpl) sizeBytes(p *record.Product) int {
	size := fixedHeaderSize
	size += lengthPrefixSize + len(p.Name)
	size += lengthPrefixSize // tag count
	for _, tag := range p.Tags {
		size += lengthPrefixSize + len(tag)
	}
	return size
}

// putString writes a length prefixed string at pos and returns the new position
func putString(dst []byte, pos int, s string) int {
	binary.BigEndian.PutUint32(dst[pos:pos+lengthPrefixSize], uint32(len(s)))
	pos += lengthPrefixSize
	copy(dst[pos:pos+len(s)], s)
	return pos + len(s)
}

// readString reads a length prefixed string at pos and returns it with the new position
func readString(data []byte, pos int) (string, int, error) {
	if pos+lengthPrefixSize > len(data) {
		return "", pos, fmt.Errorf("data too short for string length")
	}
	strLen := int(binary.BigEndian.Uint32(data[pos : pos+lengthPrefixSize]))
	pos += lengthPrefixSize

	if strLen > len(data)-pos {
		return "", pos, fmt.Errorf("data too short for string data")
	}
	return string(data[pos : pos+strLen]), pos + strLen, nil
}

package record

const (
	idSize      = 8 // uint64
	priceSize   = 8 // float64
	inStockSize = 1 // bool
)

// MinimumSize returns the number of bytes p needs without any framing:
// fixed width numbers, one byte for the flag and the raw UTF-8 bytes of every string.
func MinimumSize(p *Product) int {
	size := idSize + priceSize + inStockSize + len(p.Name)
	for _, tag := range p.Tags {
		size += len(tag)
	}
	return size
}

// TheoreticalMinimum sums MinimumSize over the whole dataset.
// It is the denominator of the overhead percentage and does not depend on any format.
func TheoreticalMinimum(data []Product) int {
	total := 0
	for i := range data {
		total += MinimumSize(&data[i])
	}
	return total
}

package record

import (
	"math/rand/v2"
	"time"
)

const (
	// alphanumeric is the alphabet product names are drawn from
	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	minNameLen = 5
	maxNameLen = 10 // exclusive

	minPrice = 1.0
	maxPrice = 1000.0 // exclusive
)

// NewRand returns the random source used for dataset generation.
// A seed of 0 means unseeded: the source is initialized from the clock and every
// call yields a different dataset. Any other seed makes the dataset reproducible.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, now>>17|now<<47))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate creates n random products.
// The whole dataset is materialized before it is returned.
func Generate(n int, rng *rand.Rand) []Product {
	if n < 0 {
		n = 0
	}
	data := make([]Product, n)
	for i := range data {
		data[i] = randomProduct(rng)
	}
	return data
}

// randomProduct draws a single product from rng
func randomProduct(rng *rand.Rand) Product {
	nameLen := minNameLen + rng.IntN(maxNameLen-minNameLen)

	return Product{
		ID:      rng.Uint64(),
		Name:    randomString(rng, nameLen),
		Price:   minPrice + rng.Float64()*(maxPrice-minPrice),
		InStock: rng.IntN(2) == 1,
		Tags:    []string{DefaultTags[0], DefaultTags[1]},
	}
}

// randomString returns an alphanumeric string of length n
func randomString(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[rng.IntN(len(alphanumeric))]
	}
	return string(b)
}

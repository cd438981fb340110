package bench

import (
	"time"

	"github.com/ValentinKolb/encbench/lib/format"
	"github.com/ValentinKolb/encbench/lib/record"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/rotisserie/eris"
)

var Logger = logger.GetLogger("bench")

var (
	// ErrEncode is returned when a format fails to encode a record
	ErrEncode = eris.New("encode failed")
	// ErrDecode is returned when a format fails to decode its own output
	ErrDecode = eris.New("decode failed")
	// ErrIntegrity is returned when a decoded record has a different id than its source
	ErrIntegrity = eris.New("round trip id mismatch")
	// ErrNondeterministic is returned when two rounds of the same format disagree on the encoded size
	ErrNondeterministic = eris.New("encoded size differs between rounds")
)

// Options control how the runner measures a format
type Options struct {
	// SkipDecode measures encoding only. It applies to every format alike.
	SkipDecode bool
	// Rounds is the number of timed passes over the dataset, values below 1 mean 1
	Rounds int
}

// Result is the outcome of measuring a single format
type Result struct {
	// Key and Name identify the format (see Entry)
	Key  string
	Name string
	// Elapsed is the mean time of one pass over the dataset
	Elapsed time.Duration
	// TotalBytes is the sum of all encoded sizes of one pass
	TotalBytes int
	// Entries is the size of the dataset
	Entries int
	// Rounds holds the elapsed time of every pass
	Rounds []time.Duration
}

// Seconds returns the mean elapsed time in seconds
func (r Result) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// AvgNanos returns the mean time per record in nanoseconds
func (r Result) AvgNanos() float64 {
	if r.Entries == 0 {
		return 0
	}
	return r.Seconds() * 1e9 / float64(r.Entries)
}

// AvgSize returns the mean encoded size per record in bytes
func (r Result) AvgSize() float64 {
	if r.Entries == 0 {
		return 0
	}
	return float64(r.TotalBytes) / float64(r.Entries)
}

// RoundStats returns statistics over the elapsed times of all rounds in milliseconds
func (r Result) RoundStats() Stats {
	values := make([]float64, len(r.Rounds))
	for i, d := range r.Rounds {
		values[i] = float64(d) / float64(time.Millisecond)
	}
	return NewStats(values)
}

// --------------------------------------------------------------------------
// Runner
// --------------------------------------------------------------------------

// Run measures a single format over the dataset
func Run(data []record.Product, entry Entry, opts Options) (Result, error) {
	return entry.run(data, opts)
}

// RunAll measures all entries in the given order. The first failing format
// aborts the run; no partial results are returned.
func RunAll(data []record.Product, entries []Entry, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		Logger.Infof("measuring %s (%d entries, decode=%t, rounds=%d)", entry.Name, len(data), !opts.SkipDecode, rounds(opts))

		result, err := Run(data, entry, opts)
		if err != nil {
			Logger.Errorf("%s failed: %v", entry.Name, err)
			return nil, err
		}

		Logger.Infof("%s: %s, %d bytes", entry.Name, result.Elapsed, result.TotalBytes)
		results = append(results, result)
	}
	return results, nil
}

// measure runs all rounds of one format over already prepared items
func measure[T any](entry Entry, items []T, f format.IFormat[T], key func(*T) uint64, opts Options) (Result, error) {
	n := rounds(opts)
	result := Result{
		Key:     entry.Key,
		Name:    entry.Name,
		Entries: len(items),
		Rounds:  make([]time.Duration, 0, n),
	}

	var sum time.Duration
	for round := 0; round < n; round++ {
		elapsed, total, err := measureRound(items, f, key, opts.SkipDecode)
		if err != nil {
			return Result{}, eris.Wrapf(err, "format %s", entry.Name)
		}

		if round == 0 {
			result.TotalBytes = total
		} else if total != result.TotalBytes {
			return Result{}, eris.Wrapf(ErrNondeterministic, "format %s: round %d encoded %d bytes, round 0 encoded %d",
				entry.Name, round, total, result.TotalBytes)
		}

		Logger.Debugf("%s round %d: %s", entry.Name, round, elapsed)
		result.Rounds = append(result.Rounds, elapsed)
		sum += elapsed
	}

	result.Elapsed = sum / time.Duration(n)
	return result, nil
}

// measureRound is the timed loop: encode every item, add up the sizes and
// unless skipDecode is set decode the bytes again and compare the ids.
// Encoded buffers are dropped right after each item.
func measureRound[T any](items []T, f format.IFormat[T], key func(*T) uint64, skipDecode bool) (time.Duration, int, error) {
	total := 0
	start := time.Now()

	for i := range items {
		item := &items[i]

		encoded, err := f.Encode(item)
		if err != nil {
			return 0, 0, eris.Wrapf(ErrEncode, "record %d: %v", i, err)
		}
		total += len(encoded)

		if skipDecode {
			continue
		}

		var decoded T
		if err := f.Decode(encoded, &decoded); err != nil {
			return 0, 0, eris.Wrapf(ErrDecode, "record %d: %v", i, err)
		}
		if got, want := key(&decoded), key(item); got != want {
			return 0, 0, eris.Wrapf(ErrIntegrity, "record %d: decoded id %d, expected %d", i, got, want)
		}
	}

	return time.Since(start), total, nil
}

// rounds returns the effective number of rounds
func rounds(opts Options) int {
	if opts.Rounds < 1 {
		return 1
	}
	return opts.Rounds
}

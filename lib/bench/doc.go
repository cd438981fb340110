/*
Package bench measures serialization formats against a shared dataset.

Formats are wrapped into an Entry and collected in a Registry. The order of
the registry is the order of measurement and of the report. DefaultRegistry
contains all formats of the format package.

Measurement

Run encodes every record of the dataset, adds up the encoded sizes and, unless
Options.SkipDecode is set, decodes the bytes again and compares the id of the
decoded record with the source. All of this happens inside a single timed loop.
Any failure aborts the run:

  - ErrEncode / ErrDecode if the underlying library returns an error
  - ErrIntegrity if a decoded id differs from the source id
  - ErrNondeterministic if two rounds produce a different total size

Formats that work on their own in-memory type (e.g. the pre-converted protobuf
variant) get their data converted by the prepare function of NewEntry before
the timer starts.

Reporting

Report.Write prints the comparison table, one row per result followed by the
theoretical minimum of the dataset. WriteCSV and WriteMetrics export the same
numbers as CSV or in the Prometheus text format. Profile computes the size
distribution of each format without any timing.

Example usage:

	data := record.Generate(1000, record.NewRand(0))
	entries, _ := bench.DefaultRegistry().Select([]string{"json", "proto"})
	results, err := bench.RunAll(data, entries, bench.Options{Rounds: 3})
	if err != nil {
		// handle error
	}
	report := bench.Report{Entries: len(data), Results: results, Minimum: record.TheoreticalMinimum(data)}
	_ = report.Write(os.Stdout)
*/
package bench

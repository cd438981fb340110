// Package record defines the synthetic data the serialization benchmark works on.
// Every format is measured against the same in-memory dataset, so the package
// is intentionally small and free of any format specific code.
//
// Key Components:
//
//   - Product: The fixed-shape record every format encodes. It carries an integer,
//     a float, a boolean, a short string and a list of strings, which covers the
//     common primitive kinds a wire format has to deal with.
//
//   - Generate: Builds the dataset. All values are random (non cryptographic),
//     the shape is always the same: names are 5 to 9 alphanumeric characters and
//     every product carries the tags "benchmark" and "test".
//
//   - TheoreticalMinimum: Computes the smallest number of bytes needed to store
//     a dataset without any framing (no field tags, no length prefixes, no
//     padding). The result is not decodable and only serves as the baseline the
//     overhead of every format is normalized against.
//
// Reproducibility:
//
//	Datasets are unseeded by default, so two runs measure different (but equally
//	shaped) data. Pass a non-zero seed to NewRand to get identical datasets.
package record

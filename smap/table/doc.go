// Package table implements a sparse two-key lookup table that reorganizes its
// storage toward the key most recently sliced.
//
// A Table holds (KeyA, KeyB) -> Value rows. At any time one key is the outer
// key: its distinct values are kept sorted and each one owns a contiguous
// run-length span of the flat inner-key and value columns. Slicing on the outer
// key is a binary search plus a copy of one span. Slicing on the other key
// first rebuilds the columns with the keys swapped (a flip), so a burst of
// queries along the same key pays the O(n log n) rebuild once.
//
// Because queries may rebuild the columns, every query method has a pointer
// receiver and a Table must not be queried from several goroutines at once.
// Wrap it in a lock (see package catalog) when sharing it. Slice results are
// owned copies and stay valid across later flips.
//
// Composite keys must be unique unless the table is built with KeepAll; the
// default policy rejects duplicate (KeyA, KeyB) pairs with ErrDuplicateKey.
package table

// Package parsers extracts raw playlist entries from playlist documents.
//
// # Formats
//
// [Detect] maps a file name to a closed [Format] enum. M3U is the only
// implemented format; iTunes XML is recognized by [Detect] but [For] refuses
// to construct a parser for it. Unknown suffixes are rejected outright.
//
// # Streaming contract
//
// A [Parser] drives a single forward pass over its reader and calls the emit
// callback once per well-formed entry, in file order. A malformed entry is
// skipped without aborting the document; only reader failures and emit errors
// end a parse early.
//
// # Title/artist recovery
//
// [SplitTitleArtist] applies the dash-counting heuristic used to recover a
// (title, artist) pair from a free-text metadata line. It is total: any input
// produces two trimmed strings, either of which may be empty.
package parsers

// Package tasks orchestrates playlist imports with real-time event streaming.
//
// # Pipeline
//
// A [Session] processes exactly one playlist file: it detects the format,
// finds or creates the target playlist, then drives the parser. Every raw
// entry is split into a (title, artist) key, resolved against the library by
// [Resolver], appended to the playlist when known, and emitted downstream
// immediately so the caller can render progress while the file is still being
// read.
//
// # Resolution
//
// [Resolver] tries two strategies in order: an exact-suffix match of the
// entry's source URI against stored file paths, then an exact match on
// normalized title/artist keys. A strategy only succeeds when it returns
// exactly one row; zero rows and ambiguous results both fall through, and an
// entry no strategy claims comes back as an unresolved placeholder rather
// than an error.
//
// # Serialization
//
// [Coordinator] owns at most one running session. Requests submitted while a
// session is running wait in a FIFO backlog and start automatically, in
// submission order, as earlier sessions finish.
//
// # Event delivery
//
// Each submission gets its own [Update] channel carrying SessionStarted, one
// TrackResolved per entry in parse order, and a terminal SessionCompleted or
// SessionFailed. Track events are delivered losslessly and in order, since
// the consumer's placement logic depends on arrival order, so sends block
// until received or the session context is cancelled.
package tasks

// Package formatter defines how log entries are serialized into bytes.
//
// It exposes Formatter, which returns a []byte, and two optional
// interfaces, WriterFormatter and BufferFormatter, which handlers
// detect at construction time to skip the intermediate allocation.
//
// Level tags are derived from the entry's label rather than a fixed
// table, because loggers may register new labels at any time. The
// TextFormatter caches one " [LABEL] " string per label it has seen;
// the JSONFormatter writes the numeric severity under "level" and the
// label under "label".
//
// Buffers larger than 64 KiB are not returned to the pool.
package formatter

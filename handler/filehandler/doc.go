// Package filehandler provides a synchronous handler that writes
// formatted entries to a file, rotating it by size through
// gopkg.in/natefinch/lumberjack.v2 and optionally on a fixed interval.
// Old backups are pruned by count and age and may be gzip-compressed.
package filehandler

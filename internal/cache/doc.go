// Package cache keeps the last successful live listing on disk so the dashboard can
// show a recent snapshot when the upstream is unreachable.
//
// Entries are JSON files named after their key, written atomically through a
// temporary file and expired by TTL.
package cache

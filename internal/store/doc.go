// Package store keeps record collections in flat CSV files behind a
// whole-collection in-memory cache.
//
// The record file is the source of truth. The cache starts unloaded, is
// filled from the file on first access, and after every successful write is
// replaced by exactly the collection that was written. A failed write leaves
// both the file and the cache as they were.
package store

// Package kv implements a small keyed blob store on disk.
//
// Each key maps to one file inside a data directory. Writes go to a temporary
// file that is synced and renamed over the target, so readers observe either
// the previous or the new contents, never a partial write.
package kv

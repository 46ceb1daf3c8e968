package pdb

import "github.com/cuebox/pdb/library"

// Merge combines a primary Library with a secondary one (typically decoded
// from a companion exportExt.pdb) by track id, filling a missing bpm or
// genre in the primary from the secondary. See library.Merge for the exact
// field-preference rules.
func Merge(primary, secondary *Library) *Library {
	return library.Merge(primary, secondary)
}

package row

import (
	"github.com/cuebox/pdb/internal/bytesource"
	"github.com/cuebox/pdb/internal/devicestring"
)

// A Key is a decoded musical-key lookup row (table type 5).
type Key struct {
	ID   uint32
	Name string
}

// DecodeKey decodes the key row at base: id at +0, name at +8. The original
// source's row layout leaves a 4-byte gap at +4 with no documented meaning;
// this decoder never reads it at all, per the open question in DESIGN.md.
func DecodeKey(src *bytesource.Source, base int64) (Key, bool) {
	id, err := src.U32leAt(base)
	if err != nil || id == 0 {
		return Key{}, false
	}
	name := devicestring.Decode(src, base+8)
	if name == "" {
		return Key{}, false
	}
	return Key{ID: id, Name: name}, true
}

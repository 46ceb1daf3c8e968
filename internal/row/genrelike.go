package row

import (
	"github.com/cuebox/pdb/internal/bytesource"
	"github.com/cuebox/pdb/internal/devicestring"
)

// A GenreLike row is the shared id+name layout used by both the genre
// table (type 1) and the label table (type 4); the two tables differ only
// in which lookup map the caller feeds the result into.
type GenreLike struct {
	ID   uint32
	Name string
}

// DecodeGenreLike decodes a genre or label row at base: a u32 id at +0
// followed immediately by a device string at +4.
func DecodeGenreLike(src *bytesource.Source, base int64) (GenreLike, bool) {
	id, err := src.U32leAt(base)
	if err != nil || id == 0 {
		return GenreLike{}, false
	}
	name := devicestring.Decode(src, base+4)
	if name == "" {
		return GenreLike{}, false
	}
	return GenreLike{ID: id, Name: name}, true
}

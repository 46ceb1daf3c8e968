package row

import (
	"github.com/cuebox/pdb/internal/bytesource"
	"github.com/cuebox/pdb/internal/devicestring"
)

// An Album is a decoded album lookup row (table type 3).
type Album struct {
	ID   uint32
	Name string
}

const albumSubtypeLongName = 0x04

// DecodeAlbum decodes the album row at base. See DecodeArtist for the
// shared subtype-driven name-offset pattern.
func DecodeAlbum(src *bytesource.Source, base int64) (Album, bool) {
	subtype, err := src.U16leAt(base)
	if err != nil {
		return Album{}, false
	}
	id, err := src.U32leAt(base + 12)
	if err != nil || id == 0 {
		return Album{}, false
	}

	var nameOfs int64
	if subtype&albumSubtypeLongName != 0 {
		v, err := src.U16leAt(base + 0x16)
		if err != nil {
			return Album{}, false
		}
		nameOfs = int64(v)
	} else {
		v, err := src.U8At(base + 17)
		if err != nil {
			return Album{}, false
		}
		nameOfs = int64(v)
	}

	name := devicestring.Decode(src, base+nameOfs)
	if name == "" {
		return Album{}, false
	}
	return Album{ID: id, Name: name}, true
}

package row

import (
	"github.com/cuebox/pdb/internal/bytesource"
	"github.com/cuebox/pdb/internal/devicestring"
)

// An Artist is a decoded artist lookup row (table type 2).
type Artist struct {
	ID   uint32
	Name string
}

const artistSubtypeLongName = 0x04

// DecodeArtist decodes the artist row at base. It reports ok=false if the
// row is too short, id is zero, or the resolved name is empty.
func DecodeArtist(src *bytesource.Source, base int64) (Artist, bool) {
	subtype, err := src.U16leAt(base)
	if err != nil {
		return Artist{}, false
	}
	id, err := src.U32leAt(base + 4)
	if err != nil || id == 0 {
		return Artist{}, false
	}

	var nameOfs int64
	if subtype&artistSubtypeLongName != 0 {
		v, err := src.U16leAt(base + 0x0A)
		if err != nil {
			return Artist{}, false
		}
		nameOfs = int64(v)
	} else {
		v, err := src.U8At(base + 9)
		if err != nil {
			return Artist{}, false
		}
		nameOfs = int64(v)
	}

	name := devicestring.Decode(src, base+nameOfs)
	if name == "" {
		return Artist{}, false
	}
	return Artist{ID: id, Name: name}, true
}

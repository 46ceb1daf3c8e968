package row

import (
	"github.com/cuebox/pdb/internal/bytesource"
	"github.com/cuebox/pdb/internal/devicestring"
)

// Track field offsets, relative to the row base.
const (
	ofsKeyID     = 0x20
	ofsBitrate   = 0x30
	ofsTempo     = 0x38
	ofsGenreID   = 0x3C
	ofsAlbumID   = 0x40
	ofsArtistID  = 0x44
	ofsID        = 0x48
	ofsDuration  = 0x54
	ofsRating    = 0x59
	ofsStringTab = 0x5E

	minTrackRowLen = 0x86
	numStringSlots = 21

	slotDateAdded = 10
	slotTitle     = 17
	slotFilePath  = 20

	maxPlausibleStringOffset = 10000

	maxTempoCentiBPM = 50000
	maxDurationS     = 36000
	maxBitrateKbps   = 10000
)

// A Track is a decoded track row (table type 0), before foreign-key
// resolution.
type Track struct {
	ID            uint32
	ArtistID      uint32
	AlbumID       uint32
	GenreID       uint32
	KeyID         uint32
	DurationS     uint16
	TempoCentiBPM uint32
	Rating        uint8
	BitrateKbps   uint32
	Title         string
	FilePath      string
	DateAdded     string
}

// DecodeTrack decodes the track row at base. It reports ok=false if the row
// is shorter than the minimum track row length or fails any of the §4.4
// sanity gates (zero id, implausible tempo/duration/bitrate).
func DecodeTrack(src *bytesource.Source, base int64) (Track, bool) {
	if _, err := src.Slice(base, minTrackRowLen); err != nil {
		return Track{}, false
	}

	id, err := src.U32leAt(base + ofsID)
	if err != nil || id == 0 {
		return Track{}, false
	}
	tempo, err := src.U32leAt(base + ofsTempo)
	if err != nil || tempo > maxTempoCentiBPM {
		return Track{}, false
	}
	duration, err := src.U16leAt(base + ofsDuration)
	if err != nil || duration > maxDurationS {
		return Track{}, false
	}
	bitrate, err := src.U32leAt(base + ofsBitrate)
	if err != nil || bitrate > maxBitrateKbps {
		return Track{}, false
	}

	genreID, err := src.U32leAt(base + ofsGenreID)
	if err != nil {
		return Track{}, false
	}
	albumID, err := src.U32leAt(base + ofsAlbumID)
	if err != nil {
		return Track{}, false
	}
	artistID, err := src.U32leAt(base + ofsArtistID)
	if err != nil {
		return Track{}, false
	}
	keyID, err := src.U32leAt(base + ofsKeyID)
	if err != nil {
		return Track{}, false
	}
	rating, err := src.U8At(base + ofsRating)
	if err != nil {
		return Track{}, false
	}

	return Track{
		ID:            id,
		ArtistID:      artistID,
		AlbumID:       albumID,
		GenreID:       genreID,
		KeyID:         keyID,
		DurationS:     duration,
		TempoCentiBPM: tempo,
		Rating:        rating,
		BitrateKbps:   bitrate,
		Title:         trackString(src, base, slotTitle),
		FilePath:      trackString(src, base, slotFilePath),
		DateAdded:     trackString(src, base, slotDateAdded),
	}, true
}

// trackString resolves one slot of the track's 21-entry string-offset
// table. A slot value of 0, or one that looks implausible (see §4.4),
// resolves to "" rather than being followed.
func trackString(src *bytesource.Source, base int64, slot int) string {
	slotOfs := base + ofsStringTab + int64(slot)*2
	offset, err := src.U16leAt(slotOfs)
	if err != nil || offset == 0 || offset > maxPlausibleStringOffset {
		return ""
	}
	return devicestring.Decode(src, base+int64(offset))
}

package row

import (
	"github.com/cuebox/pdb/internal/bytesource"
	"github.com/cuebox/pdb/internal/devicestring"
)

// A PlaylistNode is a decoded node of the playlist hierarchy (table type
// 7). The on-disk model carries only a child-to-parent edge; building the
// forest from these edges is the library package's job, not this one's.
type PlaylistNode struct {
	ID        uint32
	ParentID  uint32
	SortOrder uint32
	IsFolder  bool
	Name      string
}

// DecodePlaylistNode decodes the playlist-tree row at base.
func DecodePlaylistNode(src *bytesource.Source, base int64) (PlaylistNode, bool) {
	parentID, err := src.U32leAt(base)
	if err != nil {
		return PlaylistNode{}, false
	}
	sortOrder, err := src.U32leAt(base + 8)
	if err != nil {
		return PlaylistNode{}, false
	}
	id, err := src.U32leAt(base + 12)
	if err != nil || id == 0 {
		return PlaylistNode{}, false
	}
	rawIsFolder, err := src.U32leAt(base + 16)
	if err != nil {
		return PlaylistNode{}, false
	}
	name := devicestring.Decode(src, base+20)
	if name == "" {
		return PlaylistNode{}, false
	}
	return PlaylistNode{
		ID:        id,
		ParentID:  parentID,
		SortOrder: sortOrder,
		IsFolder:  rawIsFolder != 0,
		Name:      name,
	}, true
}

// A PlaylistEntry binds a track to a playlist at a given position (table
// type 8).
type PlaylistEntry struct {
	PlaylistID uint32
	TrackID    uint32
	Position   uint32
}

// DecodePlaylistEntry decodes the playlist-entry row at base.
func DecodePlaylistEntry(src *bytesource.Source, base int64) (PlaylistEntry, bool) {
	position, err := src.U32leAt(base)
	if err != nil {
		return PlaylistEntry{}, false
	}
	trackID, err := src.U32leAt(base + 4)
	if err != nil || trackID == 0 {
		return PlaylistEntry{}, false
	}
	playlistID, err := src.U32leAt(base + 8)
	if err != nil || playlistID == 0 {
		return PlaylistEntry{}, false
	}
	return PlaylistEntry{PlaylistID: playlistID, TrackID: trackID, Position: position}, true
}

// Package library assembles the decoder's row-level output into the
// normalized Library a host application consumes: a flat list of tracks
// with resolved text metadata, and a forest of playlists referencing those
// tracks by id.
package library

// Defaults used when a track's title is empty, or when its artist or album
// foreign key does not resolve to a non-empty lookup row.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// A Track is a fully resolved track, ready for a host to sort, filter, or
// export.
type Track struct {
	ID          uint32
	Title       string
	Artist      string
	Album       string
	Genre       string
	Key         string
	DurationS   uint16
	BPM         float64
	Rating      uint8
	BitrateKbps uint32
	FilePath    string
	DateAdded   string
}

// A Playlist is a node in the playlist forest. ParentID is 0 for a root
// playlist. TrackIDs is sorted by ascending entry position.
type Playlist struct {
	ID       uint32
	Name     string
	ParentID uint32
	IsFolder bool
	Children []*Playlist
	TrackIDs []uint32
}

// A Library is the decoder's complete output: an ordered track list and an
// ordered playlist forest, plus non-fatal decode diagnostics.
type Library struct {
	Tracks      []Track
	Playlists   []*Playlist
	Diagnostics Diagnostics
}

package library

// Diagnostics tallies the decoder's non-fatal, per-site errors (error
// taxonomy classes 4-6). None of these ever abort a decode; a host that
// does not care about them can ignore the field entirely.
//
// The DroppedX fields count rows decoded but rejected by a row-level
// sanity gate (a zero id, an implausible tempo/duration, an empty
// resolved name, and so on); they do not distinguish which gate fired.
// DroppedRowOffsets counts a coarser, page-level class: a row-offset-index
// entry that was marked present on its page but could not be turned into
// a row at all, because the entry itself (or its page's presence bitmap)
// failed a bounds check, or its resolved offset landed outside the page's
// row heap. A row this class drops never reaches a row decoder, so it
// never has a chance to add to the DroppedX counters below.
type Diagnostics struct {
	DroppedTracks          int
	DroppedArtists         int
	DroppedAlbums          int
	DroppedGenres          int
	DroppedLabels          int
	DroppedKeys            int
	DroppedPlaylistNodes   int
	DroppedPlaylistEntries int
	DroppedRowOffsets      int
	PageChainCycles        int
	PageChainCapExceeded   int
}

package library

// Merge combines a primary library with a secondary one (typically decoded
// from a companion file) by track id: for every track in primary that has a
// counterpart in secondary, a missing bpm or genre in primary is filled
// from secondary. All other fields, and every track present only in
// primary, are left untouched. Tracks present only in secondary are
// ignored. Playlists come exclusively from primary.
//
// Merge does not mutate either input; it returns a new Library.
func Merge(primary, secondary *Library) *Library {
	bySecondaryID := make(map[uint32]Track, len(secondary.Tracks))
	for _, t := range secondary.Tracks {
		bySecondaryID[t.ID] = t
	}

	merged := make([]Track, len(primary.Tracks))
	for i, t := range primary.Tracks {
		if other, ok := bySecondaryID[t.ID]; ok {
			if t.BPM <= 0 {
				t.BPM = other.BPM
			}
			if t.Genre == "" {
				t.Genre = other.Genre
			}
		}
		merged[i] = t
	}

	return &Library{
		Tracks:      merged,
		Playlists:   primary.Playlists,
		Diagnostics: primary.Diagnostics,
	}
}

package library

import (
	"sort"

	"github.com/cuebox/pdb/internal/bytesource"
	"github.com/cuebox/pdb/internal/page"
	"github.com/cuebox/pdb/internal/row"
)

// Table type codes, as laid out in the file header's table descriptors.
const (
	tableTypeTrack         = 0
	tableTypeGenre         = 1
	tableTypeArtist        = 2
	tableTypeAlbum         = 3
	tableTypeLabel         = 4
	tableTypeKey           = 5
	tableTypePlaylistTree  = 7
	tableTypePlaylistEntry = 8
)

// Build orchestrates the four-pass decode described in the component
// design: lookups, playlist tree, playlist entries, then tracks with
// foreign-key resolution. Table order within tables does not matter; passes
// are strictly sequential so that every foreign-key target has already
// been decoded by the time it is needed.
func Build(src *bytesource.Source, pageLen uint32, tables []page.TableDescriptor) *Library {
	b := &builder{src: src, pageLen: pageLen}

	b.buildLookups(tables)
	b.buildPlaylistTree(tables)
	b.buildPlaylistEntries(tables)
	b.buildTracks(tables)

	return b.assemble()
}

type entry struct {
	trackID  uint32
	position uint32
}

type builder struct {
	src     *bytesource.Source
	pageLen uint32

	artists map[uint32]string
	albums  map[uint32]string
	genres  map[uint32]string
	keys    map[uint32]string
	labels  map[uint32]string

	nodes       map[uint32]*Playlist
	nodeOrder   []uint32
	sortOrders  map[uint32]uint32
	entriesByPL map[uint32][]entry

	tracks      []Track
	trackByID   map[uint32]int // index into tracks, for last-writer-wins collapse

	diag Diagnostics
}

func (b *builder) walk(desc page.TableDescriptor) []int64 {
	rows, reason, dropped := page.Walk(b.src, desc, b.pageLen)
	b.diag.DroppedRowOffsets += dropped
	switch reason {
	case page.TerminationCycle:
		b.diag.PageChainCycles++
	case page.TerminationPageCapExceeded:
		b.diag.PageChainCapExceeded++
	}
	return rows
}

func (b *builder) buildLookups(tables []page.TableDescriptor) {
	b.artists = make(map[uint32]string)
	b.albums = make(map[uint32]string)
	b.genres = make(map[uint32]string)
	b.keys = make(map[uint32]string)
	b.labels = make(map[uint32]string)

	for _, desc := range tables {
		switch desc.Type {
		case tableTypeArtist:
			for _, base := range b.walk(desc) {
				a, ok := row.DecodeArtist(b.src, base)
				if !ok {
					b.diag.DroppedArtists++
					continue
				}
				b.artists[a.ID] = a.Name
			}
		case tableTypeAlbum:
			for _, base := range b.walk(desc) {
				a, ok := row.DecodeAlbum(b.src, base)
				if !ok {
					b.diag.DroppedAlbums++
					continue
				}
				b.albums[a.ID] = a.Name
			}
		case tableTypeGenre:
			for _, base := range b.walk(desc) {
				g, ok := row.DecodeGenreLike(b.src, base)
				if !ok {
					b.diag.DroppedGenres++
					continue
				}
				b.genres[g.ID] = g.Name
			}
		case tableTypeLabel:
			for _, base := range b.walk(desc) {
				l, ok := row.DecodeGenreLike(b.src, base)
				if !ok {
					b.diag.DroppedLabels++
					continue
				}
				b.labels[l.ID] = l.Name
			}
		case tableTypeKey:
			for _, base := range b.walk(desc) {
				k, ok := row.DecodeKey(b.src, base)
				if !ok {
					b.diag.DroppedKeys++
					continue
				}
				b.keys[k.ID] = k.Name
			}
		}
	}
}

func (b *builder) buildPlaylistTree(tables []page.TableDescriptor) {
	b.nodes = make(map[uint32]*Playlist)
	b.sortOrders = make(map[uint32]uint32)
	for _, desc := range tables {
		if desc.Type != tableTypePlaylistTree {
			continue
		}
		for _, base := range b.walk(desc) {
			n, ok := row.DecodePlaylistNode(b.src, base)
			if !ok {
				b.diag.DroppedPlaylistNodes++
				continue
			}
			pl := &Playlist{
				ID:       n.ID,
				Name:     n.Name,
				ParentID: n.ParentID,
				IsFolder: n.IsFolder,
			}
			// A repeated id keeps the position of its first appearance but
			// takes the latest decoded fields, mirroring the track
			// last-writer-wins rule.
			if _, exists := b.nodes[n.ID]; !exists {
				b.nodeOrder = append(b.nodeOrder, n.ID)
			}
			b.nodes[n.ID] = pl
			b.sortOrders[n.ID] = n.SortOrder
		}
	}
}

func (b *builder) buildPlaylistEntries(tables []page.TableDescriptor) {
	b.entriesByPL = make(map[uint32][]entry)
	for _, desc := range tables {
		if desc.Type != tableTypePlaylistEntry {
			continue
		}
		for _, base := range b.walk(desc) {
			e, ok := row.DecodePlaylistEntry(b.src, base)
			if !ok {
				b.diag.DroppedPlaylistEntries++
				continue
			}
			b.entriesByPL[e.PlaylistID] = append(b.entriesByPL[e.PlaylistID], entry{trackID: e.TrackID, position: e.Position})
		}
	}
}

func (b *builder) buildTracks(tables []page.TableDescriptor) {
	b.trackByID = make(map[uint32]int)
	for _, desc := range tables {
		if desc.Type != tableTypeTrack {
			continue
		}
		for _, base := range b.walk(desc) {
			t, ok := row.DecodeTrack(b.src, base)
			if !ok {
				b.diag.DroppedTracks++
				continue
			}
			resolved := b.resolveTrack(t)
			if idx, exists := b.trackByID[t.ID]; exists {
				b.tracks[idx] = resolved
				continue
			}
			b.trackByID[t.ID] = len(b.tracks)
			b.tracks = append(b.tracks, resolved)
		}
	}
}

func (b *builder) resolveTrack(t row.Track) Track {
	title := t.Title
	if title == "" {
		title = UnknownTitle
	}
	artist, ok := b.artists[t.ArtistID]
	if !ok || artist == "" {
		artist = UnknownArtist
	}
	album, ok := b.albums[t.AlbumID]
	if !ok || album == "" {
		album = UnknownAlbum
	}
	genre := b.genres[t.GenreID]
	key := b.keys[t.KeyID]

	return Track{
		ID:          t.ID,
		Title:       title,
		Artist:      artist,
		Album:       album,
		Genre:       genre,
		Key:         key,
		DurationS:   t.DurationS,
		BPM:         float64(t.TempoCentiBPM) / 100.0,
		Rating:      t.Rating,
		BitrateKbps: t.BitrateKbps,
		FilePath:    t.FilePath,
		DateAdded:   t.DateAdded,
	}
}

// assemble sorts each playlist's track ids by position, links children to
// parents, and orders roots by ascending sort order.
func (b *builder) assemble() *Library {
	for id, pl := range b.nodes {
		entries := b.entriesByPL[id]
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].position < entries[j].position })
		pl.TrackIDs = make([]uint32, len(entries))
		for i, e := range entries {
			pl.TrackIDs[i] = e.trackID
		}
	}

	var roots []*Playlist
	for _, id := range b.nodeOrder {
		pl := b.nodes[id]
		if pl.ParentID == 0 {
			roots = append(roots, pl)
			continue
		}
		parent, ok := b.nodes[pl.ParentID]
		if !ok {
			roots = append(roots, pl)
			continue
		}
		parent.Children = append(parent.Children, pl)
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return b.sortOrders[roots[i].ID] < b.sortOrders[roots[j].ID]
	})

	return &Library{
		Tracks:      b.tracks,
		Playlists:   roots,
		Diagnostics: b.diag,
	}
}

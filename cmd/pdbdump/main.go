// Command pdbdump decodes a device database export and prints a summary of
// every track and playlist it finds.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cuebox/pdb"
)

var flagExt string

func init() {
	flag.StringVar(&flagExt, "ext", "", "optional companion exportExt.pdb to merge for bpm/genre")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: pdbdump [OPTION]... export.pdb")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if err := dump(flag.Arg(0)); err != nil {
		log.Fatalln(err)
	}
}

func dump(path string) error {
	lib, err := pdb.Open(path)
	if err != nil {
		return err
	}

	if flagExt != "" {
		ext, err := pdb.Open(flagExt)
		if err != nil {
			return err
		}
		lib = pdb.Merge(lib, ext)
	}

	fmt.Printf("%d tracks, %d root playlists\n", len(lib.Tracks), len(lib.Playlists))
	fmt.Printf("dropped: %d tracks, %d artists, %d albums, %d genres, %d labels, %d keys, %d playlist nodes, %d playlist entries\n",
		lib.Diagnostics.DroppedTracks, lib.Diagnostics.DroppedArtists, lib.Diagnostics.DroppedAlbums,
		lib.Diagnostics.DroppedGenres, lib.Diagnostics.DroppedLabels, lib.Diagnostics.DroppedKeys,
		lib.Diagnostics.DroppedPlaylistNodes, lib.Diagnostics.DroppedPlaylistEntries)
	fmt.Println()

	for _, t := range lib.Tracks {
		fmt.Printf("#%d %s - %s (%s) %.1f BPM %ds\n", t.ID, t.Artist, t.Title, t.Album, t.BPM, t.DurationS)
	}
	fmt.Println()

	for _, p := range lib.Playlists {
		printPlaylist(p, 0)
	}
	return nil
}

func printPlaylist(p *pdb.Playlist, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	kind := "playlist"
	if p.IsFolder {
		kind = "folder"
	}
	fmt.Printf("%s%s (%s, %d tracks)\n", indent, p.Name, kind, len(p.TrackIDs))
	for _, child := range p.Children {
		printPlaylist(child, depth+1)
	}
}

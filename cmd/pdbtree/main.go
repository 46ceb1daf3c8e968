// Command pdbtree prints just the playlist forest of a device database
// export, one line per node, without printing track metadata. It exists as
// a narrow companion to pdbdump for inspecting playlist structure on large
// libraries; the whole file, tracks included, is still decoded.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cuebox/pdb"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: pdbtree export.pdb")
		os.Exit(1)
	}
	lib, err := pdb.Open(os.Args[1])
	if err != nil {
		log.Fatalln(err)
	}
	for _, p := range lib.Playlists {
		walk(p, 0)
	}
}

func walk(p *pdb.Playlist, depth int) {
	fmt.Printf("%*s%s\n", depth*2, "", p.Name)
	for _, child := range p.Children {
		walk(child, depth+1)
	}
}

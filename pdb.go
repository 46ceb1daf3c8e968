// Package pdb decodes a device database export — a proprietary,
// page-oriented binary file (conventionally named export.pdb) produced by a
// consumer DJ software stack — into a normalized Library: a flat list of
// tracks with resolved text metadata, plus a forest of playlists
// referencing those tracks.
//
// The decoder never performs I/O itself; Decode takes an in-memory buffer
// and a hint used only in error messages. Open is a thin convenience for
// hosts that would rather hand over a file path.
package pdb

import (
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/cuebox/pdb/internal/bytesource"
	"github.com/cuebox/pdb/internal/page"
	"github.com/cuebox/pdb/library"
)

// Re-exported so callers need not import the library package directly for
// the common case.
type (
	// A Library is the decoder's complete output. See library.Library.
	Library = library.Library
	// A Track is a fully resolved track. See library.Track.
	Track = library.Track
	// A Playlist is a node in the playlist forest. See library.Playlist.
	Playlist = library.Playlist
)

const (
	maxInputSize  = 500 << 20 // 500 MiB
	warnInputSize = 100 << 20 // 100 MiB
)

// ErrTooLarge is the cause (see errors.Cause) of the error Decode returns
// when the input exceeds maxInputSize.
var ErrTooLarge = errors.New("pdb: input exceeds the maximum supported size")

// Open reads the file at path and decodes it as a device database. It is a
// thin convenience around os.ReadFile and Decode; hosts that already have
// the file bytes in memory should call Decode directly. A read failure is
// wrapped with errors.WithStack so the caller can still recover the
// original error (typically an *os.PathError) with errors.Cause.
func Open(path string) (*Library, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return Decode(buf, path)
}

// Decode parses buf as a device database and returns the resulting
// Library. hint names the buffer in error messages; hosts with no natural
// name may pass "".
//
// Decode never reads outside buf and never panics on malformed or hostile
// input. Fatal conditions (buffer too large or too small, or an invalid
// file header) abort with no partial result; all other decode errors are
// tolerated and tallied in Library.Diagnostics instead.
func Decode(buf []byte, hint string) (*Library, error) {
	if len(buf) > maxInputSize {
		return nil, errors.Wrapf(ErrTooLarge, "%s: %d bytes", hint, len(buf))
	}
	if len(buf) > warnInputSize {
		log.Printf("pdb: %s: large input (%d bytes); decode may be slow", hint, len(buf))
	}

	src := bytesource.New(buf, hint)

	header, err := page.ParseFileHeader(src)
	if err != nil {
		return nil, errors.Wrapf(err, "pdb: %s", hint)
	}

	tables := page.ParseTableDescriptors(src, header)
	return library.Build(src, header.PageLen, tables), nil
}

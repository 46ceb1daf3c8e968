package row_test

import (
	"testing"

	"github.com/cuebox/pdb/internal/bytesource"
	"github.com/cuebox/pdb/internal/row"
)

func putU16le(buf []byte, off int, v uint16) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
}

func putU32le(buf []byte, off int, v uint32) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
	buf[off+2] = byte(v >> 16)
	buf[off+3] = byte(v >> 24)
}

func shortASCII(s string) []byte {
	out := make([]byte, 1+len(s))
	out[0] = byte((len(s)+1)<<1) | 1
	copy(out[1:], s)
	return out
}

func TestDecodeArtistNearForm(t *testing.T) {
	name := shortASCII("DJ B")
	buf := make([]byte, 9+len(name))
	// subtype=0: near form, name offset is a u8 at +9.
	putU32le(buf, 4, 2)
	buf[9] = 9 // name starts right after the offset byte... but layout only
	// needs name_ofs to point somewhere valid; point it at a later spot.
	buf = append(buf, name...)
	buf[9] = byte(10)
	copy(buf[10:], name)

	src := bytesource.New(buf, "test")
	a, ok := row.DecodeArtist(src, 0)
	if !ok {
		t.Fatal("expected artist row to decode")
	}
	if a.ID != 2 || a.Name != "DJ B" {
		t.Fatalf("got %+v", a)
	}
}

func TestDecodeArtistLongForm(t *testing.T) {
	name := shortASCII("A Very Long Artist Name")
	buf := make([]byte, 0x0C)
	putU16le(buf, 0, 0x04) // subtype: long-name bit set
	putU32le(buf, 4, 7)
	putU16le(buf, 0x0A, 0x0C) // name offset points right after the header
	buf = append(buf, name...)

	src := bytesource.New(buf, "test")
	a, ok := row.DecodeArtist(src, 0)
	if !ok {
		t.Fatal("expected artist row to decode")
	}
	if a.ID != 7 || a.Name != "A Very Long Artist Name" {
		t.Fatalf("got %+v", a)
	}
}

func TestDecodeArtistZeroIDDropped(t *testing.T) {
	buf := make([]byte, 12)
	src := bytesource.New(buf, "test")
	if _, ok := row.DecodeArtist(src, 0); ok {
		t.Fatal("expected id=0 to be dropped")
	}
}

func TestDecodeGenreLike(t *testing.T) {
	name := shortASCII("House")
	buf := make([]byte, 4)
	putU32le(buf, 0, 5)
	buf = append(buf, name...)

	src := bytesource.New(buf, "test")
	g, ok := row.DecodeGenreLike(src, 0)
	if !ok || g.ID != 5 || g.Name != "House" {
		t.Fatalf("got %+v, ok=%v", g, ok)
	}
}

func TestDecodeKeyIgnoresSecondID(t *testing.T) {
	name := shortASCII("Am")
	buf := make([]byte, 8)
	putU32le(buf, 0, 3)
	putU32le(buf, 4, 0xFFFFFFFF) // undocumented second id, must be ignored
	buf = append(buf, name...)

	src := bytesource.New(buf, "test")
	k, ok := row.DecodeKey(src, 0)
	if !ok || k.ID != 3 || k.Name != "Am" {
		t.Fatalf("got %+v, ok=%v", k, ok)
	}
}

func TestDecodePlaylistNode(t *testing.T) {
	name := shortASCII("Warmup")
	buf := make([]byte, 20)
	putU32le(buf, 0, 1)  // parent_id
	putU32le(buf, 8, 2)  // sort_order
	putU32le(buf, 12, 5) // id
	putU32le(buf, 16, 0) // is_folder=false
	buf = append(buf, name...)

	src := bytesource.New(buf, "test")
	n, ok := row.DecodePlaylistNode(src, 0)
	if !ok {
		t.Fatal("expected node to decode")
	}
	if n.ID != 5 || n.ParentID != 1 || n.SortOrder != 2 || n.IsFolder || n.Name != "Warmup" {
		t.Fatalf("got %+v", n)
	}
}

func TestDecodePlaylistEntryRequiresBothIDs(t *testing.T) {
	buf := make([]byte, 12)
	putU32le(buf, 0, 2)  // position
	putU32le(buf, 4, 0)  // track_id = 0
	putU32le(buf, 8, 10) // playlist_id
	src := bytesource.New(buf, "test")
	if _, ok := row.DecodePlaylistEntry(src, 0); ok {
		t.Fatal("expected entry with track_id=0 to be dropped")
	}
}

func buildTrackRow(t *testing.T, id uint32, tempo uint32, duration uint16, bitrate uint32) []byte {
	t.Helper()
	buf := make([]byte, 0x86)
	putU32le(buf, 0x30, bitrate)
	putU32le(buf, 0x38, tempo)
	putU32le(buf, 0x48, id)
	putU16le(buf, 0x54, duration)
	return buf
}

func TestDecodeTrackSanityGates(t *testing.T) {
	tests := []struct {
		name     string
		id       uint32
		tempo    uint32
		duration uint16
		bitrate  uint32
		wantOK   bool
	}{
		{"valid", 100, 12800, 180, 320, true},
		{"zero id", 0, 12800, 180, 320, false},
		{"tempo too high", 100, 50001, 180, 320, false},
		{"duration too high", 100, 12800, 36001, 320, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buildTrackRow(t, tt.id, tt.tempo, tt.duration, tt.bitrate)
			src := bytesource.New(buf, "test")
			_, ok := row.DecodeTrack(src, 0)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestDecodeTrackBPM(t *testing.T) {
	buf := buildTrackRow(t, 100, 12800, 180, 320)
	src := bytesource.New(buf, "test")
	tr, ok := row.DecodeTrack(src, 0)
	if !ok {
		t.Fatal("expected track to decode")
	}
	if tr.TempoCentiBPM != 12800 {
		t.Fatalf("TempoCentiBPM = %d", tr.TempoCentiBPM)
	}
}

func TestDecodeTrackImplausibleStringOffsetIgnored(t *testing.T) {
	buf := buildTrackRow(t, 100, 12800, 180, 320)
	// Title slot (17) set far beyond the plausible-offset cap.
	putU16le(buf, 0x5E+17*2, 60000)
	src := bytesource.New(buf, "test")
	tr, ok := row.DecodeTrack(src, 0)
	if !ok {
		t.Fatal("expected track to decode despite a bad string slot")
	}
	if tr.Title != "" {
		t.Fatalf("Title = %q, want empty", tr.Title)
	}
}

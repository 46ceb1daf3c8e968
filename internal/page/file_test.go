package page_test

import (
	"testing"

	"github.com/cuebox/pdb/internal/bytesource"
	"github.com/cuebox/pdb/internal/page"
)

func putU32le(buf []byte, off int, v uint32) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
	buf[off+2] = byte(v >> 16)
	buf[off+3] = byte(v >> 24)
}

// buildFileHeader returns a minimal file header (28 bytes) plus room for
// numTables 16-byte descriptors, all zeroed.
func buildFileHeader(pageLen, numTables uint32) []byte {
	buf := make([]byte, 28+16*numTables)
	putU32le(buf, 4, pageLen)
	putU32le(buf, 8, numTables)
	return buf
}

func putTableDescriptor(buf []byte, idx int, typ, firstPage, lastPage uint32) {
	base := 28 + idx*16
	putU32le(buf, base, typ)
	putU32le(buf, base+8, firstPage)
	putU32le(buf, base+12, lastPage)
}

func TestParseFileHeaderEmptyLibrary(t *testing.T) {
	buf := buildFileHeader(4096, 0)
	src := bytesource.New(buf, "test")
	h, err := page.ParseFileHeader(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.PageLen != 4096 || h.NumTables != 0 {
		t.Fatalf("got %+v", h)
	}
	tables := page.ParseTableDescriptors(src, h)
	if len(tables) != 0 {
		t.Fatalf("expected no tables, got %v", tables)
	}
}

func TestParseFileHeaderTooSmall(t *testing.T) {
	src := bytesource.New(make([]byte, 10), "test")
	if _, err := page.ParseFileHeader(src); err == nil {
		t.Fatal("expected error for undersized file")
	}
}

func TestParseFileHeaderInvalidPageLen(t *testing.T) {
	for _, pageLen := range []uint32{0, 511, 1<<20 + 1} {
		buf := buildFileHeader(pageLen, 0)
		src := bytesource.New(buf, "test")
		if _, err := page.ParseFileHeader(src); err == nil {
			t.Fatalf("expected error for page_len=%d", pageLen)
		}
	}
}

func TestParseFileHeaderInvalidNumTables(t *testing.T) {
	buf := buildFileHeader(4096, 1001)
	src := bytesource.New(buf, "test")
	if _, err := page.ParseFileHeader(src); err == nil {
		t.Fatal("expected error for num_tables > 1000")
	}
}

func TestParseTableDescriptorsDropsOutOfRange(t *testing.T) {
	pageLen := uint32(4096)
	buf := buildFileHeader(pageLen, 2)
	putTableDescriptor(buf, 0, 0, 0, 0)       // page 0 still needs 4096 bytes; this file has 60
	putTableDescriptor(buf, 1, 2, 9999, 9999) // wildly out of range
	src := bytesource.New(buf, "test")
	h, err := page.ParseFileHeader(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tables := page.ParseTableDescriptors(src, h)
	// Neither descriptor's first page fits inside this small fixture file.
	if len(tables) != 0 {
		t.Fatalf("expected both descriptors dropped, got %v", tables)
	}
}

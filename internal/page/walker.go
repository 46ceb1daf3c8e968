package page

import "github.com/cuebox/pdb/internal/bytesource"

const (
	headerSize       = 40
	flagIndexPage    = 0x40
	groupStride      = 0x24
	numRowOffsetMask = 0x1FFF // low 13 bits
	maxRowOffsets    = 2000
	maxPagesPerTable = 10000
)

// A Header is the 40-byte frame that precedes every page's row heap.
type Header struct {
	Type          uint32
	NextPage      uint32
	NumRowOffsets int
	IsIndexPage   bool
}

// readHeader decodes the page header at pageOffset. A short read (page
// falls off the end of the file) is reported to the caller so the walk can
// stop cleanly rather than fabricate a header.
func readHeader(src *bytesource.Source, pageOffset int64) (*Header, bool) {
	typ, err := src.U32leAt(pageOffset + 8)
	if err != nil {
		return nil, false
	}
	next, err := src.U32leAt(pageOffset + 12)
	if err != nil {
		return nil, false
	}
	packed, err := src.U32leAt(pageOffset + 24)
	if err != nil {
		return nil, false
	}
	flags, err := src.U8At(pageOffset + 27)
	if err != nil {
		return nil, false
	}
	numRowOffsets := int(packed & numRowOffsetMask)
	return &Header{
		Type:          typ,
		NextPage:      next,
		NumRowOffsets: numRowOffsets,
		IsIndexPage:   flags&flagIndexPage != 0,
	}, true
}

// TerminationReason records why a page-chain walk stopped, for diagnostics
// only; every reason yields whatever rows were collected before it fired.
type TerminationReason int

const (
	TerminationEndOfChain TerminationReason = iota
	TerminationCycle
	TerminationPageCapExceeded
)

// Walk traverses the page chain described by desc and returns the base
// offset of every live row on every data page whose own type field matches
// desc.Type, in file order, plus a count of row-offset-index entries that
// were marked present but could not be turned into a row (a short read on
// the entry itself, or an offset landing outside the page's heap). It
// never reads outside src and always terminates, regardless of how
// next_page is set.
func Walk(src *bytesource.Source, desc TableDescriptor, pageLen uint32) ([]int64, TerminationReason, int) {
	var rows []int64
	var droppedRowOffsets int
	visited := make(map[uint32]struct{})
	current := desc.FirstPage
	for pageCount := 0; ; pageCount++ {
		if pageCount >= maxPagesPerTable {
			return rows, TerminationPageCapExceeded, droppedRowOffsets
		}
		if _, seen := visited[current]; seen {
			return rows, TerminationCycle, droppedRowOffsets
		}
		visited[current] = struct{}{}

		pageOffset := int64(current) * int64(pageLen)
		if !pageInRange(src, pageLen, current) {
			return rows, TerminationEndOfChain, droppedRowOffsets
		}

		hdr, ok := readHeader(src, pageOffset)
		if !ok {
			return rows, TerminationEndOfChain, droppedRowOffsets
		}

		if !hdr.IsIndexPage && hdr.Type == desc.Type && hdr.NumRowOffsets <= maxRowOffsets {
			pageRows, dropped := rowsOnPage(src, pageOffset, pageLen, hdr.NumRowOffsets)
			rows = append(rows, pageRows...)
			droppedRowOffsets += dropped
		}

		if current == desc.LastPage {
			return rows, TerminationEndOfChain, droppedRowOffsets
		}
		if hdr.NextPage == 0 {
			return rows, TerminationEndOfChain, droppedRowOffsets
		}
		current = hdr.NextPage
	}
}

// rowsOnPage decodes the reverse-growing row-offset index for a single data
// page and returns the base offsets of its live rows, in ascending row
// index within ascending group index, plus a count of entries it had to
// drop. A bitmap that fails to read is counted as a single drop (the
// number of rows it would have described is unknown); a live entry whose
// offset read fails, or whose resolved base falls outside the page's heap,
// is counted as one drop each.
func rowsOnPage(src *bytesource.Source, pageOffset int64, pageLen uint32, numRowOffsets int) ([]int64, int) {
	heapStart := pageOffset + headerSize
	heapEnd := pageOffset + int64(pageLen)

	var dropped int
	numGroups := (numRowOffsets + 15) / 16
	rows := make([]int64, 0, numRowOffsets)
	for g := 0; g < numGroups; g++ {
		groupBase := pageOffset + int64(pageLen) - int64(g)*groupStride
		bitmap, err := src.U16leAt(groupBase - 4)
		if err != nil {
			dropped++
			continue
		}
		for i := 0; i < 16; i++ {
			if bitmap&(1<<uint(i)) == 0 {
				continue
			}
			rowOffOff := groupBase - 6 - int64(2*i)
			rowOff, err := src.U16leAt(rowOffOff)
			if err != nil {
				dropped++
				continue
			}
			rowBase := heapStart + int64(rowOff)
			if rowBase < heapStart || rowBase >= heapEnd {
				dropped++
				continue
			}
			rows = append(rows, rowBase)
		}
	}
	return rows, dropped
}

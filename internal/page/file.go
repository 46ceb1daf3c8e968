// Package page implements file-header validation, table-descriptor parsing,
// and the page-chain walk that yields live row offsets from a data page.
package page

import (
	"fmt"

	"github.com/cuebox/pdb/internal/bytesource"
)

const (
	minPageLen  = 512
	maxPageLen  = 1 << 20 // 1 MiB
	maxTables   = 1000
	headerLen   = 28
	descriptorLen = 16
)

// A FileHeader carries the two fields of the device database header that
// the rest of the decoder depends on.
type FileHeader struct {
	PageLen   uint32
	NumTables uint32
}

// ParseFileHeader validates and returns the file header at the start of
// src. The returned error, when non-nil, is always one of the fatal
// conditions described in the decoder's error taxonomy (too small, or an
// out-of-range page_len/num_tables) and should abort the decode.
func ParseFileHeader(src *bytesource.Source) (*FileHeader, error) {
	if src.Len() < headerLen {
		return nil, fmt.Errorf("page: file too small: %d bytes, need at least %d", src.Len(), headerLen)
	}
	pageLen, err := src.U32leAt(4)
	if err != nil {
		return nil, err
	}
	if pageLen < minPageLen || pageLen > maxPageLen {
		return nil, fmt.Errorf("page: invalid page_len: %d; expected %d..%d", pageLen, minPageLen, maxPageLen)
	}
	numTables, err := src.U32leAt(8)
	if err != nil {
		return nil, err
	}
	if numTables > maxTables {
		return nil, fmt.Errorf("page: invalid num_tables: %d; expected <= %d", numTables, maxTables)
	}
	need := int64(headerLen) + int64(numTables)*int64(descriptorLen)
	if int64(src.Len()) < need {
		return nil, fmt.Errorf("page: file too small for %d table descriptors: have %d bytes, need %d", numTables, src.Len(), need)
	}
	return &FileHeader{PageLen: pageLen, NumTables: numTables}, nil
}

// A TableDescriptor names a table kind and the first/last page of its
// page-chain.
type TableDescriptor struct {
	Type      uint32
	FirstPage uint32
	LastPage  uint32
}

// ParseTableDescriptors reads h.NumTables table descriptors starting at
// byte 28. Descriptors whose first page falls outside the file are
// dropped rather than aborting the decode; last_page is not checked here,
// as the walk stops on its own once the chain leaves the file. A hostile or truncated file
// should yield as complete a library as possible from the tables that are
// actually addressable.
func ParseTableDescriptors(src *bytesource.Source, h *FileHeader) []TableDescriptor {
	out := make([]TableDescriptor, 0, h.NumTables)
	for i := uint32(0); i < h.NumTables; i++ {
		base := int64(headerLen) + int64(i)*descriptorLen
		typ, err := src.U32leAt(base)
		if err != nil {
			continue
		}
		firstPage, err := src.U32leAt(base + 8)
		if err != nil {
			continue
		}
		lastPage, err := src.U32leAt(base + 12)
		if err != nil {
			continue
		}
		if !pageInRange(src, h.PageLen, firstPage) {
			continue
		}
		out = append(out, TableDescriptor{Type: typ, FirstPage: firstPage, LastPage: lastPage})
	}
	return out
}

func pageInRange(src *bytesource.Source, pageLen uint32, index uint32) bool {
	start := int64(index) * int64(pageLen)
	end := start + int64(pageLen)
	return start >= 0 && end <= int64(src.Len())
}

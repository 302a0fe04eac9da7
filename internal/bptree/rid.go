package bptree

import (
	"encoding/binary"

	"github.com/arjunmenon/kvcore/internal/page"
)

// RID (record id) locates a tuple within a table heap: the page holding it
// and its slot number within that page. It is the value type leaf pages
// store; internal pages store child page.IDs instead.
type RID struct {
	PageID page.ID
	Slot   uint32
}

type ridCodec struct{}

func (ridCodec) Size() int { return 12 }

func (ridCodec) Encode(v RID, dst []byte) {
	binary.LittleEndian.PutUint64(dst[0:8], uint64(v.PageID))
	binary.LittleEndian.PutUint32(dst[8:12], v.Slot)
}

func (ridCodec) Decode(src []byte) RID {
	return RID{
		PageID: page.ID(binary.LittleEndian.Uint64(src[0:8])),
		Slot:   binary.LittleEndian.Uint32(src[8:12]),
	}
}

// RIDCodec is the Codec[RID] used by every LeafPage instantiation.
var RIDCodec Codec[RID] = ridCodec{}

type pageIDCodec struct{}

func (pageIDCodec) Size() int { return 8 }

func (pageIDCodec) Encode(v page.ID, dst []byte) {
	binary.LittleEndian.PutUint64(dst[0:8], uint64(v))
}

func (pageIDCodec) Decode(src []byte) page.ID {
	return page.ID(binary.LittleEndian.Uint64(src[0:8]))
}

// PageIDCodec is the Codec[page.ID] used by every InternalPage instantiation.
var PageIDCodec Codec[page.ID] = pageIDCodec{}

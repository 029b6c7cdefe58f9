package qtio

import (
	"fmt"
	"io"
	"time"

	"github.com/ugparu/qtatom/utils/bits/pio"
)

const TKHD = Tag(0x746b6864)

func init() {
	RegisterLeaf(TKHD, decodeTrackHeader)
}

// TrackHeader carries the per-track presentation fields of the tkhd atom.
type TrackHeader struct {
	Version        uint8
	Flags          uint32
	CreateTime     time.Time
	ModifyTime     time.Time
	TrackID        int32
	Duration       int64
	Layer          int16
	AlternateGroup int16
	Volume         float64
	Matrix         [9]int32
	TrackWidth     float64
	TrackHeight    float64
	AtomHeader
}

func (*TrackHeader) Children() []Atom {
	return nil
}

func (tkhd *TrackHeader) String() string {
	return fmt.Sprintf("track=%d duration=%d size=%gx%g",
		tkhd.TrackID, tkhd.Duration, tkhd.TrackWidth, tkhd.TrackHeight)
}

func decodeTrackHeader(h AtomHeader, r io.ReadSeeker) (Atom, error) {
	b, err := h.ReadAtomData(r)
	if err != nil {
		return nil, err
	}
	tkhd := &TrackHeader{AtomHeader: h}
	n := int(h.HeaderSize)
	if len(b) < n+fullAtomSize {
		return nil, &DecodeError{Type: h.Type, Field: "Version", Offset: h.Location + uint64(n)}
	}
	full := GetFullAtom(b[n:])
	tkhd.Version = full.Version
	tkhd.Flags = full.Flags
	n += fullAtomSize

	if tkhd.Version == 1 {
		if len(b) < n+32 {
			return nil, &DecodeError{Type: h.Type, Field: "CreateTime", Offset: h.Location + uint64(n)}
		}
		tkhd.CreateTime = GetTime64(b[n:])
		n += 8
		tkhd.ModifyTime = GetTime64(b[n:])
		n += 8
		tkhd.TrackID = pio.I32BE(b[n:])
		n += 8 // track id + reserved
		tkhd.Duration = pio.I64BE(b[n:])
		n += 8
	} else {
		if len(b) < n+20 {
			return nil, &DecodeError{Type: h.Type, Field: "CreateTime", Offset: h.Location + uint64(n)}
		}
		tkhd.CreateTime = GetTime32(b[n:])
		n += 4
		tkhd.ModifyTime = GetTime32(b[n:])
		n += 4
		tkhd.TrackID = pio.I32BE(b[n:])
		n += 8 // track id + reserved
		tkhd.Duration = int64(pio.I32BE(b[n:]))
		n += 4
	}
	n += 8 // reserved

	if len(b) < n+8 {
		return nil, &DecodeError{Type: h.Type, Field: "Layer", Offset: h.Location + uint64(n)}
	}
	tkhd.Layer = pio.I16BE(b[n:])
	n += 2
	tkhd.AlternateGroup = pio.I16BE(b[n:])
	n += 2
	tkhd.Volume = GetFixed16(b[n:])
	n += 2
	n += 2 // reserved

	if len(b) < n+4*len(tkhd.Matrix)+8 {
		return nil, &DecodeError{Type: h.Type, Field: "Matrix", Offset: h.Location + uint64(n)}
	}
	for i := range tkhd.Matrix {
		tkhd.Matrix[i] = pio.I32BE(b[n:])
		n += 4
	}
	tkhd.TrackWidth = GetFixed32(b[n:])
	n += 4
	tkhd.TrackHeight = GetFixed32(b[n:])
	return tkhd, nil
}

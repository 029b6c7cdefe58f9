package qtio

import (
	"fmt"
	"io"
	"time"

	"github.com/ugparu/qtatom/utils/bits/pio"
)

const MVHD = Tag(0x6d766864)

func init() {
	RegisterLeaf(MVHD, decodeMovieHeader)
}

// MovieHeader carries the movie-wide timing and presentation fields of the
// mvhd atom.
type MovieHeader struct {
	Version           uint8     // 1 signals 64-bit times and duration
	Flags             uint32    // 3 bytes
	CreateTime        time.Time // seconds since midnight, Jan 1, 1904, in UTC
	ModifyTime        time.Time
	TimeScale         int32 // time units per second
	Duration          int64 // movie length in time units
	PreferredRate     float64
	PreferredVolume   float64
	Matrix            [9]int32
	PreviewTime       uint32
	PreviewDuration   uint32
	PosterTime        uint32
	SelectionTime     uint32
	SelectionDuration uint32
	CurrentTime       uint32
	NextTrackID       int32
	AtomHeader
}

func (*MovieHeader) Children() []Atom {
	return nil
}

func (mvhd *MovieHeader) String() string {
	return fmt.Sprintf("timescale=%d duration=%d rate=%g volume=%g next=%d",
		mvhd.TimeScale, mvhd.Duration, mvhd.PreferredRate, mvhd.PreferredVolume, mvhd.NextTrackID)
}

func decodeMovieHeader(h AtomHeader, r io.ReadSeeker) (Atom, error) {
	b, err := h.ReadAtomData(r)
	if err != nil {
		return nil, err
	}
	mvhd := &MovieHeader{AtomHeader: h}
	n := int(h.HeaderSize)
	if len(b) < n+fullAtomSize {
		return nil, &DecodeError{Type: h.Type, Field: "Version", Offset: h.Location + uint64(n)}
	}
	full := GetFullAtom(b[n:])
	mvhd.Version = full.Version
	mvhd.Flags = full.Flags
	n += fullAtomSize

	if mvhd.Version == 1 {
		if len(b) < n+20 {
			return nil, &DecodeError{Type: h.Type, Field: "CreateTime", Offset: h.Location + uint64(n)}
		}
		mvhd.CreateTime = GetTime64(b[n:])
		n += 8
		mvhd.ModifyTime = GetTime64(b[n:])
		n += 8
		mvhd.TimeScale = pio.I32BE(b[n:])
		n += 4
		if len(b) < n+8 {
			return nil, &DecodeError{Type: h.Type, Field: "Duration", Offset: h.Location + uint64(n)}
		}
		mvhd.Duration = pio.I64BE(b[n:])
		n += 8
	} else {
		if len(b) < n+16 {
			return nil, &DecodeError{Type: h.Type, Field: "CreateTime", Offset: h.Location + uint64(n)}
		}
		mvhd.CreateTime = GetTime32(b[n:])
		n += 4
		mvhd.ModifyTime = GetTime32(b[n:])
		n += 4
		mvhd.TimeScale = pio.I32BE(b[n:])
		n += 4
		mvhd.Duration = int64(pio.I32BE(b[n:]))
		n += 4
	}

	if len(b) < n+6 {
		return nil, &DecodeError{Type: h.Type, Field: "PreferredRate", Offset: h.Location + uint64(n)}
	}
	mvhd.PreferredRate = GetFixed32(b[n:])
	n += 4
	mvhd.PreferredVolume = GetFixed16(b[n:])
	n += 2
	n += 10 // reserved

	if len(b) < n+4*len(mvhd.Matrix) {
		return nil, &DecodeError{Type: h.Type, Field: "Matrix", Offset: h.Location + uint64(n)}
	}
	for i := range mvhd.Matrix {
		mvhd.Matrix[i] = pio.I32BE(b[n:])
		n += 4
	}

	if len(b) < n+28 {
		return nil, &DecodeError{Type: h.Type, Field: "PreviewTime", Offset: h.Location + uint64(n)}
	}
	mvhd.PreviewTime = pio.U32BE(b[n:])
	n += 4
	mvhd.PreviewDuration = pio.U32BE(b[n:])
	n += 4
	mvhd.PosterTime = pio.U32BE(b[n:])
	n += 4
	mvhd.SelectionTime = pio.U32BE(b[n:])
	n += 4
	mvhd.SelectionDuration = pio.U32BE(b[n:])
	n += 4
	mvhd.CurrentTime = pio.U32BE(b[n:])
	n += 4
	mvhd.NextTrackID = pio.I32BE(b[n:])
	return mvhd, nil
}

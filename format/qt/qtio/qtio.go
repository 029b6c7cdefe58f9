// Package qtio decodes the atom structure of QuickTime/MP4 container files.
//
// An atom starts with a 32-bit big-endian size and a 4-byte type code; a
// size field of exactly 1 signals that the true size follows as a 64-bit
// big-endian value. Container atoms hold nested atoms, leaf atoms hold
// type-specific fields. ParseFile walks a byte source once and returns an
// immutable tree that outlives the source.
package qtio

import (
	"errors"
	"io"
	"time"

	"github.com/ugparu/qtatom/utils/bits/pio"
)

const (
	// HeaderSize is the compact atom header length: u32 size + type code.
	HeaderSize = 8
	// ExtHeaderSize is the header length when the 64-bit size extension
	// is present.
	ExtHeaderSize = 16

	extendedSizeMarker = 1
)

// Tag is a 4-byte atom type code.
type Tag uint32

func (t Tag) String() string {
	var b [4]byte
	pio.PutU32BE(b[:], uint32(t))
	for i := 0; i < 4; i++ {
		if b[i] == 0 {
			b[i] = ' '
		}
	}
	return string(b[:])
}

func StringToTag(tag string) Tag {
	var b [4]byte
	copy(b[:], tag)
	return Tag(pio.U32BE(b[:]))
}

// Atom is one node of a parsed tree: a container with nested atoms or a
// leaf with decoded fields. Leaves return nil children.
type Atom interface {
	Tag() Tag
	Pos() (offset, size uint64)
	Children() []Atom
}

// AtomHeader describes one atom's extent within the source. It is embedded
// by every decoded atom type.
type AtomHeader struct {
	Size       uint64 // total atom length including the header
	Type       Tag
	Location   uint64 // absolute offset of the first header byte
	HeaderSize uint32 // bytes consumed by the header: 8 or 16
}

func (h AtomHeader) Tag() Tag {
	return h.Type
}

func (h AtomHeader) Pos() (offset, size uint64) {
	return h.Location, h.Size
}

// End is the first byte offset past the atom.
func (h AtomHeader) End() uint64 {
	return h.Location + h.Size
}

// ReadAtomHeader decodes one atom header starting at the source's current
// position and leaves the position just past the header. A short read is
// an error, never a zero-filled header.
func ReadAtomHeader(r io.ReadSeeker) (h AtomHeader, err error) {
	var buf [HeaderSize]byte
	if _, err = io.ReadFull(r, buf[:]); err != nil {
		return
	}
	h.Size = uint64(pio.U32BE(buf[:]))
	h.Type = Tag(pio.U32BE(buf[4:]))
	h.HeaderSize = HeaderSize
	if h.Size == extendedSizeMarker {
		if _, err = io.ReadFull(r, buf[:]); err != nil {
			return
		}
		h.Size = pio.U64BE(buf[:])
		h.HeaderSize = ExtHeaderSize
	}
	var pos int64
	if pos, err = r.Seek(0, io.SeekCurrent); err != nil {
		return
	}
	h.Location = uint64(pos) - uint64(h.HeaderSize)
	return
}

// ReadAtomData returns the atom's complete raw bytes, header included.
// The declared size is untrusted: it is checked against the source's
// remaining length before anything is allocated, and a source holding
// fewer bytes than declared is a ShortReadError, never a panic.
func (h AtomHeader) ReadAtomData(r io.ReadSeeker) ([]byte, error) {
	total, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	var avail uint64
	if h.Location < uint64(total) {
		avail = uint64(total) - h.Location
	}
	if h.Size > avail {
		return nil, &ShortReadError{Type: h.Type, Declared: h.Size, Got: int(avail)}
	}
	if _, err := r.Seek(int64(h.Location), io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, h.Size)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &ShortReadError{Type: h.Type, Declared: h.Size, Got: n}
		}
		return nil, err
	}
	return buf, nil
}

// FullAtom is the versioned sub-header shared by "full" atoms: one version
// byte followed by three flag bytes.
type FullAtom struct {
	Version uint8
	Flags   uint32
}

const fullAtomSize = 4

func GetFullAtom(b []byte) (f FullAtom) {
	f.Version = pio.U8(b)
	f.Flags = pio.U24BE(b[1:])
	return
}

var macEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// GetTime32 reads a 32-bit timestamp counted in seconds since the
// QuickTime epoch (midnight, Jan 1, 1904, UTC).
func GetTime32(b []byte) time.Time {
	return macEpoch.Add(time.Second * time.Duration(pio.U32BE(b)))
}

func GetTime64(b []byte) time.Time {
	return macEpoch.Add(time.Second * time.Duration(pio.U64BE(b)))
}

// GetFixed16 reads an 8.8 fixed-point value.
func GetFixed16(b []byte) float64 {
	return float64(b[0]) + float64(b[1])/256.0
}

// GetFixed32 reads a 16.16 fixed-point value.
func GetFixed32(b []byte) float64 {
	return float64(pio.U16BE(b[0:2])) + float64(pio.U16BE(b[2:4]))/65536.0
}

// FindChildren returns the first atom in pre-order whose type matches tag,
// or nil.
func FindChildren(root Atom, tag Tag) Atom {
	if root.Tag() == tag {
		return root
	}
	for _, child := range root.Children() {
		if r := FindChildren(child, tag); r != nil {
			return r
		}
	}
	return nil
}

func FindChildrenByName(root Atom, tag string) Atom {
	return FindChildren(root, StringToTag(tag))
}

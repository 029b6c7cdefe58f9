package qtio

import (
	"fmt"
	"io"

	"github.com/ugparu/qtatom/utils/bits/pio"
)

const (
	PRFL = Tag(0x7072666c)

	featureEntrySize = 12
)

func init() {
	RegisterLeaf(PRFL, decodeProfile)
}

// FeatureEntry is one row of the profile atom's feature table.
type FeatureEntry struct {
	PartID uint32
	Code   Tag
	Value  uint32
}

func GetFeatureEntry(b []byte) (e FeatureEntry) {
	e.PartID = pio.U32BE(b[0:])
	e.Code = Tag(pio.U32BE(b[4:]))
	e.Value = pio.U32BE(b[8:])
	return
}

func (e FeatureEntry) String() string {
	return fmt.Sprintf("part=%#x %s=%d", e.PartID, e.Code, e.Value)
}

// Profile lists the features a player needs to present the file.
type Profile struct {
	Version uint8
	Flags   uint32
	Entries []FeatureEntry
	AtomHeader
}

func (*Profile) Children() []Atom {
	return nil
}

func (prfl *Profile) String() string {
	return fmt.Sprintf("features=%d", len(prfl.Entries))
}

func decodeProfile(h AtomHeader, r io.ReadSeeker) (Atom, error) {
	b, err := h.ReadAtomData(r)
	if err != nil {
		return nil, err
	}
	prfl := &Profile{AtomHeader: h}
	n := int(h.HeaderSize)
	if len(b) < n+fullAtomSize+4 {
		return nil, &DecodeError{Type: h.Type, Field: "Version", Offset: h.Location + uint64(n)}
	}
	full := GetFullAtom(b[n:])
	prfl.Version = full.Version
	prfl.Flags = full.Flags
	n += fullAtomSize
	count := pio.U32BE(b[n:])
	n += 4

	for i := uint32(0); i < count; i++ {
		if len(b) < n+featureEntrySize {
			return nil, &DecodeError{Type: h.Type, Field: "Entries", Offset: h.Location + uint64(n)}
		}
		prfl.Entries = append(prfl.Entries, GetFeatureEntry(b[n:]))
		n += featureEntrySize
	}
	return prfl, nil
}

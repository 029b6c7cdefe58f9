package qtio

import "io"

const WIDE = Tag(0x77696465)

func init() {
	RegisterLeaf(WIDE, decodeWide)
}

// Wide is an 8-byte placeholder reserving room so a neighboring atom can
// later grow a 64-bit size extension in place. Header only.
type Wide struct {
	AtomHeader
}

func (*Wide) Children() []Atom {
	return nil
}

func decodeWide(h AtomHeader, _ io.ReadSeeker) (Atom, error) {
	return &Wide{AtomHeader: h}, nil
}

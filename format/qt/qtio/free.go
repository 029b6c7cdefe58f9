package qtio

import "io"

const (
	FREE = Tag(0x66726565)
	SKIP = Tag(0x736b6970)
)

func init() {
	RegisterLeaf(FREE, decodeFreeSpace)
	RegisterLeaf(SKIP, decodeFreeSpace)
}

// FreeSpace covers the free and skip atoms: unused space a writer left in
// the file. The payload is never read.
type FreeSpace struct {
	AtomHeader
}

func (*FreeSpace) Children() []Atom {
	return nil
}

func decodeFreeSpace(h AtomHeader, _ io.ReadSeeker) (Atom, error) {
	return &FreeSpace{AtomHeader: h}, nil
}

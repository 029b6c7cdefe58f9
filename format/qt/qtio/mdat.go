package qtio

import "io"

const MDAT = Tag(0x6d646174)

func init() {
	RegisterLeaf(MDAT, decodeMediaData)
}

// MediaData marks the sample payload region. Only the extent is recorded;
// interpreting samples is out of scope here, so the bytes stay on disk.
type MediaData struct {
	AtomHeader
}

func (*MediaData) Children() []Atom {
	return nil
}

func decodeMediaData(h AtomHeader, _ io.ReadSeeker) (Atom, error) {
	return &MediaData{AtomHeader: h}, nil
}

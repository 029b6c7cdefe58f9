package qtio

import (
	"fmt"
	"io"
	"strings"

	"github.com/ugparu/qtatom/utils/bits/pio"
)

const (
	FTYP = Tag(0x66747970)

	bytesPerBrand = 4
)

func init() {
	RegisterLeaf(FTYP, decodeFileType)
}

// FileType is the file type compatibility atom: the preferred brand, a
// minor version, and every specification the file is compatible with.
type FileType struct {
	MajorBrand       uint32
	MinorVersion     uint32
	CompatibleBrands []uint32
	AtomHeader
}

func (*FileType) Children() []Atom {
	return nil
}

func (f *FileType) String() string {
	brands := make([]string, 0, len(f.CompatibleBrands))
	for _, brand := range f.CompatibleBrands {
		brands = append(brands, Tag(brand).String())
	}
	return fmt.Sprintf("major=%s minor=%d compatible=[%s]",
		Tag(f.MajorBrand), f.MinorVersion, strings.Join(brands, ","))
}

func decodeFileType(h AtomHeader, r io.ReadSeeker) (Atom, error) {
	b, err := h.ReadAtomData(r)
	if err != nil {
		return nil, err
	}
	f := &FileType{AtomHeader: h}
	n := int(h.HeaderSize)
	if len(b) < n+2*bytesPerBrand {
		return nil, &DecodeError{Type: h.Type, Field: "MajorBrand", Offset: h.Location + uint64(n)}
	}
	f.MajorBrand = pio.U32BE(b[n:])
	n += 4
	f.MinorVersion = pio.U32BE(b[n:])
	n += 4
	for n+bytesPerBrand <= len(b) {
		f.CompatibleBrands = append(f.CompatibleBrands, pio.U32BE(b[n:]))
		n += bytesPerBrand
	}
	return f, nil
}

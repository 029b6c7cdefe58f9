package qtio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ugparu/qtatom/utils/bits/pio"
)

func TestDecodeFileType(t *testing.T) {
	t.Parallel()

	b := []byte{
		0x00, 0x00, 0x00, 0x14, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm',
		0x00, 0x00, 0x02, 0x00,
		'i', 's', 'o', '2',
	}
	node, err := parseFirstAtom(t, b)
	require.NoError(t, err)

	ftyp, ok := node.(*FileType)
	require.True(t, ok)
	require.Equal(t, pio.U32BE([]byte("isom")), ftyp.MajorBrand)
	require.Equal(t, uint32(512), ftyp.MinorVersion)
	require.Equal(t, []uint32{pio.U32BE([]byte("iso2"))}, ftyp.CompatibleBrands)
	require.Equal(t, "major=isom minor=512 compatible=[iso2]", ftyp.String())
}

func TestDecodeFileTypeNoBrands(t *testing.T) {
	t.Parallel()

	b := leafAtom("ftyp", 'q', 't', ' ', ' ', 0, 0, 0, 0)
	node, err := parseFirstAtom(t, b)
	require.NoError(t, err)

	ftyp, ok := node.(*FileType)
	require.True(t, ok)
	require.Equal(t, "qt  ", Tag(ftyp.MajorBrand).String())
	require.Empty(t, ftyp.CompatibleBrands)
}

func TestDecodeFileTypeTooShort(t *testing.T) {
	t.Parallel()

	_, err := parseFirstAtom(t, leafAtom("ftyp", 'i', 's', 'o', 'm'))
	decodeErr := &DecodeError{}
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, FTYP, decodeErr.Type)
}

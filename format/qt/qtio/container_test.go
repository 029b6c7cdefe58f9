package qtio

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ugparu/qtatom/utils/bits/pio"
)

func parseFirstAtom(t *testing.T, b []byte) (Atom, error) {
	t.Helper()
	r := bytes.NewReader(b)
	h, err := ReadAtomHeader(r)
	require.NoError(t, err)
	return ParseAtom(h, r)
}

func TestParseContainerChildren(t *testing.T) {
	t.Parallel()

	moov := containerAtom("moov",
		leafAtom("free"),
		leafAtom("wide"),
		leafAtom("abcd", 1, 2, 3, 4),
	)
	node, err := parseFirstAtom(t, moov)
	require.NoError(t, err)

	container, ok := node.(*Container)
	require.True(t, ok)
	require.Len(t, container.Children(), 3)
	require.IsType(t, &FreeSpace{}, container.Children()[0])
	require.IsType(t, &Wide{}, container.Children()[1])
	require.IsType(t, &Unknown{}, container.Children()[2])

	parentOffset, parentSize := container.Pos()
	var prevEnd = parentOffset + uint64(HeaderSize)
	for _, child := range container.Children() {
		offset, size := child.Pos()
		require.Equal(t, prevEnd, offset)
		require.LessOrEqual(t, offset+size, parentOffset+parentSize)
		prevEnd = offset + size
	}
	require.Equal(t, parentOffset+parentSize, prevEnd)
}

func TestParseEmptyContainer(t *testing.T) {
	t.Parallel()

	node, err := parseFirstAtom(t, containerAtom("moov"))
	require.NoError(t, err)

	container, ok := node.(*Container)
	require.True(t, ok)
	require.Empty(t, container.Children())
}

func TestSiblingResilience(t *testing.T) {
	t.Parallel()

	// The prfl's feature count requires more bytes than the atom holds,
	// so its decode fails. The siblings must survive in order.
	badProfile := leafAtom("prfl", 0, 0, 0, 0, 0, 0, 0, 5)
	moov := containerAtom("moov",
		leafAtom("free"),
		badProfile,
		leafAtom("wide"),
	)
	node, err := parseFirstAtom(t, moov)
	require.NoError(t, err)

	container, ok := node.(*Container)
	require.True(t, ok)
	require.Len(t, container.Children(), 2)
	require.Equal(t, FREE, container.Children()[0].Tag())
	require.Equal(t, WIDE, container.Children()[1].Tag())
}

func TestChildSizeWrapTerminates(t *testing.T) {
	t.Parallel()

	// An extended-size child declaring nearly 2^64 bytes wraps its end
	// offset to before the walk's position. The walk must stop instead
	// of seeking backwards and re-reading atoms forever.
	ext := make([]byte, ExtHeaderSize)
	pio.PutU32BE(ext, extendedSizeMarker)
	copy(ext[4:], "abcd")
	pio.PutU64BE(ext[8:], ^uint64(0)-15)

	file := append(leafAtom("free", make([]byte, 8)...), ext...)
	root, err := ParseFile(bytes.NewReader(file), uint64(len(file)))
	require.NoError(t, err)
	require.Len(t, root.Children(), 1)
	require.Equal(t, FREE, root.Children()[0].Tag())
}

func TestChildOverrunningParentSkipped(t *testing.T) {
	t.Parallel()

	// The child claims 20 bytes but only 16 remain inside the parent.
	b := make([]byte, 24)
	pio.PutU32BE(b, 24)
	copy(b[4:], "moov")
	pio.PutU32BE(b[8:], 20)
	copy(b[12:], "free")

	node, err := parseFirstAtom(t, b)
	require.NoError(t, err)
	require.Empty(t, node.Children())

	parentOffset, parentSize := node.Pos()
	for _, child := range node.Children() {
		offset, size := child.Pos()
		require.LessOrEqual(t, offset+size, parentOffset+parentSize)
	}
}

func TestDegenerateChildSizeTerminates(t *testing.T) {
	t.Parallel()

	child := make([]byte, 16)
	copy(child[4:], "free") // size field left at zero
	moov := containerAtom("moov", child)

	node, err := parseFirstAtom(t, moov)
	require.NoError(t, err)
	require.Empty(t, node.Children())
}

func TestNestedContainers(t *testing.T) {
	t.Parallel()

	moov := containerAtom("moov",
		containerAtom("trak", leafAtom("free")),
		leafAtom("wide"),
	)
	node, err := parseFirstAtom(t, moov)
	require.NoError(t, err)
	require.Len(t, node.Children(), 2)

	trak := node.Children()[0]
	require.Equal(t, TRAK, trak.Tag())
	require.Len(t, trak.Children(), 1)
	require.Equal(t, FREE, trak.Children()[0].Tag())
}

func flatten(node Atom, depth int, out *[]string) {
	offset, size := node.Pos()
	*out = append(*out, fmt.Sprintf("%d/%s/%d/%d", depth, node.Tag(), offset, size))
	for _, child := range node.Children() {
		flatten(child, depth+1, out)
	}
}

func TestParseFileIdempotence(t *testing.T) {
	t.Parallel()

	file := append([]byte{}, leafAtom("ftyp", make([]byte, 12)...)...)
	file = append(file, containerAtom("moov", leafAtom("free"), leafAtom("wide"))...)
	file = append(file, leafAtom("mdat", 1, 2, 3, 4)...)

	r := bytes.NewReader(file)
	first, err := ParseFile(r, uint64(len(file)))
	require.NoError(t, err)
	second, err := ParseFile(r, uint64(len(file)))
	require.NoError(t, err)

	var a, b []string
	flatten(first, 0, &a)
	flatten(second, 0, &b)
	require.Equal(t, a, b)
}

func TestParseFileTopLevel(t *testing.T) {
	t.Parallel()

	file := append([]byte{}, leafAtom("free")...)
	file = append(file, containerAtom("moov", leafAtom("wide"))...)

	root, err := ParseFile(bytes.NewReader(file), uint64(len(file)))
	require.NoError(t, err)
	require.Equal(t, ROOT, root.Tag())
	offset, size := root.Pos()
	require.Equal(t, uint64(0), offset)
	require.Equal(t, uint64(len(file)), size)
	require.Len(t, root.Children(), 2)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		RegisterLeaf(MOOV, decodeFreeSpace)
	})
	require.Panics(t, func() {
		RegisterContainer(FTYP, decodeContainer)
	})

	_, err := parseContainer(AtomHeader{Type: FTYP}, bytes.NewReader(nil))
	require.ErrorIs(t, err, errNotAContainer)
}

func TestTagString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "moov", MOOV.String())
	require.Equal(t, MOOV, StringToTag("moov"))
	require.Equal(t, pio.U32BE([]byte("root")), uint32(ROOT))
}

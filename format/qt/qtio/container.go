package qtio

import (
	"io"

	"github.com/ugparu/qtatom/utils/logger"
)

const (
	MOOV = Tag(0x6d6f6f76)
	TRAK = Tag(0x7472616b)

	// ROOT tags the synthetic whole-file pseudo-atom. It never occurs on
	// disk and is constructed only by ParseFile.
	ROOT = Tag(0x726f6f74)
)

func init() {
	RegisterContainer(MOOV, decodeContainer)
	RegisterContainer(TRAK, decodeContainer)
}

// Container is an atom whose payload is an ordered run of nested atoms.
// Child order is file order.
type Container struct {
	Nodes []Atom
	AtomHeader
}

func (c *Container) Children() []Atom {
	return c.Nodes
}

func decodeContainer(h AtomHeader, r io.ReadSeeker) (Atom, error) {
	nodes, err := h.parseChildren(r)
	if err != nil {
		return nil, err
	}
	return &Container{AtomHeader: h, Nodes: nodes}, nil
}

// parseChildren enumerates the atoms between the header and the declared
// extent. A child whose own decode fails is skipped; its well-formed
// siblings are still returned. Size fields are untrusted: a child too
// small to hold its own header, or so large that its extent leaves the
// parent's (including a 64-bit size that wraps the end offset around),
// would make the walk lose its footing, so it terminates enumeration.
func (h AtomHeader) parseChildren(r io.ReadSeeker) (nodes []Atom, err error) {
	end := h.End()
	pos := h.Location + uint64(h.HeaderSize)
	if pos >= end {
		return nil, nil
	}
	if _, err = r.Seek(int64(pos), io.SeekStart); err != nil {
		return
	}
	for {
		var child AtomHeader
		if child, err = ReadAtomHeader(r); err != nil {
			return
		}
		// child.Location < end here, so end-child.Location cannot underflow,
		// and comparing against it catches sizes that would wrap End().
		if child.Size < uint64(child.HeaderSize) || child.Size > end-child.Location {
			logger.Warningf(h.Type, "atom '%s' at %d declares size %d, below its header or past the parent extent; stopping walk",
				child.Type, child.Location, child.Size)
			return
		}
		node, cerr := ParseAtom(child, r)
		if cerr != nil {
			logger.Debugf(h.Type, "skipping atom '%s' at %d: %v", child.Type, child.Location, cerr)
		} else {
			nodes = append(nodes, node)
		}
		if child.End() >= end {
			return
		}
		if _, err = r.Seek(int64(child.End()), io.SeekStart); err != nil {
			return
		}
	}
}

// ParseFile wraps the whole source in a root pseudo-atom and parses its
// children, the file's top-level atoms. size is the source's total length;
// the caller has already checked it holds at least one compact header.
func ParseFile(r io.ReadSeeker, size uint64) (Atom, error) {
	root := AtomHeader{
		Size:       size,
		Type:       ROOT,
		Location:   0,
		HeaderSize: 0,
	}
	nodes, err := root.parseChildren(r)
	if err != nil {
		return nil, err
	}
	logger.Debugf(root.Type, "parsed %d top-level atoms in %d bytes", len(nodes), size)
	return &Container{AtomHeader: root, Nodes: nodes}, nil
}

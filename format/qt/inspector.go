// Package qt opens QuickTime/MP4 files and hands their atom tree to callers.
package qt

import (
	"fmt"
	"os"

	"github.com/ugparu/qtatom"
	"github.com/ugparu/qtatom/format/qt/qtio"
	"github.com/ugparu/qtatom/utils/logger"
)

// InvalidSizeError rejects a source too small to hold even one compact
// atom header.
type InvalidSizeError struct {
	Path string
	Size int64
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("qt: %s: file size %d is below the minimal atom header (%d bytes)", e.Path, e.Size, qtio.HeaderSize)
}

type Inspector struct {
	r    *os.File
	url  string
	root qtio.Atom
}

func NewInspector(url string) qtatom.Inspector {
	insp := new(Inspector)
	insp.url = url
	return insp
}

// Inspect opens the file, validates its size and parses the atom tree.
// The tree is cached; repeated calls return the same root.
func (insp *Inspector) Inspect() (root qtio.Atom, err error) {
	if insp.root != nil {
		return insp.root, nil
	}
	if insp.r, err = os.Open(insp.url); err != nil {
		return nil, err
	}
	fi, err := insp.r.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() < qtio.HeaderSize {
		return nil, &InvalidSizeError{Path: insp.url, Size: fi.Size()}
	}
	logger.Debugf(insp, "parsing %s (%d bytes)", insp.url, fi.Size())
	if root, err = qtio.ParseFile(insp.r, uint64(fi.Size())); err != nil {
		return nil, err
	}
	insp.root = root
	return root, nil
}

// Close releases the file. The parsed tree owns its data and stays valid.
func (insp *Inspector) Close() {
	if insp.r != nil {
		insp.r.Close()
		insp.r = nil
	}
}

func (insp *Inspector) String() string {
	return "qt.Inspector"
}

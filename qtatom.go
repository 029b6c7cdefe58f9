// Package qtatom inspects QuickTime/MP4 container files. It decodes the
// atom ("box") structure of a file into an immutable in-memory tree and
// renders that tree for inspection. Atom decoding lives in format/qt/qtio;
// format/qt wraps file access around it.
package qtatom

import "github.com/ugparu/qtatom/format/qt/qtio"

// Inspector parses one container file into an atom tree.
type Inspector interface {
	// Inspect opens the source if needed and returns the root atom whose
	// children are the file's top-level atoms. The returned tree stays
	// valid after Close.
	Inspect() (qtio.Atom, error)
	// Close releases the underlying file.
	Close()
}

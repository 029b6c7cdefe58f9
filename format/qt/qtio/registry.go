package qtio

import (
	"errors"
	"fmt"
	"io"
)

// DecodeFunc turns one atom header into a decoded atom, reading payload
// bytes from the source as needed. The source position after return is
// unspecified; callers reposition themselves.
type DecodeFunc func(AtomHeader, io.ReadSeeker) (Atom, error)

var (
	containerDecoders = map[Tag]DecodeFunc{}
	leafDecoders      = map[Tag]DecodeFunc{}
)

// RegisterContainer binds a tag to a container decoder. A tag may belong
// to exactly one of the two registries; a duplicate is a programming
// error and panics at init time.
func RegisterContainer(tag Tag, fn DecodeFunc) {
	mustBeFree(tag)
	containerDecoders[tag] = fn
}

// RegisterLeaf binds a tag to a leaf decoder.
func RegisterLeaf(tag Tag, fn DecodeFunc) {
	mustBeFree(tag)
	leafDecoders[tag] = fn
}

func mustBeFree(tag Tag) {
	if _, ok := containerDecoders[tag]; ok {
		panic(fmt.Sprintf("qtio: tag '%s' already registered as container", tag))
	}
	if _, ok := leafDecoders[tag]; ok {
		panic(fmt.Sprintf("qtio: tag '%s' already registered as leaf", tag))
	}
}

// ParseAtom classifies one atom: container decoders are consulted first,
// then leaf decoders; a tag known to neither yields an Unknown atom, never
// an error.
func ParseAtom(h AtomHeader, r io.ReadSeeker) (Atom, error) {
	node, err := parseContainer(h, r)
	if !errors.Is(err, errNotAContainer) {
		return node, err
	}
	if fn, ok := leafDecoders[h.Type]; ok {
		return fn(h, r)
	}
	return &Unknown{AtomHeader: h}, nil
}

func parseContainer(h AtomHeader, r io.ReadSeeker) (Atom, error) {
	fn, ok := containerDecoders[h.Type]
	if !ok {
		return nil, errNotAContainer
	}
	return fn(h, r)
}

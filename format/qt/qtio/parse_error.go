package qtio

import (
	"errors"
	"fmt"
)

// errNotAContainer makes the classifier fall through from the container
// registry to the leaf registry. It never escapes ParseAtom.
var errNotAContainer = errors.New("qtio: not a container atom")

// DecodeError reports a leaf decoder that could not satisfy its field
// layout against the atom's available bytes.
type DecodeError struct {
	Type   Tag
	Field  string
	Offset uint64
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("qtio: cannot decode atom '%s'", e.Type)
	}
	return fmt.Sprintf("qtio: cannot decode atom '%s': field %s at offset %d", e.Type, e.Field, e.Offset)
}

// ShortReadError reports a source that yielded fewer bytes than the atom
// declared.
type ShortReadError struct {
	Type     Tag
	Declared uint64
	Got      int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("qtio: short read of atom '%s': declared %d bytes, read %d", e.Type, e.Declared, e.Got)
}

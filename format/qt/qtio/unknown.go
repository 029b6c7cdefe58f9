package qtio

// Unknown is the fallback leaf for type codes outside both registries. It
// retains only the header; the payload stays uninterpreted on disk.
type Unknown struct {
	AtomHeader
}

func (*Unknown) Children() []Atom {
	return nil
}

package profile

// Equal reports whether two property trees describe the same schema:
// matching variants, tags, and counts, recursively equal children, and
// identical frequency tables. Ambiguous alternatives are compared as a
// set keyed by tag, so insertion order never affects equality. Two nil
// properties are equal; nil never equals a non-nil node.
func Equal(a, b Property) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *Scalar:
		y, ok := b.(*Scalar)
		return ok && x.Tag == y.Tag && x.N == y.N

	case *Discrete:
		y, ok := b.(*Discrete)
		if !ok || x.Tag != y.Tag || x.N != y.N || len(x.Values) != len(y.Values) {
			return false
		}
		for value, n := range x.Values {
			if y.Values[value] != n {
				return false
			}
		}
		return true

	case *Object:
		y, ok := b.(*Object)
		if !ok || x.N != y.N || len(x.Fields) != len(y.Fields) {
			return false
		}
		for name, child := range x.Fields {
			other, present := y.Fields[name]
			if !present || !Equal(child, other) {
				return false
			}
		}
		return true

	case *Array:
		y, ok := b.(*Array)
		return ok && x.N == y.N && Equal(x.Items, y.Items)

	case *Ambiguous:
		y, ok := b.(*Ambiguous)
		if !ok || x.N != y.N || len(x.Alts) != len(y.Alts) {
			return false
		}
		for _, alt := range x.Alts {
			if !Equal(alt, y.alt(alt.Type())) {
				return false
			}
		}
		return true
	}

	return false
}

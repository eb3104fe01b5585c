package profile

import "fmt"

// DefaultDiscreteLimit is the distinct-value cardinality above which a
// discrete node loses its frequency table during truncation.
const DefaultDiscreteLimit = 50

// Truncate discards frequency bookkeeping for every discrete node whose
// cardinality exceeds limit, degrading it to a plain Scalar of the same
// tag and count: a distribution that sparse is no longer representative
// and only costs memory. The pass is applied top-down once at the end of
// an analysis, mutates p, and is idempotent. A limit of zero or less
// falls back to DefaultDiscreteLimit.
func Truncate(p Property, limit int) (Property, error) {
	if limit <= 0 {
		limit = DefaultDiscreteLimit
	}

	switch n := p.(type) {
	case *Scalar:
		return n, nil

	case *Discrete:
		if n.Values == nil {
			return nil, fmt.Errorf("%w: missing frequency map", ErrMalformedDiscrete)
		}
		if len(n.Values) > limit {
			return &Scalar{Tag: n.Tag, N: n.N}, nil
		}
		return n, nil

	case *Object:
		for name, child := range n.Fields {
			t, err := Truncate(child, limit)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			n.Fields[name] = t
		}
		return n, nil

	case *Array:
		if n.Items != nil {
			t, err := Truncate(n.Items, limit)
			if err != nil {
				return nil, fmt.Errorf("array items: %w", err)
			}
			n.Items = t
		}
		return n, nil

	case *Ambiguous:
		// Degradation preserves tags, so truncating alternatives cannot
		// normally collide. If a hand-built tree does produce two
		// alternatives that end up sharing a tag, fold them together
		// rather than reject: the merged node still describes the data.
		alts := n.Alts[:0]
		for _, alt := range n.Alts {
			t, err := Truncate(alt, limit)
			if err != nil {
				return nil, err
			}
			if prior := pickAlt(alts, t.Type()); prior >= 0 {
				merged, err := mergeSameTag(alts[prior], t)
				if err != nil {
					return nil, err
				}
				alts[prior] = merged
				continue
			}
			alts = append(alts, t)
		}
		n.Alts = alts
		if err := n.validate(); err != nil {
			return nil, err
		}
		return n, nil
	}

	return nil, fmt.Errorf("%w: unknown property variant %T", ErrCannotClassify, p)
}

func pickAlt(alts []Property, t Type) int {
	for i, alt := range alts {
		if alt.Type() == t {
			return i
		}
	}
	return -1
}

package profile

import "fmt"

// Merge combines the information in two property trees. It mutates dst,
// absorbs src (neither operand may be used afterwards), and returns the
// resulting node, which replaces dst: a cross-tag merge re-roots the pair
// under a new Ambiguous node.
//
// Over trees produced purely by Cast and prior merges the operation is
// associative and commutative up to Equal, which is what permits folding
// partial profiles together in any order. The only failure modes are the
// invariant violations of externally built trees: duplicate-tag or nested
// alternatives inside an Ambiguous node, or a Discrete node without its
// frequency map.
func Merge(dst, src Property) (Property, error) {
	if dst == nil || src == nil {
		return nil, fmt.Errorf("%w: merge operand is nil", ErrCannotClassify)
	}

	da, dstAmbiguous := dst.(*Ambiguous)
	sa, srcAmbiguous := src.(*Ambiguous)

	switch {
	case dstAmbiguous && srcAmbiguous:
		// Flatten src's alternatives into dst one at a time. A nested
		// ambiguous alternative can only come from a hand-built tree and
		// is rejected, not silently dropped.
		for _, alt := range sa.Alts {
			if alt.Type() == TypeAmbiguous {
				return nil, errInvariant("ambiguous property contains another ambiguous property")
			}
			if err := da.fold(alt); err != nil {
				return nil, err
			}
		}
		return da, nil

	case dstAmbiguous:
		if err := da.fold(src); err != nil {
			return nil, err
		}
		return da, nil

	case srcAmbiguous:
		// Folding is symmetric up to Equal, so absorb dst into the
		// ambiguous side and let it take over as the root.
		if err := sa.fold(dst); err != nil {
			return nil, err
		}
		return sa, nil
	}

	if dst.Type() == src.Type() {
		return mergeSameTag(dst, src)
	}

	amb := &Ambiguous{N: dst.Count() + src.Count(), Alts: []Property{dst, src}}
	if err := amb.validate(); err != nil {
		return nil, err
	}
	return amb, nil
}

// mergeSameTag merges two concrete nodes that agree on their type tag.
// The pairing of variants can still differ for tag "number": an integral
// Discrete merged with a continuous Scalar degrades to a Scalar, since a
// frequency table over a mixed discrete/continuous field is meaningless.
func mergeSameTag(dst, src Property) (Property, error) {
	switch a := dst.(type) {
	case *Scalar:
		a.N += src.Count()
		return a, nil

	case *Discrete:
		b, ok := src.(*Discrete)
		if !ok {
			// Same tag, continuous counterpart: drop the frequency table.
			return &Scalar{Tag: a.Tag, N: a.N + src.Count()}, nil
		}
		if a.Values == nil || b.Values == nil {
			return nil, fmt.Errorf("%w: missing frequency map", ErrMalformedDiscrete)
		}
		for value, n := range b.Values {
			a.Values[value] += n
		}
		a.N += b.N
		return a, nil

	case *Object:
		b := src.(*Object)
		for name, prop := range b.Fields {
			existing, ok := a.Fields[name]
			if !ok {
				if a.Fields == nil {
					a.Fields = make(map[string]Property, len(b.Fields))
				}
				a.Fields[name] = prop
				continue
			}
			merged, err := Merge(existing, prop)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			a.Fields[name] = merged
		}
		a.N += b.N
		return a, nil

	case *Array:
		b := src.(*Array)
		switch {
		case a.Items == nil:
			a.Items = b.Items
		case b.Items != nil:
			merged, err := Merge(a.Items, b.Items)
			if err != nil {
				return nil, fmt.Errorf("array items: %w", err)
			}
			a.Items = merged
		}
		a.N += b.N
		return a, nil
	}

	return nil, fmt.Errorf("%w: unknown property variant %T", ErrCannotClassify, dst)
}

// fold absorbs a concrete node into the ambiguous node: merged into the
// alternative sharing its tag if one exists, appended as a new alternative
// otherwise. The invariants are re-checked after every mutation.
func (a *Ambiguous) fold(x Property) error {
	if x.Type() == TypeAmbiguous {
		return errInvariant("ambiguous property contains another ambiguous property")
	}

	folded := false
	for i, alt := range a.Alts {
		if alt.Type() != x.Type() {
			continue
		}
		merged, err := mergeSameTag(alt, x)
		if err != nil {
			return err
		}
		a.Alts[i] = merged
		folded = true
		break
	}
	if !folded {
		a.Alts = append(a.Alts, x)
	}
	a.N += x.Count()

	return a.validate()
}

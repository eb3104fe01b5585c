package profile

// Property is one node of an inferred schema tree. Exactly five concrete
// variants implement it: Scalar, Discrete, Object, Array, and Ambiguous.
// Operations over properties (Merge, Truncate, Equal, Ambiguity) dispatch
// with exhaustive type switches so that a new variant cannot be added
// without handling it everywhere.
//
// A node's count is the number of times the field or position it describes
// was observed across all merged documents. Nodes own their children
// exclusively: a property tree is never shared between profiles and never
// cyclic.
type Property interface {
	// Type returns the node's type tag.
	Type() Type
	// Count returns the number of observations folded into this node.
	Count() int

	isProperty()
}

// Scalar counts observations of a value that carries no further structure:
// null, boolean, continuous numbers, long text, and binary blobs.
type Scalar struct {
	Tag Type
	N   int
}

func (s *Scalar) Type() Type  { return s.Tag }
func (s *Scalar) Count() int  { return s.N }
func (s *Scalar) isProperty() {}

// Discrete counts observations of a bounded-cardinality value (integral
// numbers and short strings) and additionally tracks how often each
// distinct value occurred. The frequencies in Values always sum to N.
type Discrete struct {
	Tag    Type
	N      int
	Values map[string]int
}

func (d *Discrete) Type() Type  { return d.Tag }
func (d *Discrete) Count() int  { return d.N }
func (d *Discrete) isProperty() {}

// Unique is the number of distinct values observed so far.
func (d *Discrete) Unique() int { return len(d.Values) }

// Object describes a key-value mapping: one child property per field name
// observed at this position. Field order carries no meaning.
type Object struct {
	N      int
	Fields map[string]Property
}

func (o *Object) Type() Type  { return TypeObject }
func (o *Object) Count() int  { return o.N }
func (o *Object) isProperty() {}

// Array describes a sequence position. Items is the merge of every element
// observed in every array at this position, not a per-index list; it is nil
// only if every observed array was empty. N counts arrays, not elements.
type Array struct {
	N     int
	Items Property
}

func (a *Array) Type() Type  { return TypeArray }
func (a *Array) Count() int  { return a.N }
func (a *Array) isProperty() {}

// Ambiguous describes a position observed with more than one incompatible
// type. Alternatives have pairwise distinct tags, none of them ambiguous,
// and their counts sum to N. Alts preserves first-insertion order for
// serialization stability; equality treats it as a set keyed by tag.
type Ambiguous struct {
	N    int
	Alts []Property
}

func (a *Ambiguous) Type() Type  { return TypeAmbiguous }
func (a *Ambiguous) Count() int  { return a.N }
func (a *Ambiguous) isProperty() {}

// alt returns the alternative carrying tag t, or nil.
func (a *Ambiguous) alt(t Type) Property {
	for _, p := range a.Alts {
		if p.Type() == t {
			return p
		}
	}
	return nil
}

// validate checks the ambiguity invariants: no two alternatives share a
// tag and no alternative is itself ambiguous. A violation means the node
// was built outside the merge algebra; it is reported, never repaired.
func (a *Ambiguous) validate() error {
	seen := make(map[Type]bool, len(a.Alts))
	for _, p := range a.Alts {
		t := p.Type()
		if t == TypeAmbiguous {
			return errInvariant("ambiguous property contains another ambiguous property")
		}
		if seen[t] {
			return errInvariant("ambiguous property contains duplicate type %q", t)
		}
		seen[t] = true
	}
	return nil
}
